package repository_test

import (
	"testing"
	"time"

	"mall-pos/internal/repository"
	"mall-pos/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepo_FindByID_ScopedToMall(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTransactionRepo(db)

	mall := testutil.SeedMall(t, db, "MALL01", "secret1")
	other := testutil.SeedMall(t, db, "MALL02", "secret2")
	widget := testutil.SeedProduct(t, db, mall.ID, "123", "Widget", "9.99", 10)
	recordSale(t, db, mall.ID, widget, 2)

	sales, err := repo.FindAllByMall(mall.ID, 0)
	require.NoError(t, err)
	require.Len(t, sales, 1)

	got, err := repo.FindByID(mall.ID, sales[0].ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	require.NotNil(t, got.Items[0].Product)
	assert.Equal(t, "Widget", got.Items[0].Product.Name)

	_, err = repo.FindByID(other.ID, sales[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.FindByID(mall.ID, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTransactionRepo_GetDashboardStats(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTransactionRepo(db)

	mall := testutil.SeedMall(t, db, "MALL01", "secret1")
	widget := testutil.SeedProduct(t, db, mall.ID, "123", "Widget", "2.00", 10)
	recordSale(t, db, mall.ID, widget, 3)
	recordSale(t, db, mall.ID, widget, 1)

	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	stats, err := repo.GetDashboardStats(mall.ID, start, start.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(8).Equal(stats.TotalSales), "got %s", stats.TotalSales)
	assert.True(t, decimal.NewFromInt(8).Equal(stats.TodaySales), "got %s", stats.TodaySales)
	assert.Len(t, stats.RecentTransactions, 2)

	yesterday, err := repo.GetDashboardStats(mall.ID, start.AddDate(0, 0, -1), start)
	require.NoError(t, err)
	assert.True(t, yesterday.TodaySales.IsZero())
}

func TestTransactionRepo_GetDashboardStats_SumsAreExactCents(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTransactionRepo(db)

	mall := testutil.SeedMall(t, db, "MALL01", "secret1")
	dime := testutil.SeedProduct(t, db, mall.ID, "010", "Dime", "0.10", 10)
	twenty := testutil.SeedProduct(t, db, mall.ID, "020", "Twenty", "0.20", 10)
	recordSale(t, db, mall.ID, dime, 1)
	recordSale(t, db, mall.ID, twenty, 1)

	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	stats, err := repo.GetDashboardStats(mall.ID, start, start.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, "0.3", stats.TotalSales.String())
	assert.Equal(t, "0.3", stats.TodaySales.String())
}
