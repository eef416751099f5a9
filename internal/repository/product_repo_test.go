package repository_test

import (
	"testing"

	"mall-pos/internal/model"
	"mall-pos/internal/repository"
	"mall-pos/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProductRepo_FindByBarcode_ScopedToMall(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProductRepo(db)

	m1 := testutil.SeedMall(t, db, "MALL01", "secret1")
	m2 := testutil.SeedMall(t, db, "MALL02", "secret2")
	testutil.SeedProduct(t, db, m2.ID, "999", "Other mall item", "5.00", 3)
	widget := testutil.SeedProduct(t, db, m1.ID, "123", "Widget", "9.99", 10)

	got, err := repo.FindByBarcode(m1.ID, "123")
	require.NoError(t, err)
	assert.Equal(t, widget.ID, got.ID)
	assert.True(t, decimal.RequireFromString("9.99").Equal(got.Price))

	_, err = repo.FindByBarcode(m1.ID, "999")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProductRepo_Create_SameBarcodeDifferentMalls(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProductRepo(db)

	m1 := testutil.SeedMall(t, db, "MALL01", "secret1")
	m2 := testutil.SeedMall(t, db, "MALL02", "secret2")

	for _, mallID := range []uuid.UUID{m1.ID, m2.ID} {
		p := &model.Product{MallID: mallID, Barcode: "123", Name: "Widget", Price: decimal.NewFromInt(1)}
		require.NoError(t, repo.Create(p))
	}

	count, err := repo.CountByMall(m1.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestProductRepo_DecrementStock(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProductRepo(db)

	mall := testutil.SeedMall(t, db, "MALL01", "secret1")
	other := testutil.SeedMall(t, db, "MALL02", "secret2")
	widget := testutil.SeedProduct(t, db, mall.ID, "123", "Widget", "9.99", 10)

	err := db.Transaction(func(tx *gorm.DB) error {
		return repo.DecrementStock(tx, mall.ID, widget.ID, 3)
	})
	require.NoError(t, err)
	assert.Equal(t, 7, testutil.Stock(t, db, widget.ID))

	t.Run("rejects underflow", func(t *testing.T) {
		err := repo.DecrementStock(db, mall.ID, widget.ID, 8)
		assert.ErrorIs(t, err, repository.ErrNotEnough)
		assert.Equal(t, 7, testutil.Stock(t, db, widget.ID))
	})

	t.Run("ignores foreign mall", func(t *testing.T) {
		err := repo.DecrementStock(db, other.ID, widget.ID, 1)
		assert.ErrorIs(t, err, repository.ErrNotEnough)
		assert.Equal(t, 7, testutil.Stock(t, db, widget.ID))
	})
}

func TestProductRepo_FindForUpdate_OnlyReturnsOwnProducts(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProductRepo(db)

	mall := testutil.SeedMall(t, db, "MALL01", "secret1")
	other := testutil.SeedMall(t, db, "MALL02", "secret2")
	mine := testutil.SeedProduct(t, db, mall.ID, "1", "Mine", "1.00", 1)
	theirs := testutil.SeedProduct(t, db, other.ID, "2", "Theirs", "1.00", 1)

	var products []model.Product
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		products, err = repo.FindForUpdate(tx, mall.ID, []uuid.UUID{mine.ID, theirs.ID})
		return err
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, mine.ID, products[0].ID)
}

func TestProductRepo_FindLowStock(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProductRepo(db)

	mall := testutil.SeedMall(t, db, "MALL01", "secret1")
	testutil.SeedProduct(t, db, mall.ID, "1", "Plenty", "1.00", 50)
	low := testutil.SeedProduct(t, db, mall.ID, "2", "Almost gone", "1.00", 2)

	products, err := repo.FindLowStock(5)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, low.ID, products[0].ID)
}
