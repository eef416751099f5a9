// Package testutil builds in-memory SQLite stores and fixtures for tests.
package testutil

import (
	"testing"

	"mall-pos/internal/model"
	"mall-pos/pkg/database"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a fresh, migrated in-memory database
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: ":memory:",
		LogLevel:   logger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.AllModels()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// NewSQLX wraps the GORM pool for the sqlx-based report queries
func NewSQLX(t testing.TB, db *gorm.DB) *sqlx.DB {
	t.Helper()

	sqlDB, err := db.DB()
	require.NoError(t, err)
	return sqlx.NewDb(sqlDB, database.DriverName(db))
}

func SeedMall(t testing.TB, db *gorm.DB, code, password string) *model.Mall {
	t.Helper()

	mall := &model.Mall{MallName: "Mall " + code, MallCode: code}
	require.NoError(t, mall.SetPassword(password))
	require.NoError(t, db.Create(mall).Error)
	return mall
}

func SeedUser(t testing.TB, db *gorm.DB, mallID uuid.UUID, username, password, role string) *model.User {
	t.Helper()

	user := &model.User{MallID: mallID, Username: username, Role: role, IsActive: true}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, db.Create(user).Error)
	return user
}

func SeedProduct(t testing.TB, db *gorm.DB, mallID uuid.UUID, barcode, name, price string, stock int) *model.Product {
	t.Helper()

	product := &model.Product{
		MallID:  mallID,
		Barcode: barcode,
		Name:    name,
		Price:   decimal.RequireFromString(price),
		Stock:   stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// Stock re-reads a product's stock straight from the database
func Stock(t testing.TB, db *gorm.DB, productID uuid.UUID) int {
	t.Helper()

	var product model.Product
	require.NoError(t, db.First(&product, "id = ?", productID).Error)
	return product.Stock
}
