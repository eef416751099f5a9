package cache

import (
	"testing"

	"mall-pos/internal/model"
	"mall-pos/internal/repository"
	"mall-pos/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newCachedRepo(t *testing.T) (*CachedProductRepository, *miniredis.Miniredis, *gorm.DB) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	db := testutil.NewDB(t)
	return NewCachedProductRepository(repository.NewProductRepo(db), rdb, zap.NewNop()), mr, db
}

func TestCachedProductRepository_FindByBarcode(t *testing.T) {
	repo, mr, db := newCachedRepo(t)

	mall := testutil.SeedMall(t, db, "MALL01", "secret1")
	widget := testutil.SeedProduct(t, db, mall.ID, "123", "Widget", "9.99", 10)

	product, err := repo.FindByBarcode(mall.ID, "123")
	require.NoError(t, err)
	assert.Equal(t, widget.ID, product.ID)
	assert.True(t, mr.Exists(barcodeKey(mall.ID, "123")))

	// A stale cache entry wins until evicted
	require.NoError(t, db.Model(widget).Update("stock", 4).Error)
	cached, err := repo.FindByBarcode(mall.ID, "123")
	require.NoError(t, err)
	assert.Equal(t, 10, cached.Stock)
	assert.True(t, widget.Price.Equal(cached.Price))

	repo.Evict(mall.ID, "123")
	fresh, err := repo.FindByBarcode(mall.ID, "123")
	require.NoError(t, err)
	assert.Equal(t, 4, fresh.Stock)
}

func TestCachedProductRepository_NotFoundIsCachedBriefly(t *testing.T) {
	repo, mr, db := newCachedRepo(t)

	mall := testutil.SeedMall(t, db, "MALL01", "secret1")

	_, err := repo.FindByBarcode(mall.ID, "999")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	key := barcodeKey(mall.ID, "999")
	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, notFoundMarker, got)
	assert.Equal(t, notFoundTTL, mr.TTL(key))

	// Creating the product clears the marker
	product := &model.Product{MallID: mall.ID, Barcode: "999", Name: "Gadget", Price: decimal.RequireFromString("1.00"), Stock: 1}
	require.NoError(t, repo.Create(product))
	assert.False(t, mr.Exists(key))

	found, err := repo.FindByBarcode(mall.ID, "999")
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)
}

func TestCachedProductRepository_FallsBackWhenRedisIsDown(t *testing.T) {
	repo, mr, db := newCachedRepo(t)

	mall := testutil.SeedMall(t, db, "MALL01", "secret1")
	testutil.SeedProduct(t, db, mall.ID, "123", "Widget", "9.99", 10)

	mr.Close()

	product, err := repo.FindByBarcode(mall.ID, "123")
	require.NoError(t, err)
	assert.Equal(t, "Widget", product.Name)
}
