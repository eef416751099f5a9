package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mall-pos/internal/model"
	"mall-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	notFoundMarker = "notfound"
	notFoundTTL    = time.Minute
	opTimeout      = 2 * time.Second
)

// CachedProductRepository serves barcode scans from Redis. Every other
// method falls through to the wrapped repository.
type CachedProductRepository struct {
	repository.ProductRepository
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedProductRepository(realRepo repository.ProductRepository, rdb *redis.Client, logger *zap.Logger) *CachedProductRepository {
	return &CachedProductRepository{
		ProductRepository: realRepo,
		redis:             rdb,
		ttl:               5 * time.Minute,
		logger:            logger,
	}
}

func barcodeKey(mallID uuid.UUID, barcode string) string {
	return fmt.Sprintf("product:%s:%s", mallID, barcode)
}

func (c *CachedProductRepository) FindByBarcode(mallID uuid.UUID, barcode string) (*model.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	key := barcodeKey(mallID, barcode)
	data, err := c.redis.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, repository.ErrNotFound
		}

		var product model.Product
		if err := json.Unmarshal(data, &product); err != nil {
			c.logger.Warn("failed to unmarshal cached product, continuing with DB", zap.String("key", key), zap.Error(err))
			break
		}
		return &product, nil

	case errors.Is(err, redis.Nil):

	default:
		c.logger.Warn("redis error, continuing with DB", zap.Error(err))
	}

	product, err := c.ProductRepository.FindByBarcode(mallID, barcode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			if setErr := c.redis.Set(ctx, key, notFoundMarker, notFoundTTL).Err(); setErr != nil {
				c.logger.Warn("failed to cache notfound", zap.Error(setErr))
			}
		}
		return nil, err
	}

	jsonData, err := json.Marshal(product)
	if err != nil {
		c.logger.Warn("failed to marshal product", zap.Error(err))
		return product, nil
	}
	if err := c.redis.Set(ctx, key, jsonData, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache product", zap.Error(err))
	}

	return product, nil
}

func (c *CachedProductRepository) Create(product *model.Product) error {
	// Drops a cached "notfound" for the new barcode
	c.Evict(product.MallID, product.Barcode)
	return c.ProductRepository.Create(product)
}

// Evict drops cached scans, typically after their stock changed
func (c *CachedProductRepository) Evict(mallID uuid.UUID, barcodes ...string) {
	if len(barcodes) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	keys := make([]string, len(barcodes))
	for i, barcode := range barcodes {
		keys[i] = barcodeKey(mallID, barcode)
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("failed to evict product cache", zap.Strings("keys", keys), zap.Error(err))
	}
}
