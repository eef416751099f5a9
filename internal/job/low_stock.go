package job

import (
	"sync"

	"mall-pos/internal/model"
	"mall-pos/internal/repository"
	"mall-pos/internal/service"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// LowStockJob scans every mall for products under the threshold and pushes a
// low_stock event to that mall's live clients.
type LowStockJob struct {
	productRepo repository.ProductRepository
	publisher   service.EventPublisher
	threshold   int
	logger      *zap.Logger

	mu      sync.Mutex
	running bool
}

func NewLowStockJob(productRepo repository.ProductRepository, publisher service.EventPublisher, threshold int, logger *zap.Logger) *LowStockJob {
	return &LowStockJob{
		productRepo: productRepo,
		publisher:   publisher,
		threshold:   threshold,
		logger:      logger,
	}
}

// Run implements cron.Job. Overlapping runs are skipped.
func (j *LowStockJob) Run() {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		j.logger.Debug("low stock scan still running, skipping")
		return
	}
	j.running = true
	j.mu.Unlock()

	defer func() {
		j.mu.Lock()
		j.running = false
		j.mu.Unlock()
	}()

	products, err := j.productRepo.FindLowStock(j.threshold)
	if err != nil {
		j.logger.Error("low stock scan failed", zap.Error(err))
		return
	}

	byMall := make(map[uuid.UUID][]model.Product)
	order := make([]uuid.UUID, 0)
	for _, p := range products {
		if _, ok := byMall[p.MallID]; !ok {
			order = append(order, p.MallID)
		}
		byMall[p.MallID] = append(byMall[p.MallID], p)
	}

	for _, mallID := range order {
		items := make([]map[string]interface{}, 0, len(byMall[mallID]))
		for _, p := range byMall[mallID] {
			items = append(items, map[string]interface{}{
				"id":      p.ID,
				"barcode": p.Barcode,
				"name":    p.Name,
				"stock":   p.Stock,
			})
		}
		j.publisher.Publish(mallID, map[string]interface{}{
			"type":      "low_stock",
			"threshold": j.threshold,
			"products":  items,
		})
	}

	j.logger.Info("low stock scan done", zap.Int("products", len(products)), zap.Int("malls", len(order)))
}

// Schedule registers job on c under the given cron spec
func Schedule(c *cron.Cron, spec string, job cron.Job) (cron.EntryID, error) {
	return c.AddJob(spec, job)
}
