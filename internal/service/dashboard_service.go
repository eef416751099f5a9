package service

import (
	"time"

	"mall-pos/internal/repository"

	"github.com/google/uuid"
)

type DashboardService interface {
	GetDashboardStats(mallID uuid.UUID) (*repository.DashboardStats, error)
}

type dashboardService struct {
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

func NewDashboardService(txRepo repository.TransactionRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository) DashboardService {
	return &dashboardService{
		txRepo:      txRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

func (s *dashboardService) GetDashboardStats(mallID uuid.UUID) (*repository.DashboardStats, error) {
	dayStart, dayEnd := utcDay(s.now())
	stats, err := s.txRepo.GetDashboardStats(mallID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	if stats.TotalProducts, err = s.productRepo.CountByMall(mallID); err != nil {
		return nil, err
	}
	if stats.ActiveUsers, err = s.userRepo.CountActiveByMall(mallID); err != nil {
		return nil, err
	}
	return stats, nil
}

// utcDay returns the UTC calendar day holding t, the same day the daily sales report groups by
func utcDay(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
