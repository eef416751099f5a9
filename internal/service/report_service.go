package service

import (
	"mall-pos/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultDailySalesDays = 30
	maxDailySalesDays     = 366
	defaultTopProducts    = 10
	maxTopProducts        = 100
)

type ReportService interface {
	DailySales(mallID uuid.UUID, limit int) ([]repository.DailySales, error)
	TopProducts(mallID uuid.UUID, limit int) ([]repository.TopProduct, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

// DailySales returns per-day totals, most recent day first
func (s *reportService) DailySales(mallID uuid.UUID, limit int) ([]repository.DailySales, error) {
	return s.reportRepo.DailySales(mallID, clampLimit(limit, defaultDailySalesDays, maxDailySalesDays))
}

// TopProducts returns products ordered by units sold, best seller first
func (s *reportService) TopProducts(mallID uuid.UUID, limit int) ([]repository.TopProduct, error) {
	return s.reportRepo.TopProducts(mallID, clampLimit(limit, defaultTopProducts, maxTopProducts))
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
