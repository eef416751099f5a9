package repository

import (
	"time"

	"mall-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionRepository is the ledger: sale headers and their line items
type TransactionRepository interface {
	Create(tx *gorm.DB, sale *model.Transaction) error
	CreateItem(tx *gorm.DB, item *model.TransactionItem) error
	FindAllByMall(mallID uuid.UUID, limit int) ([]model.Transaction, error)
	FindByID(mallID, id uuid.UUID) (*model.Transaction, error)
	GetDashboardStats(mallID uuid.UUID, dayStart, dayEnd time.Time) (*DashboardStats, error)
}

// DashboardStats is the overview shown on the mall dashboard
type DashboardStats struct {
	TotalSales         decimal.Decimal     `json:"total_sales"`
	TotalProducts      int64               `json:"total_products"`
	ActiveUsers        int64               `json:"active_users"`
	TodaySales         decimal.Decimal     `json:"today_sales"`
	RecentTransactions []model.Transaction `json:"recent_transactions"`
}

const recentTransactionsLimit = 10

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

// Create inserts only the header; items are inserted one by one with CreateItem
func (r *transactionRepo) Create(tx *gorm.DB, sale *model.Transaction) error {
	return tx.Omit(clause.Associations).Create(sale).Error
}

func (r *transactionRepo) CreateItem(tx *gorm.DB, item *model.TransactionItem) error {
	return tx.Omit(clause.Associations).Create(item).Error
}

func (r *transactionRepo) FindAllByMall(mallID uuid.UUID, limit int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	query := r.db.Preload("Items").Where("mall_id = ?", mallID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(mallID, id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Items").Preload("Items.Product").
		Where("mall_id = ?", mallID).
		First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &transaction, nil
}

type sumRow struct {
	Total decimal.Decimal
}

// roundMoney drops float noise from sums. SQLite keeps decimal columns as REAL.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// GetDashboardStats fills the sales side of the dashboard. Product and user
// counts come from their own repositories.
func (r *transactionRepo) GetDashboardStats(mallID uuid.UUID, dayStart, dayEnd time.Time) (*DashboardStats, error) {
	var stats DashboardStats

	var lifetime sumRow
	if err := r.db.Model(&model.Transaction{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("mall_id = ?", mallID).
		Scan(&lifetime).Error; err != nil {
		return nil, err
	}
	stats.TotalSales = roundMoney(lifetime.Total)

	var today sumRow
	if err := r.db.Model(&model.Transaction{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("mall_id = ? AND created_at >= ? AND created_at < ?", mallID, dayStart.UTC(), dayEnd.UTC()).
		Scan(&today).Error; err != nil {
		return nil, err
	}
	stats.TodaySales = roundMoney(today.Total)

	if err := r.db.Where("mall_id = ?", mallID).
		Order("created_at DESC").
		Limit(recentTransactionsLimit).
		Find(&stats.RecentTransactions).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
