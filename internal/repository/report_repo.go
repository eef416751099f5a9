package repository

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ReportRepository runs the read-only sales rollups. It uses sqlx over the
// same connection pool as GORM.
type ReportRepository interface {
	DailySales(mallID uuid.UUID, limit int) ([]DailySales, error)
	TopProducts(mallID uuid.UUID, limit int) ([]TopProduct, error)
}

type DailySales struct {
	Date  string          `db:"date" json:"date"`
	Total decimal.Decimal `db:"total" json:"total"`
}

type TopProduct struct {
	ProductID string `db:"product_id" json:"product_id"`
	Name      string `db:"name" json:"name"`
	Sold      int64  `db:"sold" json:"sold"`
}

// Days are UTC calendar days on every driver. SQLite's DATE() already
// normalizes to UTC; Postgres needs the conversion spelled out.
const (
	sqliteDay   = "DATE(created_at)"
	postgresDay = "DATE(created_at AT TIME ZONE 'UTC')"
)

const dailySalesQuery = `
	SELECT CAST(%[1]s AS TEXT) AS date,
	       COALESCE(SUM(total_amount), 0) AS total
	FROM transactions
	WHERE mall_id = ?
	GROUP BY %[1]s
	ORDER BY date DESC
	LIMIT ?`

const topProductsQuery = `
	SELECT CAST(p.id AS TEXT) AS product_id,
	       p.name AS name,
	       SUM(ti.quantity) AS sold
	FROM transaction_items ti
	JOIN products p ON ti.product_id = p.id
	JOIN transactions t ON ti.transaction_id = t.id
	WHERE t.mall_id = ?
	GROUP BY p.id, p.name
	ORDER BY sold DESC, p.name ASC
	LIMIT ?`

type reportRepo struct {
	db         *sqlx.DB
	dailySales string
}

func NewReportRepo(db *sqlx.DB) ReportRepository {
	day := postgresDay
	if db.DriverName() == "sqlite" {
		day = sqliteDay
	}
	return &reportRepo{
		db:         db,
		dailySales: db.Rebind(fmt.Sprintf(dailySalesQuery, day)),
	}
}

func (r *reportRepo) DailySales(mallID uuid.UUID, limit int) ([]DailySales, error) {
	rows := []DailySales{}
	if err := r.db.Select(&rows, r.dailySales, mallID, limit); err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Total = roundMoney(rows[i].Total)
	}
	return rows, nil
}

func (r *reportRepo) TopProducts(mallID uuid.UUID, limit int) ([]TopProduct, error) {
	rows := []TopProduct{}
	if err := r.db.Select(&rows, r.db.Rebind(topProductsQuery), mallID, limit); err != nil {
		return nil, err
	}
	return rows, nil
}
