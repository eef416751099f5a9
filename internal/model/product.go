package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Barcodes are unique within a mall.
type Product struct {
	BaseModel
	MallID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_products_mall_barcode" json:"mall_id"`
	Barcode  string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_products_mall_barcode" json:"barcode" validate:"required"`
	Name     string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price" validate:"gte=0"`
	Stock    int             `gorm:"default:0" json:"stock" validate:"gte=0"`
	Category string          `gorm:"type:varchar(100)" json:"category"`
}

// ScanResult is the payload returned to the billing screen after a barcode scan
type ScanResult struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

func (p *Product) ToScanResult() ScanResult {
	return ScanResult{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock}
}
