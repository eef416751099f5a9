package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is one completed sale. Rows are never updated after insert.
type Transaction struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key;" json:"id"`
	MallID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"mall_id"`
	UserID        *uuid.UUID        `gorm:"type:uuid;index" json:"user_id"` // nil for self-checkout
	TotalAmount   decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	PaymentMethod string            `gorm:"type:varchar(50)" json:"payment_method"`
	CustomerName  string            `gorm:"type:varchar(255)" json:"customer_name"`
	CreatedAt     time.Time         `gorm:"index" json:"created_at"`
	Items         []TransactionItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
}

// TransactionItem is one line of a Transaction. Price is the unit price captured at sale time.
type TransactionItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product       *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (i *TransactionItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
