package service

import (
	"errors"
	"fmt"

	"mall-pos/internal/model"
	"mall-pos/internal/repository"
	"mall-pos/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CheckoutService interface {
	Checkout(identity model.Identity, req *CheckoutRequest) (*model.Transaction, error)
	GetTransactions(mallID uuid.UUID, limit int) ([]model.Transaction, error)
	GetTransaction(mallID, id uuid.UUID) (*model.Transaction, error)
}

// CartItem is one scanned line of the cart, as the billing screen built it
type CartItem struct {
	ID       uuid.UUID       `json:"id" validate:"uuid_required"`
	Quantity int             `json:"quantity" validate:"gt=0"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
}

type CheckoutRequest struct {
	Items         []CartItem      `json:"items" validate:"required,dive"`
	Total         decimal.Decimal `json:"total" validate:"gte=0"`
	PaymentMethod string          `json:"payment_method" validate:"required,max=50"`
	CustomerName  string          `json:"customer_name" validate:"max=255"`
}

// barcodeEvicter is implemented by product repositories that cache lookups
type barcodeEvicter interface {
	Evict(mallID uuid.UUID, barcodes ...string)
}

type checkoutService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
	publisher       EventPublisher
	logger          *zap.Logger
}

func NewCheckoutService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, db *gorm.DB, publisher EventPublisher, logger *zap.Logger) CheckoutService {
	return &checkoutService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		db:              db,
		publisher:       publisherOrNoop(publisher),
		logger:          logger,
	}
}

// Checkout commits a cart as one sale. The header, every line item and every
// stock decrement are written in a single database transaction; any failure
// rolls all of them back. Cart prices and the total are checked against the
// catalog, so the persisted ledger always matches both the cart and the
// catalog at the time of sale.
func (s *checkoutService) Checkout(identity model.Identity, req *CheckoutRequest) (*model.Transaction, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := validator.FirstError(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var (
		sale     *model.Transaction
		products map[uuid.UUID]model.Product
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 1. Lock the mall's products referenced by the cart
		locked, err := s.productRepo.FindForUpdate(tx, identity.MallID, cartProductIDs(req.Items))
		if err != nil {
			return err
		}
		products = make(map[uuid.UUID]model.Product, len(locked))
		for _, p := range locked {
			products[p.ID] = p
		}

		// 2. Re-derive pricing from the catalog
		total := decimal.Zero
		for _, item := range req.Items {
			product, ok := products[item.ID]
			if !ok {
				return fmt.Errorf("%w: %s", ErrProductNotFound, item.ID)
			}
			if !item.Price.Equal(product.Price) {
				return fmt.Errorf("%w: %s costs %s, cart has %s",
					ErrPriceMismatch, product.Name, product.Price.StringFixed(2), item.Price.StringFixed(2))
			}
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		if !total.Equal(req.Total) {
			return fmt.Errorf("%w: expected %s, got %s", ErrTotalMismatch, total.StringFixed(2), req.Total.StringFixed(2))
		}

		// 3. Header
		header := &model.Transaction{
			MallID:        identity.MallID,
			UserID:        identity.UserID,
			TotalAmount:   total,
			PaymentMethod: req.PaymentMethod,
			CustomerName:  req.CustomerName,
		}
		if err := s.transactionRepo.Create(tx, header); err != nil {
			return err
		}

		// 4. Line items and stock, in cart order
		for _, item := range req.Items {
			line := model.TransactionItem{
				TransactionID: header.ID,
				ProductID:     item.ID,
				Quantity:      item.Quantity,
				Price:         item.Price,
			}
			if err := s.transactionRepo.CreateItem(tx, &line); err != nil {
				return err
			}

			if err := s.productRepo.DecrementStock(tx, identity.MallID, item.ID, item.Quantity); err != nil {
				if errors.Is(err, repository.ErrNotEnough) {
					return fmt.Errorf("%w: %s", ErrInsufficientStock, products[item.ID].Name)
				}
				return err
			}
			header.Items = append(header.Items, line)
		}

		sale = header
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(identity, sale, products)
	return sale, nil
}

func (s *checkoutService) afterCommit(identity model.Identity, sale *model.Transaction, products map[uuid.UUID]model.Product) {
	sold := make(map[uuid.UUID]int, len(products))
	for _, item := range sale.Items {
		sold[item.ProductID] += item.Quantity
	}

	barcodes := make([]string, 0, len(products))
	stock := make([]map[string]interface{}, 0, len(products))
	for id, qty := range sold {
		p := products[id]
		barcodes = append(barcodes, p.Barcode)
		stock = append(stock, map[string]interface{}{
			"id":        p.ID,
			"barcode":   p.Barcode,
			"name":      p.Name,
			"old_stock": p.Stock,
			"new_stock": p.Stock - qty,
		})
	}

	if cache, ok := s.productRepo.(barcodeEvicter); ok {
		cache.Evict(identity.MallID, barcodes...)
	}

	s.logger.Info("checkout completed",
		zap.String("mall_id", identity.MallID.String()),
		zap.String("transaction_id", sale.ID.String()),
		zap.Int("lines", len(sale.Items)),
		zap.String("total", sale.TotalAmount.StringFixed(2)))

	s.publisher.Publish(identity.MallID, map[string]interface{}{
		"type": "sale_completed",
		"transaction": map[string]interface{}{
			"id":             sale.ID,
			"total_amount":   sale.TotalAmount,
			"payment_method": sale.PaymentMethod,
			"user_id":        sale.UserID,
			"lines":          len(sale.Items),
		},
	})
	s.publisher.Publish(identity.MallID, map[string]interface{}{
		"type":     "stock_update",
		"action":   "checkout",
		"products": stock,
	})
}

func (s *checkoutService) GetTransactions(mallID uuid.UUID, limit int) ([]model.Transaction, error) {
	return s.transactionRepo.FindAllByMall(mallID, limit)
}

func (s *checkoutService) GetTransaction(mallID, id uuid.UUID) (*model.Transaction, error) {
	sale, err := s.transactionRepo.FindByID(mallID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("transaction %w", ErrNotFound)
		}
		return nil, err
	}
	return sale, nil
}

func cartProductIDs(items []CartItem) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		ids = append(ids, item.ID)
	}
	return ids
}
