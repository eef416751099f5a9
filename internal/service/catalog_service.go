package service

import (
	"errors"
	"fmt"

	"mall-pos/internal/model"
	"mall-pos/internal/repository"
	"mall-pos/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	AddProduct(identity model.Identity, req *model.Product) error
	LookupByBarcode(mallID uuid.UUID, barcode string) (*model.Product, error)
	ListProducts(mallID uuid.UUID) ([]model.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	publisher   EventPublisher
	logger      *zap.Logger
}

func NewCatalogService(productRepo repository.ProductRepository, publisher EventPublisher, logger *zap.Logger) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		publisher:   publisherOrNoop(publisher),
		logger:      logger,
	}
}

func (s *catalogService) AddProduct(identity model.Identity, req *model.Product) error {
	// The product always lands in the caller's mall, whatever the body said
	req.ID = uuid.Nil
	req.MallID = identity.MallID

	if err := validator.FirstError(req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	existing, err := s.productRepo.FindByBarcode(identity.MallID, req.Barcode)
	if err == nil && existing != nil {
		return fmt.Errorf("barcode %q %w", req.Barcode, ErrConflict)
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if err := s.productRepo.Create(req); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("barcode %q %w", req.Barcode, ErrConflict)
		}
		return err
	}

	s.publisher.Publish(identity.MallID, map[string]interface{}{
		"type":   "stock_update",
		"action": "product_created",
		"product": map[string]interface{}{
			"id":      req.ID,
			"barcode": req.Barcode,
			"name":    req.Name,
			"stock":   req.Stock,
			"price":   req.Price,
		},
	})

	return nil
}

func (s *catalogService) LookupByBarcode(mallID uuid.UUID, barcode string) (*model.Product, error) {
	product, err := s.productRepo.FindByBarcode(mallID, barcode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) ListProducts(mallID uuid.UUID) ([]model.Product, error) {
	return s.productRepo.FindAllByMall(mallID)
}
