package repository

import (
	"mall-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAllByMall(mallID uuid.UUID) ([]model.Product, error)
	FindByBarcode(mallID uuid.UUID, barcode string) (*model.Product, error)
	FindForUpdate(tx *gorm.DB, mallID uuid.UUID, ids []uuid.UUID) ([]model.Product, error)
	DecrementStock(tx *gorm.DB, mallID, id uuid.UUID, quantity int) error
	CountByMall(mallID uuid.UUID) (int64, error)
	FindLowStock(threshold int) ([]model.Product, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return translate(r.db.Create(product).Error)
}

func (r *productRepo) FindAllByMall(mallID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("mall_id = ?", mallID).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByBarcode(mallID uuid.UUID, barcode string) (*model.Product, error) {
	var product model.Product
	if err := r.db.Where("mall_id = ? AND barcode = ?", mallID, barcode).First(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// FindForUpdate loads and row-locks the mall's products with the given ids.
// It takes *gorm.DB (tx) so it runs inside the caller's transaction.
func (r *productRepo) FindForUpdate(tx *gorm.DB, mallID uuid.UUID, ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	query := tx
	// SQLite has no row locks; its single writer serializes the transaction instead
	if tx.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.Where("mall_id = ? AND id IN ?", mallID, ids).
		Order("id ASC").
		Find(&products).Error
	return products, err
}

// DecrementStock applies a relative `stock = stock - quantity` update. The
// `stock >= quantity` guard makes the check and the write a single statement,
// so concurrent checkouts cannot drive stock below zero.
func (r *productRepo) DecrementStock(tx *gorm.DB, mallID, id uuid.UUID, quantity int) error {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND mall_id = ? AND stock >= ?", id, mallID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotEnough
	}
	return nil
}

func (r *productRepo) CountByMall(mallID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("mall_id = ?", mallID).Count(&count).Error
	return count, err
}

// FindLowStock returns products of every mall whose stock is below threshold
func (r *productRepo) FindLowStock(threshold int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("stock < ?", threshold).Order("mall_id ASC, stock ASC").Find(&products).Error
	return products, err
}
