package repository

import (
	"mall-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MallRepository interface {
	Create(mall *model.Mall) error
	FindByID(id uuid.UUID) (*model.Mall, error)
	FindByCode(code string) (*model.Mall, error)
	UpdatePassword(id uuid.UUID, hashedPassword string) error
	UpdateTokenVersion(id uuid.UUID, version string) error
}

type mallRepo struct {
	db *gorm.DB
}

func NewMallRepo(db *gorm.DB) MallRepository {
	return &mallRepo{db}
}

func (r *mallRepo) Create(mall *model.Mall) error {
	return translate(r.db.Create(mall).Error)
}

func (r *mallRepo) FindByID(id uuid.UUID) (*model.Mall, error) {
	var mall model.Mall
	if err := r.db.First(&mall, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &mall, nil
}

func (r *mallRepo) FindByCode(code string) (*model.Mall, error) {
	var mall model.Mall
	if err := r.db.Where("mall_code = ?", code).First(&mall).Error; err != nil {
		return nil, translate(err)
	}
	return &mall, nil
}

func (r *mallRepo) UpdatePassword(id uuid.UUID, hashedPassword string) error {
	return r.db.Model(&model.Mall{}).Where("id = ?", id).Update("password", hashedPassword).Error
}

func (r *mallRepo) UpdateTokenVersion(id uuid.UUID, version string) error {
	return r.db.Model(&model.Mall{}).Where("id = ?", id).Update("token_version", version).Error
}
