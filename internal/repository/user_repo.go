package repository

import (
	"mall-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository stores staff users. Every lookup except the login lookup is
// scoped by mall id.
type UserRepository interface {
	Create(user *model.User) error
	FindByID(mallID, id uuid.UUID) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindAllByMall(mallID uuid.UUID) ([]model.User, error)
	CountActiveByMall(mallID uuid.UUID) (int64, error)
	SetActive(mallID, id uuid.UUID, active bool) error
	UpdateTokenVersion(id uuid.UUID, version string) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) Create(user *model.User) error {
	return translate(r.db.Create(user).Error)
}

func (r *userRepo) FindByID(mallID, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.Where("mall_id = ?", mallID).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) FindAllByMall(mallID uuid.UUID) ([]model.User, error) {
	var users []model.User
	if err := r.db.Where("mall_id = ?", mallID).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) CountActiveByMall(mallID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("mall_id = ? AND is_active = ?", mallID, true).Count(&count).Error
	return count, err
}

// SetActive soft-enables or soft-disables a user. Users are never hard deleted.
func (r *userRepo) SetActive(mallID, id uuid.UUID, active bool) error {
	res := r.db.Model(&model.User{}).
		Where("id = ? AND mall_id = ?", id, mallID).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepo) UpdateTokenVersion(id uuid.UUID, version string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("token_version", version).Error
}
