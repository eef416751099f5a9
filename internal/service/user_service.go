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

type UserService interface {
	CreateUser(identity model.Identity, req *CreateUserRequest) (*model.User, error)
	GetUsers(identity model.Identity) ([]model.UserResponse, error)
	SetActive(identity model.Identity, userID uuid.UUID, active bool) (*model.User, error)
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin cashier"`
}

type userService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, logger *zap.Logger) UserService {
	return &userService{userRepo: userRepo, logger: logger}
}

func (s *userService) CreateUser(identity model.Identity, req *CreateUserRequest) (*model.User, error) {
	if !identity.IsAdmin() {
		return nil, ErrForbidden
	}

	if err := validator.FirstError(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// Staff log in with the username alone, so it must be unique across malls
	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, fmt.Errorf("username %q %w", req.Username, ErrConflict)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user := &model.User{
		MallID:       identity.MallID,
		Username:     req.Username,
		Role:         req.Role,
		IsActive:     true,
		TokenVersion: uuid.NewString(),
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("username %q %w", req.Username, ErrConflict)
		}
		return nil, err
	}

	s.logger.Info("staff user created",
		zap.String("mall_id", identity.MallID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role))
	return user, nil
}

func (s *userService) GetUsers(identity model.Identity) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAllByMall(identity.MallID)
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i := range users {
		responses[i] = users[i].ToResponse()
	}
	return responses, nil
}

// SetActive soft-disables or re-enables a staff user of the caller's mall
func (s *userService) SetActive(identity model.Identity, userID uuid.UUID, active bool) (*model.User, error) {
	if !identity.IsAdmin() {
		return nil, ErrForbidden
	}
	if !active && identity.UserID != nil && *identity.UserID == userID {
		return nil, fmt.Errorf("%w: cannot deactivate your own account", ErrValidation)
	}

	if err := s.userRepo.SetActive(identity.MallID, userID, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %w", ErrNotFound)
		}
		return nil, err
	}

	return s.userRepo.FindByID(identity.MallID, userID)
}
