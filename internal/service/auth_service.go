package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mall-pos/internal/model"
	"mall-pos/internal/repository"
	"mall-pos/pkg/jwt"
	"mall-pos/pkg/validator"
)

type AuthService interface {
	RegisterMall(req *RegisterMallRequest) (*model.Mall, error)
	LoginMall(mallCode, password string) (*LoginResponse, error)
	LoginUser(username, password string) (*LoginResponse, error)
	Authenticate(tokenString string) (*model.Identity, error)
	Logout(identity model.Identity) error
	ResetMallPassword(mallCode, newPassword string) error
}

type RegisterMallRequest struct {
	MallName string `json:"mall_name" validate:"required,max=255"`
	MallCode string `json:"mall_code" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Location string `json:"location" validate:"max=255"`
	Contact  string `json:"contact" validate:"max=100"`
}

type LoginResponse struct {
	Token   string         `json:"token"`
	Session model.Identity `json:"session"`
}

type authService struct {
	mallRepo repository.MallRepository
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	logger   *zap.Logger
}

func NewAuthService(mallRepo repository.MallRepository, userRepo repository.UserRepository, tokens *jwt.Manager, logger *zap.Logger) AuthService {
	return &authService{
		mallRepo: mallRepo,
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

func (s *authService) RegisterMall(req *RegisterMallRequest) (*model.Mall, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if _, err := s.mallRepo.FindByCode(req.MallCode); err == nil {
		return nil, fmt.Errorf("mall code %q %w", req.MallCode, ErrConflict)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	mall := &model.Mall{
		MallName:     req.MallName,
		MallCode:     req.MallCode,
		Location:     req.Location,
		Contact:      req.Contact,
		TokenVersion: uuid.NewString(),
	}
	if err := mall.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.mallRepo.Create(mall); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("mall code %q %w", req.MallCode, ErrConflict)
		}
		return nil, err
	}

	s.logger.Info("mall registered", zap.String("mall_id", mall.ID.String()), zap.String("mall_code", mall.MallCode))
	return mall, nil
}

// LoginMall authenticates the mall owner. The session carries the admin role and no user id.
func (s *authService) LoginMall(mallCode, password string) (*LoginResponse, error) {
	mall, err := s.mallRepo.FindByCode(mallCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !mall.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	identity := model.Identity{MallID: mall.ID, MallName: mall.MallName, Role: model.RoleAdmin}
	token, err := s.tokens.GenerateToken(mall.ID, mall.MallName, model.RoleAdmin, nil, mall.TokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{Token: token, Session: identity}, nil
}

// LoginUser authenticates a staff user. Inactive users are rejected even with the right password.
func (s *authService) LoginUser(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive || !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	mall, err := s.mallRepo.FindByID(user.MallID)
	if err != nil {
		return nil, err
	}

	userID := user.ID
	identity := model.Identity{MallID: mall.ID, MallName: mall.MallName, Role: user.Role, UserID: &userID}
	token, err := s.tokens.GenerateToken(mall.ID, mall.MallName, user.Role, &userID, user.TokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{Token: token, Session: identity}, nil
}

// Authenticate turns a bearer token into a request identity. The token must
// match the current token version of its mall (owner sessions) or user (staff
// sessions), and staff users must still be active.
func (s *authService) Authenticate(tokenString string) (*model.Identity, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, ErrUnauthorized
	}

	mall, err := s.mallRepo.FindByID(claims.MallID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	if claims.UserID == nil {
		if mall.TokenVersion != claims.TokenVersion {
			return nil, ErrUnauthorized
		}
		return &model.Identity{MallID: mall.ID, MallName: mall.MallName, Role: model.RoleAdmin}, nil
	}

	user, err := s.userRepo.FindByID(mall.ID, *claims.UserID)
	if err != nil || !user.IsActive || user.TokenVersion != claims.TokenVersion || !model.IsValidRole(user.Role) {
		return nil, ErrUnauthorized
	}

	userID := user.ID
	return &model.Identity{MallID: mall.ID, MallName: mall.MallName, Role: user.Role, UserID: &userID}, nil
}

// Logout revokes every token issued to the session's principal
func (s *authService) Logout(identity model.Identity) error {
	version := uuid.NewString()
	if identity.UserID != nil {
		return s.userRepo.UpdateTokenVersion(*identity.UserID, version)
	}
	return s.mallRepo.UpdateTokenVersion(identity.MallID, version)
}

func (s *authService) ResetMallPassword(mallCode, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: new password must be at least 6 characters", ErrValidation)
	}

	mall, err := s.mallRepo.FindByCode(mallCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("mall %q %w", mallCode, ErrNotFound)
		}
		return err
	}

	if err := mall.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}
	if err := s.mallRepo.UpdatePassword(mall.ID, mall.Password); err != nil {
		return err
	}

	// Sessions opened with the old password stop working
	if err := s.mallRepo.UpdateTokenVersion(mall.ID, uuid.NewString()); err != nil {
		return err
	}

	s.logger.Info("mall password reset", zap.String("mall_code", mallCode))
	return nil
}
