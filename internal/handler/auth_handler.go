package handler

import (
	"mall-pos/internal/middleware"
	"mall-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// MallLoginRequest represents the mall owner login body
type MallLoginRequest struct {
	MallCode string `json:"mall_code"`
	Password string `json:"password"`
}

// UserLoginRequest represents the staff login body
type UserLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a mall account
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterMallRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	mall, err := h.authService.RegisterMall(&req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Mall registered successfully",
		"data":    mall,
	})
}

// Login handles mall owner authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req MallLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.MallCode == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Mall code and password are required"})
	}

	response, err := h.authService.LoginMall(req.MallCode, req.Password)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(response)
}

// UserLogin handles staff authentication
// POST /api/v1/auth/user-login
func (h *AuthHandler) UserLogin(c *fiber.Ctx) error {
	var req UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Username and password are required"})
	}

	response, err := h.authService.LoginUser(req.Username, req.Password)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(response)
}

// Logout revokes the caller's tokens
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := h.authService.Logout(*identity); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me returns the current session
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return c.JSON(identity)
}
