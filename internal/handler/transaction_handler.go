package handler

import (
	"mall-pos/internal/middleware"
	"mall-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultTransactionListLimit = 100

type TransactionHandler struct {
	checkout service.CheckoutService
	logger   *zap.Logger
}

func NewTransactionHandler(checkout service.CheckoutService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{checkout: checkout, logger: logger}
}

// Checkout commits the cart as a sale
// POST /api/v1/transactions/checkout
func (h *TransactionHandler) Checkout(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.checkout.Checkout(*identity, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success":        true,
		"transaction_id": sale.ID,
	})
}

// GetTransactions lists the caller's most recent sales
// GET /api/v1/transactions?limit=
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	transactions, err := h.checkout.GetTransactions(identity.MallID, c.QueryInt("limit", defaultTransactionListLimit))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(transactions)
}

// GetTransaction returns one sale with its items
// GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	txID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	sale, err := h.checkout.GetTransaction(identity.MallID, txID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(sale)
}
