package handler

import (
	"mall-pos/internal/middleware"
	"mall-pos/internal/model"
	"mall-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProductHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

func NewProductHandler(catalog service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: logger}
}

// CreateProduct adds a product to the caller's mall
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.catalog.AddProduct(*identity, &product); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

// GetProducts lists the caller's catalog
// GET /api/v1/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	products, err := h.catalog.ListProducts(identity.MallID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(products)
}

// ScanBarcode looks a barcode up in the caller's mall
// GET /api/v1/products/scan/:barcode
func (h *ProductHandler) ScanBarcode(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	product, err := h.catalog.LookupByBarcode(identity.MallID, c.Params("barcode"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(product.ToScanResult())
}
