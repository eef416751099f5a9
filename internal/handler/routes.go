package handler

import (
	"mall-pos/internal/middleware"
	"mall-pos/internal/model"
	"mall-pos/internal/service"
	"mall-pos/internal/ws"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Services are the dependencies the HTTP surface is built on
type Services struct {
	Auth      service.AuthService
	Users     service.UserService
	Catalog   service.CatalogService
	Checkout  service.CheckoutService
	Reports   service.ReportService
	Dashboard service.DashboardService
}

// RegisterRoutes mounts the API, the websocket stream and the health check on app
func RegisterRoutes(app *fiber.App, svc Services, hub *ws.Hub, logger *zap.Logger) {
	authHandler := NewAuthHandler(svc.Auth, logger)
	userHandler := NewUserHandler(svc.Users, logger)
	productHandler := NewProductHandler(svc.Catalog, logger)
	txHandler := NewTransactionHandler(svc.Checkout, logger)
	reportHandler := NewReportHandler(svc.Reports, logger)
	dashHandler := NewDashboardHandler(svc.Dashboard, logger)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/user-login", authHandler.UserLogin)

	// ============ PROTECTED ROUTES ============
	requireAuth := middleware.RequireAuth(svc.Auth)
	auth.Post("/logout", requireAuth, authHandler.Logout)
	auth.Get("/me", requireAuth, authHandler.Me)

	protected := api.Group("", requireAuth)

	// Dashboard
	protected.Get("/dashboard/stats", middleware.RequirePrivilege(model.PrivDashboardView), dashHandler.GetDashboardStats)

	// Products
	protected.Get("/products", middleware.RequirePrivilege(model.PrivProductView), productHandler.GetProducts)
	protected.Post("/products", middleware.RequirePrivilege(model.PrivProductCreate), productHandler.CreateProduct)
	protected.Get("/products/scan/:barcode", middleware.RequirePrivilege(model.PrivProductView), productHandler.ScanBarcode)

	// Transactions
	protected.Post("/transactions/checkout", middleware.RequirePrivilege(model.PrivTransactionCreate), txHandler.Checkout)
	protected.Get("/transactions", middleware.RequirePrivilege(model.PrivTransactionView), txHandler.GetTransactions)
	protected.Get("/transactions/:id", middleware.RequirePrivilege(model.PrivTransactionView), txHandler.GetTransaction)

	// Reports
	protected.Get("/reports/daily-sales", middleware.RequirePrivilege(model.PrivReportView), reportHandler.DailySales)
	protected.Get("/reports/top-products", middleware.RequirePrivilege(model.PrivReportView), reportHandler.TopProducts)

	// User management
	protected.Get("/users", middleware.RequirePrivilege(model.PrivUserView), userHandler.GetUsers)
	protected.Post("/users", middleware.RequirePrivilege(model.PrivUserCreate), userHandler.CreateUser)
	protected.Put("/users/:id/active", middleware.RequirePrivilege(model.PrivUserUpdate), userHandler.SetActive)

	// WebSocket
	app.Get("/ws", RequireWSUpgrade(svc.Auth), LiveEvents(hub))
}
