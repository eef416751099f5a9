package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mall-pos/internal/cache"
	"mall-pos/internal/config"
	"mall-pos/internal/handler"
	"mall-pos/internal/job"
	"mall-pos/internal/model"
	"mall-pos/internal/repository"
	"mall-pos/internal/service"
	"mall-pos/internal/ws"
	"mall-pos/pkg/database"
	"mall-pos/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jmoiron/sqlx"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const devJWTSecret = "mall-pos-dev-secret"

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	zapLogger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("cannot init logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			zapLogger.Fatal("JWT_SECRET must be set outside development")
		}
		zapLogger.Warn("JWT_SECRET not set, using development secret")
		cfg.JWTSecret = devJWTSecret
	}

	// 2. Setup Database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		zapLogger.Fatal("cannot connect to database", zap.Error(err), zap.String("driver", cfg.Database.Driver))
	}
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		zapLogger.Fatal("cannot migrate db", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("cannot get sql.DB", zap.Error(err))
	}
	reportDB := sqlx.NewDb(sqlDB, database.DriverName(db))

	// 3. Setup WebSocket Hub
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	wsHub := ws.NewHub(zapLogger)
	go wsHub.Run(ctx)

	// 4. Dependency Injection (Wiring Layers)
	mallRepo := repository.NewMallRepo(db)
	userRepo := repository.NewUserRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	productRepo := repository.NewProductRepo(db)

	if cfg.RedisURL != "" {
		rdb, err := cache.ConnectRedis(cache.Config{
			RedisURL:      cfg.RedisURL,
			RedisPassword: cfg.RedisPassword,
			RedisDB:       cfg.RedisDB,
		})
		if err != nil {
			zapLogger.Warn("redis unavailable, serving scans from the database", zap.Error(err))
		} else {
			defer rdb.Close()
			productRepo = cache.NewCachedProductRepository(productRepo, rdb, zapLogger)
			zapLogger.Info("barcode cache enabled", zap.String("redis", cfg.RedisURL))
		}
	}

	svc := handler.Services{
		Auth:      service.NewAuthService(mallRepo, userRepo, jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL), zapLogger),
		Users:     service.NewUserService(userRepo, zapLogger),
		Catalog:   service.NewCatalogService(productRepo, wsHub, zapLogger),
		Checkout:  service.NewCheckoutService(productRepo, txRepo, db, wsHub, zapLogger),
		Reports:   service.NewReportService(repository.NewReportRepo(reportDB)),
		Dashboard: service.NewDashboardService(txRepo, productRepo, userRepo),
	}

	// 5. Background jobs
	c := cron.New()
	lowStock := job.NewLowStockJob(productRepo, wsHub, cfg.LowStockThreshold, zapLogger)
	if _, err := job.Schedule(c, cfg.LowStockSchedule, lowStock); err != nil {
		zapLogger.Fatal("invalid LOW_STOCK_SCHEDULE", zap.Error(err), zap.String("schedule", cfg.LowStockSchedule))
	}
	c.Start()

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Mall POS v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	handler.RegisterRoutes(app, svc, wsHub, zapLogger)

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zapLogger.Panic("server stopped", zap.Error(err))
		}
	}()
	zapLogger.Info("server started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down server")
	<-c.Stop().Done()
	if err := app.Shutdown(); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}
	stop()

	zapLogger.Info("server exited")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
