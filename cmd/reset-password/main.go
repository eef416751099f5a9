package main

import (
	"fmt"
	"log"
	"os"

	"mall-pos/internal/config"
	"mall-pos/internal/model"
	"mall-pos/internal/repository"
	"mall-pos/internal/service"
	"mall-pos/pkg/database"
	"mall-pos/pkg/jwt"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	mallCode := pflag.StringP("mall-code", "m", "", "code of the mall whose password is reset")
	password := pflag.StringP("password", "p", "", "new password (at least 6 characters)")
	pflag.Parse()

	if *mallCode == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: reset-password --mall-code CODE --password NEW_PASSWORD")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("cannot init logger: %v", err)
	}
	defer logger.Sync()

	// 2. Setup Database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("cannot connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		logger.Fatal("cannot migrate db", zap.Error(err))
	}

	// 3. Reset and revoke open sessions
	authService := service.NewAuthService(
		repository.NewMallRepo(db),
		repository.NewUserRepo(db),
		jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL),
		logger,
	)
	if err := authService.ResetMallPassword(*mallCode, *password); err != nil {
		logger.Fatal("password reset failed", zap.String("mall_code", *mallCode), zap.Error(err))
	}

	logger.Info("password reset, existing sessions revoked", zap.String("mall_code", *mallCode))
}
