package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/rdrx/rdrx/internal/cache"
	"github.com/rdrx/rdrx/internal/config"
	"github.com/rdrx/rdrx/internal/database"
	"github.com/rdrx/rdrx/internal/handler"
	"github.com/rdrx/rdrx/internal/logger"
	"github.com/rdrx/rdrx/internal/middleware"
	"github.com/rdrx/rdrx/internal/queue"
	"github.com/rdrx/rdrx/internal/repository"
	"github.com/rdrx/rdrx/internal/router"
	"github.com/rdrx/rdrx/internal/service"
)

func main() {
	cfg := config.Load()

	logg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logg.Sync() //nolint:errcheck

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logg.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Bootstrap(ctx, db)
	cancel()
	if err != nil {
		logg.Fatal("bootstrap schema", zap.Error(err))
	}

	// Redis is optional; a nil client degrades the cache and the rate
	// limiter to pass-through.
	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}
	linkCache := cache.NewLinkCache(rdb, cfg.CacheTTL)

	userRepo := repository.NewUserRepo(db)
	linkRepo := repository.NewLinkRepo(db)
	bioRepo := repository.NewBioRepo(db)
	clickRepo := repository.NewClickRepo(db)
	fileRepo := repository.NewFileRepo(db)

	pub := queue.NewPublisher(cfg.AMQPURL, logg)
	if cfg.AMQPURL != "" {
		go queue.StartClickConsumer(cfg.AMQPURL, clickRepo, logg)
	}

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.BcryptCost, logg)
	shortSvc := service.NewShortenerService(linkRepo, fileRepo, clickRepo, linkCache, cfg.BcryptCost, logg)
	bioSvc := service.NewBioService(bioRepo, linkRepo, linkCache, logg)
	clickSvc := service.NewClickService(pub, clickRepo, logg)

	authH := handler.NewAuthHandler(authSvc, logg)
	linkH := handler.NewLinkHandler(shortSvc, cfg.BaseURL, logg)
	bioH := handler.NewBioHandler(bioSvc, logg)
	redirectH := handler.NewRedirectHandler(shortSvc, clickSvc, logg)
	adminH := handler.NewAdminHandler(userRepo, linkRepo, clickRepo, logg)
	devH := handler.NewDevHandler(authSvc, db, logg)
	healthH := handler.NewHealthHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.Authenticate(cfg.JWTSecret))

	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	router.RegisterPublic(e, authH, bioH, redirectH, healthH, limit)
	router.RegisterAPI(e, authH, linkH, bioH)
	router.RegisterAdmin(e, adminH)
	router.RegisterDev(e, devH, cfg.Env)

	addr := ":" + cfg.Port
	logg.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		logg.Fatal("server stopped", zap.Error(err))
	}
}
