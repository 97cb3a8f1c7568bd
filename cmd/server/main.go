package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/Hostizzy/hostizzy-pms/internal/config"
	"github.com/Hostizzy/hostizzy-pms/internal/database"
	"github.com/Hostizzy/hostizzy-pms/internal/handler"
	"github.com/Hostizzy/hostizzy-pms/internal/middleware"
	"github.com/Hostizzy/hostizzy-pms/internal/obs"
	"github.com/Hostizzy/hostizzy-pms/internal/queue"
	"github.com/Hostizzy/hostizzy-pms/internal/repository"
	"github.com/Hostizzy/hostizzy-pms/internal/router"
	"github.com/Hostizzy/hostizzy-pms/internal/service"
	"github.com/Hostizzy/hostizzy-pms/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := obs.NewLogger(cfg.Env)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	store, err := storage.New(config.LoadObjectStoreConfig(), logger)
	if err != nil {
		log.Fatalf("object store: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	props := repository.NewPropertyRepo(db)
	reservations := repository.NewReservationRepo(db)
	blocks := repository.NewBlockRepo(db)
	analyticsRepo := repository.NewAnalyticsRepo(db)
	owners := repository.NewOwnerRepo(db)
	guests := repository.NewGuestRepo(db)
	menus := repository.NewMenuRepo(db)
	audit := repository.NewAuditRepo(db)

	guestHandler := handler.NewGuestHandler(cfg, guests, reservations, props, store)
	authHandler := handler.NewAuthHandler(cfg, users, tokens)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	router.RegisterRoutes(e, guestHandler)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterAPI(e, router.APIHandlers{
		Auth:         authHandler,
		Owners:       handler.NewOwnerHandler(owners, audit),
		Properties:   handler.NewPropertyHandler(props, audit),
		Reservations: handler.NewReservationHandler(props, reservations, audit, logger),
		Availability: handler.NewAvailabilityHandler(props, reservations, blocks, audit),
		Dashboard:    handler.NewDashboardHandler(props, reservations, analyticsRepo),
		Guests:       guestHandler,
		Menus:        handler.NewMenuHandler(props, menus),
	}, cfg.JWTSecret,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			logger.Error("reservation consumer stopped", "err", err)
		}
	}()
	go service.StartKYCRetention(ctx, guests, store, logger)

	addr := ":" + cfg.Port
	logger.Info("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
