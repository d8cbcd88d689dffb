package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/config"
	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/database"
	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/handler"
	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/middleware"
	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/queue"
	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/repository"
	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migrate: %v", err)
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	lotRepo := repository.NewLotRepo(db)
	spotRepo := repository.NewSpotRepo(db)
	reservationRepo := repository.NewReservationRepo(db)

	// The distinguished admin account must exist exactly once.
	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userRepo.EnsureAdmin(bootCtx, cfg.AdminEmail, cfg.AdminPhone, cfg.AdminPassword, cfg.BcryptCost); err != nil {
		log.Fatalf("admin bootstrap: %v", err)
	}
	bootCancel()

	e := echo.New()
	e.HideBanner = true

	// Redis-backed rate limiting and public response caching; both turn
	// into no-ops when Redis is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	adminHandler := handler.NewAdminHandler(lotRepo, spotRepo, userRepo)
	userHandler := handler.NewUserHandler(lotRepo, reservationRepo)
	publicHandler := handler.NewPublicHandler(lotRepo, spotRepo)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)
	router.RegisterUser(e, userHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler)

	// Billing consumer runs for the lifetime of the process and
	// reconnects on broker failures.
	go func() {
		if err := queue.StartBillingConsumer(); err != nil {
			log.Printf("billing consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
