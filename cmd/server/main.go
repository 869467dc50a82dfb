package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/stayfinder-booking/internal/config"
	"github.com/iliyamo/stayfinder-booking/internal/database"
	"github.com/iliyamo/stayfinder-booking/internal/handler"
	"github.com/iliyamo/stayfinder-booking/internal/middleware"
	"github.com/iliyamo/stayfinder-booking/internal/queue"
	"github.com/iliyamo/stayfinder-booking/internal/repository"
	"github.com/iliyamo/stayfinder-booking/internal/router"
	"github.com/iliyamo/stayfinder-booking/internal/service"
)

func main() {
	// Load .env when present; real deployments set env vars directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories are constructed once at startup and injected below; no
	// package-level database state anywhere.
	bookingRepo := repository.NewBookingRepo(db)
	propertyRepo := repository.NewPropertyRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	bookingSvc := service.NewBookingService(bookingRepo, queue.PublishBookingCreated)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	propertyHandler := handler.NewPropertyHandler(propertyRepo)

	e := echo.New()

	// Redis backs rate limiting and the public catalog cache.  A nil client
	// (Redis down or unconfigured) disables both middlewares.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterBookings(e, bookingHandler, cfg.JWTSecret)
	router.RegisterProperties(e, propertyHandler, cacheMW, cfg.JWTSecret)

	// Consume booking.created events in the background; the consumer runs
	// its own reconnect loop.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
