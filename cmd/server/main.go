package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/brincapark/reservations-api/internal/config"
	"github.com/brincapark/reservations-api/internal/database"
	"github.com/brincapark/reservations-api/internal/handler"
	"github.com/brincapark/reservations-api/internal/middleware"
	"github.com/brincapark/reservations-api/internal/queue"
	"github.com/brincapark/reservations-api/internal/repository"
	"github.com/brincapark/reservations-api/internal/router"
	"github.com/brincapark/reservations-api/internal/service"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("mongodb connect failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		cancel()
		log.Fatalf("mongodb index bootstrap failed: %v", err)
	}
	cancel()

	reservations := repository.NewReservationRepo(db)
	configs := repository.NewConfigRepo(db)

	publisher := queue.NewAMQPPublisher()
	reservationSvc := service.NewReservationService(reservations, publisher)
	analyticsSvc := service.NewAnalyticsService(reservations, configs)

	reservationH := handler.NewReservationHandler(reservationSvc)
	configH := handler.NewConfigHandler(configs)
	adminH := handler.NewAdminHandler(reservationSvc, cfg.JWTSecret, cfg.AdminSecretHash, cfg.TokenTTLMin)
	analyticsH := handler.NewAnalyticsHandler(analyticsSvc)

	// Redis backs the rate limiter and the response cache.  Both
	// middlewares become passthroughs when the client is nil, so a
	// missing Redis only costs the optimizations.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: rate limiting and response caching disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Background consumer writes reservation events to logs/reservations.log.
	go queue.StartReservationConsumer()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPublic(e, reservationH, configH, adminH, limiter, cache)
	router.RegisterAdmin(e, reservationH, configH, adminH, analyticsH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
