package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/train-seat-reservation/internal/allocation"
	"github.com/iliyamo/train-seat-reservation/internal/booking"
	"github.com/iliyamo/train-seat-reservation/internal/catalog"
	"github.com/iliyamo/train-seat-reservation/internal/config"
	"github.com/iliyamo/train-seat-reservation/internal/database"
	"github.com/iliyamo/train-seat-reservation/internal/handler"
	"github.com/iliyamo/train-seat-reservation/internal/inventory"
	"github.com/iliyamo/train-seat-reservation/internal/lock"
	"github.com/iliyamo/train-seat-reservation/internal/middleware"
	"github.com/iliyamo/train-seat-reservation/internal/notify"
	"github.com/iliyamo/train-seat-reservation/internal/queue"
	"github.com/iliyamo/train-seat-reservation/internal/repository"
	"github.com/iliyamo/train-seat-reservation/internal/router"
	"github.com/iliyamo/train-seat-reservation/pkg/metrics"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cat := catalog.New()
	if err := catalog.Seed(cat); err != nil {
		logger.Fatal("catalog seed failed", zap.Error(err))
	}

	locks := lock.NewTable(cfg.LockTTL)
	stop := make(chan struct{})
	defer close(stop)
	locks.StartSweeper(stop, cfg.SweepInterval)

	inv := inventory.New(cat, locks)
	m := metrics.New("reservation")
	alloc := allocation.New(inv, locks, m)

	var store repository.BookingStore = repository.NewMemoryStore()
	if cfg.DBHost != "" {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			logger.Fatal("database open failed", zap.Error(err))
		}
		defer db.Close()
		store = repository.NewMySQLStore(db)
		logger.Info("using MySQL booking store", zap.String("host", cfg.DBHost))
	} else {
		logger.Info("using in-memory booking store")
	}

	notifier := notify.Multi{
		notify.NewLogNotifier(logger),
		notify.NewQueueNotifier(logger),
	}

	svc := booking.NewService(logger, cat, store, inv, alloc, notifier, m, booking.Config{
		AssumedFreeSeats: cfg.AssumedFreeSeats,
		RACQuota:         cfg.RACQuota,
	})

	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			logger.Warn("booking consumer stopped", zap.Error(err))
		}
	}()

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable, rate limiting disabled")
	}
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	router.RegisterPublic(e, handler.NewAvailabilityHandler(cat, inv))
	router.RegisterBooking(e, handler.NewBookingHandler(svc, logger), cfg.JWTSecret, rateLimit)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
