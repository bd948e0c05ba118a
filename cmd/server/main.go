package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reviews/internal/config"
	"github.com/iliyamo/restaurant-reviews/internal/database"
	"github.com/iliyamo/restaurant-reviews/internal/handler"
	"github.com/iliyamo/restaurant-reviews/internal/health"
	"github.com/iliyamo/restaurant-reviews/internal/middleware"
	"github.com/iliyamo/restaurant-reviews/internal/queue"
	"github.com/iliyamo/restaurant-reviews/internal/repository"
	"github.com/iliyamo/restaurant-reviews/internal/router"
	"github.com/iliyamo/restaurant-reviews/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DatabaseURI)
	if err != nil {
		log.Fatalf("database (%s): %v", database.Dialect(cfg.DatabaseURI), err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("database close: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Review events are best effort: without a broker the publisher logs and
	// the consumer keeps retrying in the background.
	var events handler.EventPublisher
	if cfg.ReviewEventsEnabled {
		events = service.NewReviewPublisher(cfg.AMQPURL)
		go func() {
			err := queue.StartReviewConsumer(ctx, cfg.AMQPURL, filepath.Join("logs", "reviews.log"))
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("review-consumer: stopped: %v", err)
			}
		}()
	}

	// Rate limiting degrades to a no-op when Redis is unavailable.
	var limiter echo.MiddlewareFunc
	if rdb := config.NewRedisClient(cfg.Probes.Redis); rdb != nil {
		defer rdb.Close()
		limiter = middleware.NewTokenBucket(cfg.RateLimit, rdb)
	} else {
		log.Printf("redis unavailable at %s; rate limiting disabled", cfg.Probes.Redis.Addr())
	}

	runner := health.NewRunner(cfg.PingTimeout, health.DefaultProbes(db, cfg.Probes)...)
	runner.Parallel = cfg.PingParallel

	e := router.New(router.Deps{
		Restaurants: handler.NewRestaurantHandler(repository.NewRestaurantRepo(db), repository.NewReviewRepo(db), events),
		Ping:        &handler.PingHandler{Runner: runner},
		Static:      &handler.StaticHandler{Dir: cfg.StaticDir},
		Limiter:     limiter,
		AccessLog:   true,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, db=%s)", addr, cfg.Env, database.Dialect(cfg.DatabaseURI))

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
