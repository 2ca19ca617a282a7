package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rogerjs93/health-entry-engine/internal/adapters/cache"
	adapterHTTP "github.com/rogerjs93/health-entry-engine/internal/adapters/handler/http"
	"github.com/rogerjs93/health-entry-engine/internal/adapters/repository"
	"github.com/rogerjs93/health-entry-engine/internal/adapters/upstream"
	"github.com/rogerjs93/health-entry-engine/internal/config"
	"github.com/rogerjs93/health-entry-engine/internal/core/services"
	"github.com/rogerjs93/health-entry-engine/internal/core/workers"
	"github.com/rogerjs93/health-entry-engine/internal/logger"
)

func main() {
	startTime := time.Now()

	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	gateway := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)
	store := repository.NewInMemoryFormStore()
	notices := services.NewNoticeService(cfg.NoticeTTL)

	submitService := services.NewSubmitService(store, gateway, notices, log)

	saver := workers.NewAutoSaver(cfg.Autosave.Delay, func(ctx context.Context, formID string) {
		// Auto-save failures already land in the notice buffer.
		_, _ = submitService.Submit(ctx, formID)
	}, log)

	formService := services.NewFormService(store, saver)

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
			rdb = nil
		}
	}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		FormHandler:   adapterHTTP.NewFormHandler(formService, submitService, log),
		UploadHandler: adapterHTTP.NewUploadHandler(submitService, log),
		Notices:       notices,
		Gateway:       gateway,
		Redis:         rdb,
		Logger:        log,
		RateLimit:     cfg.RateLimit.Requests,
		RateWindow:    cfg.RateLimit.Window,
		StartTime:     startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("health entry engine running",
			zap.String("port", cfg.Port),
			zap.String("upstream", cfg.Upstream.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("stop signal received, shutting down")

	// Pending auto-saves die with the process; they were only debounce
	// timers, the user's working copy was never promised durability.
	saver.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("forced shutdown", zap.Error(err))
	}

	log.Info("server stopped gracefully")
}
