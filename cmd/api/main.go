package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitforge/internal/api"
	"fitforge/internal/api/handlers/health"
	"fitforge/internal/api/middleware"
	"fitforge/internal/core/ai/cache"
	"fitforge/internal/core/ai/queue"
	"fitforge/internal/core/ai/service"
	"fitforge/internal/core/coach"
	"fitforge/internal/core/tracker"
	"fitforge/internal/infrastructure/config"
	"fitforge/internal/infrastructure/storage"
	"fitforge/internal/pkg/common"
	"fitforge/internal/pkg/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	// 載入設定（內含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	var metricsManager *metrics.Manager
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metricsManager = metrics.NewManager(cfg.Metrics.Namespace, cfg.Metrics.Subsystem, reg)
	}

	// Redis 只在快取、儲存或限流需要時建立
	var rdb *redis.Client
	var rateLimiter middleware.RequestRateLimiter
	checks := map[string]health.Checker{}
	if needsRedis(cfg) {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			common.LogFatal("Failed to connect to redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
		if cfg.RateLimit.Backend == config.RateLimitRedis {
			// 多個實例共用同一份配額
			rateLimiter = redis_rate.NewLimiter(rdb)
		}
	}

	store, err := storage.New(cfg.Storage, rdb)
	if err != nil {
		common.LogFatal("Failed to open tracker storage", zap.Error(err))
	}
	defer store.Close()

	cacheManager, err := cache.New(cfg, rdb)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}

	aiProvider, err := service.NewProvider(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize AI provider", zap.Error(err))
	}

	aiService := service.NewService(cfg, aiProvider, cacheManager, queue.NewManager(cfg.Queue), metricsManager)
	defer aiService.Close()

	trackerService := tracker.NewService(store, tracker.WithMetrics(metricsManager))

	router, err := api.SetupRouter(api.Dependencies{
		Config:          cfg,
		AI:              aiService,
		Coach:           coach.NewService(aiService, trackerService),
		Tracker:         trackerService,
		Metrics:         metricsManager,
		ReadinessChecks: checks,
		RateLimiter:     rateLimiter,
	})
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo("Server exited")
}

func needsRedis(cfg *config.Config) bool {
	if cfg.Storage.Driver == config.StorageRedis || (cfg.RateLimit.Enabled && cfg.RateLimit.Backend == config.RateLimitRedis) {
		return true
	}
	return cfg.Cache.Enabled && cfg.Cache.Backend == config.CacheRedis
}
