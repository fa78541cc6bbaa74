package api

import (
	"fmt"
	"net/http"
	"time"

	"fitforge/internal/api/handlers"
	coachHandler "fitforge/internal/api/handlers/coach"
	"fitforge/internal/api/handlers/health"
	trackerHandler "fitforge/internal/api/handlers/tracker"
	"fitforge/internal/api/middleware"
	"fitforge/internal/core/ai/service"
	"fitforge/internal/core/coach"
	"fitforge/internal/core/tracker"
	"fitforge/internal/infrastructure/config"
	"fitforge/internal/pkg/common"
	"fitforge/internal/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies 路由需要的服務
type Dependencies struct {
	Config  *config.Config
	AI      *service.Service
	Coach   *coach.Service
	Tracker *tracker.Service
	// Metrics 為 nil 時不註冊 /metrics
	Metrics *metrics.Manager
	// ReadinessChecks /ready 逐一執行的依賴檢查
	ReadinessChecks map[string]health.Checker
	// RateLimiter 為 nil 時使用記憶體令牌桶
	RateLimiter middleware.RequestRateLimiter
}

// SetupRouter 設置路由
func SetupRouter(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config
	if cfg == nil || deps.AI == nil || deps.Coach == nil || deps.Tracker == nil {
		return nil, fmt.Errorf("router dependencies are incomplete")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery(deps.Metrics))
	router.Use(middleware.Logger())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Client-Info", "Apikey", "X-Request-ID", middleware.HeaderUserID},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}
	router.Use(middleware.Deduplication(cfg.DedupWindow))
	if cfg.RateLimit.Enabled {
		limiter := deps.RateLimiter
		if limiter == nil {
			limiter = middleware.NewMemoryRateLimiter()
		}
		router.Use(middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	router.Use(middleware.UserID(cfg.UserID))

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg, deps.AI, deps.ReadinessChecks)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": common.ErrNotFound.Message,
			"code":  common.ErrCodeNotFound,
		})
	})

	v1 := router.Group("/api/v1")
	{
		aiHandler := handlers.NewAIHandler(deps.AI)
		aiGroup := v1.Group("/ai")
		{
			aiGroup.POST("/chat", aiHandler.Chat)
			aiGroup.POST("/parse", aiHandler.Parse)
		}

		coachHandler.NewHandler(deps.Coach).Register(v1.Group("/coach"))
		trackerHandler.NewHandler(deps.Tracker).Register(v1.Group("/tracker"))
	}

	common.LogInfo("Router setup completed successfully",
		zap.String("provider", deps.AI.ProviderName()),
		zap.String("model", deps.AI.Model()),
		zap.Bool("metrics_enabled", deps.Metrics != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}
