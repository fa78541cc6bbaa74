package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"fitforge/internal/core/ai/queue"
	"fitforge/internal/core/ai/service"
	"fitforge/internal/infrastructure/config"
	"fitforge/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// readinessTimeout 單一依賴檢查的時限
const readinessTimeout = 2 * time.Second

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Provider  string                 `json:"provider"`
	Model     string                 `json:"model"`
	Runtime   map[string]interface{} `json:"runtime"`
	Queue     *queue.Status          `json:"queue,omitempty"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// Checker 外部依賴檢查，例如 Redis ping
type Checker func(ctx context.Context) error

// Handler 健康檢查處理程序
type Handler struct {
	config    *config.Config
	aiService *service.Service
	checks    map[string]Checker
}

// NewHandler 創建健康檢查處理程序
func NewHandler(cfg *config.Config, aiService *service.Service, checks map[string]Checker) *Handler {
	return &Handler{
		config:    cfg,
		aiService: aiService,
		checks:    checks,
	}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.config.App.Version,
		Provider:  h.aiService.ProviderName(),
		Model:     h.aiService.Model(),
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Queue: h.aiService.QueueStatus(),
		Cache: h.aiService.CacheStats(),
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 逐一檢查外部依賴，任一失敗回傳 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	failures := map[string]string{}
	for name, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		err := check(ctx)
		cancel()
		if err != nil {
			common.LogWarn("Readiness check failed", zap.String("check", name), zap.Error(err))
			failures[name] = err.Error()
		}
	}

	if len(failures) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"checks": failures,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
