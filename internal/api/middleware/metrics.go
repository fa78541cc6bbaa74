package middleware

import (
	"strconv"
	"time"

	"fitforge/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics 記錄請求數、進行中請求與耗時；路徑使用路由樣板避免標籤爆量
func Metrics(m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.GaugeRequests.Inc()
		start := time.Now()

		defer func() {
			path := c.FullPath()
			if path == "" {
				path = "unmatched"
			}
			m.GaugeRequests.Dec()
			m.HistRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
			m.CounterRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		}()

		c.Next()
	}
}
