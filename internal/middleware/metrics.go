package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/landgov/landadmin-api/internal/service"
)

// Metrics captures per-request counters and latency.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTP(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), duration)
	}
}
