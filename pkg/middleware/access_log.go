package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ladypi89/website/backend/go-services/pkg/logger"
	"github.com/ladypi89/website/backend/go-services/pkg/metrics"
)

// AccessLog writes one structured line per request and records request
// count and latency. Unmatched routes are labelled "unmatched" to keep the
// route label bounded.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(latency.Seconds())
		logger.Request(c.Request.Method, c.Request.URL.Path, status, latency, c.ClientIP())
	}
}
