package middleware

import (
	"strconv"

	"github.com/ewaste-kiosk-backend/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics middleware counts requests per route, method and status code
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.RequestsTotal.WithLabelValues(
			route,
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
