package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoggerMiddleware creates a structured logging middleware
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Generate request ID if not present
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		// Start timer
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Process request
		c.Next()

		// Calculate latency
		latency := time.Since(start)

		// Get status code
		statusCode := c.Writer.Status()

		// Get client IP
		clientIP := c.ClientIP()

		// Get method
		method := c.Request.Method

		// Cashier identity, when the auth middleware has run
		cashier := c.GetString("username")
		if cashier == "" {
			cashier = "-"
		}

		// Build full path
		if raw != "" {
			path = path + "?" + raw
		}

		// Log the request
		log.Printf("[%s] %s | %d | %v | %s | %s | %s",
			requestID[:8],
			method,
			statusCode,
			latency,
			clientIP,
			cashier,
			path,
		)

		// Log errors if any
		if len(c.Errors) > 0 {
			for _, e := range c.Errors {
				log.Printf("[%s] Error: %v", requestID[:8], e.Err)
			}
		}
	}
}
