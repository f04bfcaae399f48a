package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yasserh/sultan-pos/internal/presentation/http/dto/response"
	"github.com/yasserh/sultan-pos/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware. The cashier
// identity it sets in the context is what keys the per-terminal POS
// session downstream.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("cashier_id", claims.CashierID)
		c.Set("cashier_name", claims.CashierName)
		c.Set("username", claims.Username)

		c.Next()
	}
}
