package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yasserh/sultan-pos/internal/application/service"
	"github.com/yasserh/sultan-pos/pkg/pagination"
)

// GetCashierID extracts the cashier ID from the Gin context
func GetCashierID(c *gin.Context) *uuid.UUID {
	idVal, exists := c.Get("cashier_id")
	if !exists {
		return nil
	}
	id, ok := idVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// GetCashierName extracts the cashier display name from the Gin context
func GetCashierName(c *gin.Context) string {
	name, exists := c.Get("cashier_name")
	if !exists {
		return ""
	}
	return name.(string)
}

// terminalFromContext builds the terminal identity for the POS session
// from the authenticated cashier. Returns ok=false when unauthenticated.
func terminalFromContext(c *gin.Context) (service.Terminal, bool) {
	id := GetCashierID(c)
	if id == nil {
		return service.Terminal{}, false
	}
	return service.Terminal{CashierID: *id, CashierName: GetCashierName(c)}, true
}

// bindPagination reads page/per_page query parameters
func bindPagination(c *gin.Context) *pagination.PaginationParams {
	params := pagination.DefaultPagination()
	_ = c.ShouldBindQuery(params)
	return params
}
