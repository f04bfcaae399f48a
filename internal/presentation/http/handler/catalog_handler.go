package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yasserh/sultan-pos/internal/application/service"
	"github.com/yasserh/sultan-pos/internal/presentation/http/dto/response"
)

// CatalogHandler handles product and customer lookup HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// SearchProduct resolves a product for the POS screen
// @Summary Search product
// @Description Resolve a product by barcode or name substring. The seq
// @Description parameter is a per-terminal monotonic counter; superseded
// @Description searches are answered 409.
// @Tags catalog
// @Security BearerAuth
// @Produce json
// @Param q query string true "Barcode or name fragment"
// @Param seq query int false "Per-terminal search sequence"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /products/search [get]
func (h *CatalogHandler) SearchProduct(c *gin.Context) {
	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	seq, _ := strconv.ParseUint(c.Query("seq"), 10, 64)

	product, err := h.catalogService.FindProduct(c.Request.Context(), *cashierID, seq, c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product found", product)
}

// GetProduct fetches a single product
// @Summary Get product
// @Tags catalog
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved", product)
}

// ListProducts lists catalog products
// @Summary List products
// @Tags catalog
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Name or barcode filter"
// @Success 200 {object} response.APIResponse
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	params := bindPagination(c)

	result, err := h.catalogService.ListProducts(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved", result)
}

// ListCustomers lists customers for the selection UI
// @Summary List customers
// @Tags catalog
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Name or phone filter"
// @Success 200 {object} response.APIResponse
// @Router /customers [get]
func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	params := bindPagination(c)

	result, err := h.catalogService.ListCustomers(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved", result)
}
