package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yasserh/sultan-pos/internal/application/service"
	"github.com/yasserh/sultan-pos/internal/domain/enum"
	"github.com/yasserh/sultan-pos/internal/domain/repository"
	"github.com/yasserh/sultan-pos/internal/presentation/http/dto/request"
	"github.com/yasserh/sultan-pos/internal/presentation/http/dto/response"
)

// SaleHandler handles finalized-sales history HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// ListSales lists finalized sales
// @Summary List sales
// @Tags sales
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Invoice number filter"
// @Param payment_method query string false "Cash, Card, Credit or Cheque"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Success 200 {object} response.APIResponse
// @Router /sales [get]
func (h *SaleHandler) ListSales(c *gin.Context) {
	params := &repository.SaleFilterParams{
		Pagination: bindPagination(c),
		Search:     c.Query("search"),
	}

	if v := c.Query("payment_method"); v != "" {
		method, err := enum.ParsePaymentMethod(v)
		if err != nil {
			response.BadRequest(c, "Unknown payment method: "+v)
			return
		}
		params.PaymentMethod = &method
	}
	if v := c.Query("start_date"); v != "" {
		start, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "Invalid start_date, use YYYY-MM-DD")
			return
		}
		params.StartDate = &start
	}
	if v := c.Query("end_date"); v != "" {
		end, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "Invalid end_date, use YYYY-MM-DD")
			return
		}
		// Include the whole end day
		end = end.Add(24*time.Hour - time.Nanosecond)
		params.EndDate = &end
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved", result)
}

// GetSale fetches one finalized sale
// @Summary Get sale
// @Tags sales
// @Security BearerAuth
// @Produce json
// @Param invoiceNo path string true "Invoice number"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /sales/{invoiceNo} [get]
func (h *SaleHandler) GetSale(c *gin.Context) {
	sale, err := h.saleService.GetSale(c.Request.Context(), c.Param("invoiceNo"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved", sale)
}

// UpdateChequeStatus transitions the cheque on a sale
// @Summary Update cheque status
// @Tags sales
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param invoiceNo path string true "Invoice number"
// @Param request body request.ChequeStatusRequest true "New status (Cleared or Bounced)"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /sales/{invoiceNo}/cheque [patch]
func (h *SaleHandler) UpdateChequeStatus(c *gin.Context) {
	var req request.ChequeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var status enum.ChequeStatus
	switch req.Status {
	case "Cleared":
		status = enum.ChequeCleared
	case "Bounced":
		status = enum.ChequeBounced
	default:
		response.BadRequest(c, "Status must be Cleared or Bounced")
		return
	}

	sale, err := h.saleService.UpdateChequeStatus(c.Request.Context(), c.Param("invoiceNo"), status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cheque status updated", sale)
}
