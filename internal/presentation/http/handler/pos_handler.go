package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yasserh/sultan-pos/internal/application/pos"
	"github.com/yasserh/sultan-pos/internal/application/service"
	"github.com/yasserh/sultan-pos/internal/domain/entity"
	"github.com/yasserh/sultan-pos/internal/domain/enum"
	"github.com/yasserh/sultan-pos/internal/presentation/http/dto/request"
	"github.com/yasserh/sultan-pos/internal/presentation/http/dto/response"
)

// POSHandler drives the checkout session over HTTP. Every route operates
// on the invoice owned by the authenticated cashier's terminal.
type POSHandler struct {
	checkoutService *service.CheckoutService
	catalogService  *service.CatalogService
	receiptService  *service.ReceiptService
}

// NewPOSHandler creates a new POS handler
func NewPOSHandler(checkoutService *service.CheckoutService, catalogService *service.CatalogService, receiptService *service.ReceiptService) *POSHandler {
	return &POSHandler{
		checkoutService: checkoutService,
		catalogService:  catalogService,
		receiptService:  receiptService,
	}
}

// CurrentInvoice returns the invoice the terminal is working on
// @Summary Current invoice
// @Tags pos
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /pos/invoice [get]
func (h *POSHandler) CurrentInvoice(c *gin.Context) {
	term, ok := terminalFromContext(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	inv, err := h.checkoutService.CurrentInvoice(c.Request.Context(), term)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Current invoice", inv)
}

// HeldInvoices lists the terminal's held invoices
// @Summary Held invoices
// @Tags pos
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /pos/held [get]
func (h *POSHandler) HeldInvoices(c *gin.Context) {
	term, ok := terminalFromContext(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	held, err := h.checkoutService.HeldInvoices(c.Request.Context(), term)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Held invoices", held)
}

// AddLine adds a product to the open invoice
// @Summary Add line
// @Description Add a product to the open invoice. Adding a product that
// @Description is already on the invoice increments its quantity.
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.AddLineRequest true "Product to add"
// @Success 200 {object} response.APIResponse
// @Router /pos/lines [post]
func (h *POSHandler) AddLine(c *gin.Context) {
	term, ok := terminalFromContext(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		response.Error(c, err)
		return
	}

	inv, err := h.checkoutService.AddLine(c.Request.Context(), term, product, product.Unit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line added", inv)
}

// UpdateQuantity sets a line quantity
// @Summary Update quantity
// @Description Set a line quantity. A quantity below 1 removes the line.
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param request body request.UpdateQuantityRequest true "New quantity"
// @Success 200 {object} response.APIResponse
// @Router /pos/lines/{productId}/quantity [patch]
func (h *POSHandler) UpdateQuantity(c *gin.Context) {
	term, ok := terminalFromContext(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	inv, err := h.checkoutService.UpdateQuantity(c.Request.Context(), term, productID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quantity updated", inv)
}

// UpdateLineDiscount sets a per-unit line discount
// @Summary Update line discount
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param request body request.UpdateLineDiscountRequest true "Per-unit discount"
// @Success 200 {object} response.APIResponse
// @Router /pos/lines/{productId}/discount [patch]
func (h *POSHandler) UpdateLineDiscount(c *gin.Context) {
	term, ok := terminalFromContext(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateLineDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	inv, err := h.checkoutService.UpdateLineDiscount(c.Request.Context(), term, productID, entity.Cents(req.Discount))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount updated", inv)
}

// RemoveLine removes a line from the open invoice
// @Summary Remove line
// @Tags pos
// @Security BearerAuth
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} response.APIResponse
// @Router /pos/lines/{productId} [delete]
func (h *POSHandler) RemoveLine(c *gin.Context) {
	term, ok := terminalFromContext(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	inv, err := h.checkoutService.RemoveLine(c.Request.Context(), term, productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line removed", inv)
}

// SetInvoiceDiscount sets the flat invoice-level discount
// @Summary Set invoice discount
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.InvoiceDiscountRequest true "Flat discount amount"
// @Success 200 {object} response.APIResponse
// @Router /pos/discount [put]
func (h *POSHandler) SetInvoiceDiscount(c *gin.Context) {
	term, ok := terminalFromContext(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.InvoiceDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	inv, err := h.checkoutService.SetInvoiceDiscount(c.Request.Context(), term, entity.Cents(req.Amount))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice discount set", inv)
}

// SetCustomer attaches a customer to the open invoice
// @Summary Set customer
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.SetCustomerRequest true "Customer to attach"
// @Success 200 {object} response.APIResponse
// @Router /pos/customer [put]
func (h *POSHandler) SetCustomer(c *gin.Context) {
	term, ok := terminalFromContext(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.SetCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	inv, err := h.checkoutService.SetCustomer(c.Request.Context(), term, req.CustomerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer set", inv)
}

// Hold parks the open invoice
// @Summary Hold invoice
// @Description Park the open invoice and start a fresh one. Empty
// @Description invoices cannot be held.
// @Tags pos
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /pos/hold [post]
func (h *POSHandler) Hold(c *gin.Context) {
	term, ok := terminalFromContext(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	inv, err := h.checkoutService.Hold(c.Request.Context(), term)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice held", inv)
}

// Restore brings a held invoice back
// @Summary Restore invoice
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.RestoreRequest true "Held invoice number"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /pos/restore [post]
func (h *POSHandler) Restore(c *gin.Context) {
	term, ok := terminalFromContext(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.RestoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	inv, err := h.checkoutService.Restore(c.Request.Context(), term, req.InvoiceNo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice restored", inv)
}

// StartNewSale discards the open invoice and begins a fresh one
// @Summary New sale
// @Tags pos
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /pos/new [post]
func (h *POSHandler) StartNewSale(c *gin.Context) {
	term, ok := terminalFromContext(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	inv, err := h.checkoutService.StartNewSale(c.Request.Context(), term)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "New sale started", inv)
}

// Checkout finalizes the open invoice
// @Summary Checkout
// @Description Validate the payment, finalize the invoice and persist the
// @Description sale. Rejections return 422 with a machine-readable reason
// @Description and leave the invoice open.
// @Tags pos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body request.CheckoutRequest true "Payment details"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /pos/checkout [post]
func (h *POSHandler) Checkout(c *gin.Context) {
	term, ok := terminalFromContext(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, err := enum.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		response.BadRequest(c, "Unknown payment method: "+req.PaymentMethod)
		return
	}

	pc := pos.PaymentContext{
		AmountReceived: entity.Cents(req.AmountReceived),
		PaidAmount:     entity.Cents(req.PaidAmount),
	}
	if req.Cheque != nil {
		cheque := &entity.ChequeDetail{
			ChequeNumber: req.Cheque.ChequeNumber,
			BankName:     req.Cheque.BankName,
			Amount:       entity.Cents(req.Cheque.Amount),
		}
		if req.Cheque.DueDate != "" {
			due, err := time.Parse("2006-01-02", req.Cheque.DueDate)
			if err != nil {
				response.BadRequest(c, "Invalid cheque due date, use YYYY-MM-DD")
				return
			}
			cheque.DueDate = due
		}
		pc.Cheque = cheque
	}

	inv, err := h.checkoutService.Checkout(c.Request.Context(), term, method, pc)
	if err != nil {
		response.Error(c, err)
		return
	}

	receipt, err := h.receiptService.BuildReceipt(inv)
	if err != nil {
		// The sale is stored; a receipt projection failure must not fail
		// the checkout response.
		response.OK(c, "Sale completed", gin.H{"invoice": inv})
		return
	}

	response.OK(c, "Sale completed", gin.H{
		"invoice": inv,
		"receipt": receipt,
	})
}
