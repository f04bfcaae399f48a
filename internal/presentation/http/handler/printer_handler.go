package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/yasserh/sultan-pos/internal/application/service"
	"github.com/yasserh/sultan-pos/internal/presentation/http/dto/response"
)

// PrinterHandler handles receipt printing HTTP requests
type PrinterHandler struct {
	receiptService *service.ReceiptService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(receiptService *service.ReceiptService) *PrinterHandler {
	return &PrinterHandler{receiptService: receiptService}
}

// Status reports printer connectivity
// @Summary Printer status
// @Tags printer
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /printer/status [get]
func (h *PrinterHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status", gin.H{
		"connected": h.receiptService.PrinterConnected(),
	})
}

// PrintTest sends a test page to the printer
// @Summary Printer test
// @Tags printer
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /printer/test [post]
func (h *PrinterHandler) PrintTest(c *gin.Context) {
	if err := h.receiptService.PrintTest(); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Test page printed", nil)
}

// PrintReceipt reprints the receipt for a finalized sale
// @Summary Print receipt
// @Tags printer
// @Security BearerAuth
// @Produce json
// @Param invoiceNo path string true "Invoice number"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /printer/receipt/{invoiceNo} [post]
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	receipt, err := h.receiptService.PrintSale(c.Request.Context(), c.Param("invoiceNo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt printed", receipt)
}
