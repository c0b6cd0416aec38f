package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sergiuconi/casier-api/internal/application/service"
	"github.com/sergiuconi/casier-api/internal/cart"
	"github.com/sergiuconi/casier-api/internal/presentation/http/dto/request"
	"github.com/sergiuconi/casier-api/internal/presentation/http/dto/response"
	"github.com/sergiuconi/casier-api/pkg/apperror"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
	receiptService *service.ReceiptService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService, receiptService *service.ReceiptService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService, receiptService: receiptService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus()
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	if err := h.printerService.TestPrint(); err != nil {
		response.OK(c, "Test print skipped (printer disabled or offline)", gin.H{
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test page sent to printer", nil)
}

// PrintBon reprints a finalized bon from the receipts log.
func (h *PrinterHandler) PrintBon(c *gin.Context) {
	var req request.PrintBonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	id, err := uuid.Parse(req.ReceiptID)
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	row, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	var items []cart.Item
	if err := json.Unmarshal(row.Lines, &items); err != nil {
		response.Error(c, apperror.NewAppError(500, "Stored receipt lines are unreadable"))
		return
	}

	receipt := &cart.Receipt{
		ID:            row.ID.String(),
		Items:         items,
		Total:         row.GetTotalDecimal(),
		PaymentMethod: row.PaymentMethod,
		Timestamp:     row.IssuedAt,
	}

	if err := h.printerService.PrintBon(receipt, row.Casa, row.BonNo); err != nil {
		response.OK(c, "Bon formatted but printing failed", gin.H{
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Bon sent to printer", gin.H{
		"receipt": receipt,
	})
}
