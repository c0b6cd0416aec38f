package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sergiuconi/casier-api/internal/application/service"
	"github.com/sergiuconi/casier-api/internal/presentation/http/dto/response"
	"github.com/sergiuconi/casier-api/pkg/pagination"
	"github.com/sergiuconi/casier-api/pkg/utils"
)

// ReceiptHandler handles receipt log HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// List handles listing finalized receipts, newest first. The casa query
// parameter narrows the listing to one register; omitting it lists all.
func (h *ReceiptHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	casa, _ := strconv.Atoi(c.Query("casa"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.receiptService.ListReceipts(c.Request.Context(), casa, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Receipts retrieved successfully", result)
}

// Get handles retrieving a single finalized receipt by ID
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Receipt retrieved successfully", receipt)
}
