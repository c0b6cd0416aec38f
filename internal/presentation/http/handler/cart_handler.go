package handler

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/sergiuconi/casier-api/internal/application/service"
	"github.com/sergiuconi/casier-api/internal/cart"
	"github.com/sergiuconi/casier-api/internal/domain/enum"
	"github.com/sergiuconi/casier-api/internal/presentation/http/dto/request"
	"github.com/sergiuconi/casier-api/internal/presentation/http/dto/response"
	"github.com/sergiuconi/casier-api/pkg/apperror"
	"github.com/sergiuconi/casier-api/pkg/metrics"
	"github.com/sergiuconi/casier-api/pkg/money"
)

// CartHandler handles the register cart HTTP surface
type CartHandler struct {
	cartService    *service.CartService
	printerService *service.PrinterService
	metrics        *metrics.RegisterMetrics
	defaultCasa    int
}

// NewCartHandler creates a new cart handler. defaultCasa is the
// deployment's configured register, used when neither the request nor
// the operator token names one.
func NewCartHandler(cartService *service.CartService, printerService *service.PrinterService, m *metrics.RegisterMetrics, defaultCasa int) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		printerService: printerService,
		metrics:        m,
		defaultCasa:    defaultCasa,
	}
}

func (h *CartHandler) casa(c *gin.Context) int {
	return GetCasa(c, h.defaultCasa)
}

// State returns the current cart state of the register
func (h *CartHandler) State(c *gin.Context) {
	store := h.cartService.Store(h.casa(c))
	response.OK(c, "Cart state retrieved", store.State())
}

func discountFromRequest(percent, value *float64) *cart.Discount {
	if value != nil && *value > 0 {
		d := cart.ValueOff(*value)
		return &d
	}
	if percent != nil && *percent > 0 {
		d := cart.PercentOff(*percent)
		return &d
	}
	return nil
}

// AddItem resolves a scan code and adds the product to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	store := h.cartService.Store(h.casa(c))
	state, err := store.AddProductByUPC(c.Request.Context(), req.UPC, service.AddItemInput{
		Qty:       money.ParseNumeric(req.Qty),
		UnitPrice: req.UnitPrice,
		Discount:  discountFromRequest(req.DiscountPercent, req.DiscountValue),
		Storno:    req.Storno,
	})
	if err != nil {
		if h.metrics != nil {
			h.metrics.Scans.WithLabelValues("miss").Inc()
		}
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.Scans.WithLabelValues("hit").Inc()
	}

	response.OK(c, "Product added", state)
}

// AddCustomItem appends a manually entered line
func (h *CartHandler) AddCustomItem(c *gin.Context) {
	var req request.AddCustomItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var discount cart.Discount
	if d := discountFromRequest(req.DiscountPercent, req.DiscountValue); d != nil {
		discount = *d
	}

	store := h.cartService.Store(h.casa(c))
	state, _ := store.AddCustomItem(c.Request.Context(), service.CustomItemInput{
		Product: cart.Product{
			Name:    req.Name,
			Price:   req.UnitPrice,
			VATRate: req.VATRate,
		},
		Qty:      money.ParseNumeric(req.Qty),
		Discount: discount,
		Storno:   req.Storno,
	})

	response.OK(c, "Item added", state)
}

// UpdateItem edits a line from the keypad
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID := c.Param("id")

	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	store := h.cartService.Store(h.casa(c))
	state, err := store.UpdateItem(c.Request.Context(), itemID, func(it cart.Item) cart.Item {
		if req.Qty != nil {
			qty := money.ParseNumeric(*req.Qty)
			if qty < cart.MinQty {
				qty = cart.MinQty
			}
			it.Qty = qty
		}
		if req.UnitPrice != nil {
			it.UnitPrice = *req.UnitPrice
		}
		if d := discountFromRequest(req.DiscountPercent, req.DiscountValue); d != nil {
			it.Discount = *d
		}
		return it
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated", state)
}

// RemoveItem deletes a line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	store := h.cartService.Store(h.casa(c))
	state, err := store.RemoveItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed", state)
}

// SelectItem marks a line as selected for keypad edits
func (h *CartHandler) SelectItem(c *gin.Context) {
	store := h.cartService.Store(h.casa(c))
	state := store.SelectItem(c.Request.Context(), c.Param("id"))
	response.OK(c, "Item selected", state)
}

// MoveItemUp moves a line towards the top of the receipt
func (h *CartHandler) MoveItemUp(c *gin.Context) {
	store := h.cartService.Store(h.casa(c))
	state := store.MoveItemUp(c.Request.Context(), c.Param("id"))
	response.OK(c, "Item moved", state)
}

// MoveItemDown moves a line towards the bottom of the receipt
func (h *CartHandler) MoveItemDown(c *gin.Context) {
	store := h.cartService.Store(h.casa(c))
	state := store.MoveItemDown(c.Request.Context(), c.Param("id"))
	response.OK(c, "Item moved", state)
}

// ToggleStorno flips the reversal flag on a line
func (h *CartHandler) ToggleStorno(c *gin.Context) {
	store := h.cartService.Store(h.casa(c))
	state, err := store.ToggleStorno(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Storno toggled", state)
}

// SetCashGiven records the tendered cash amount
func (h *CartHandler) SetCashGiven(c *gin.Context) {
	var req request.CashGivenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	store := h.cartService.Store(h.casa(c))
	state := store.SetCashGiven(c.Request.Context(), money.ParseNumeric(req.Amount))
	response.OK(c, "Cash amount recorded", state)
}

// SetTenderSplit records a mixed-tender breakdown
func (h *CartHandler) SetTenderSplit(c *gin.Context) {
	var req request.TenderSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	store := h.cartService.Store(h.casa(c))
	state := store.SetTenderSplit(c.Request.Context(), service.TenderSplit{
		CardAmount:     req.CardAmount,
		NumerarAmount:  req.NumerarAmount,
		BonuriValorice: req.BonuriValorice,
	})
	response.OK(c, "Tender split recorded", state)
}

// SetCodFiscal records the fiscal code for the bon
func (h *CartHandler) SetCodFiscal(c *gin.Context) {
	var req request.CodFiscalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	store := h.cartService.Store(h.casa(c))
	state := store.SetCodFiscal(c.Request.Context(), req.CodFiscal)
	response.OK(c, "Cod fiscal recorded", state)
}

// SetPaymentMethod pre-selects the tender shown on the register display
func (h *CartHandler) SetPaymentMethod(c *gin.Context) {
	var req request.SetPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, err := enum.ParsePaymentMethod(req.Method)
	if err != nil {
		response.BadRequest(c, "Invalid payment method")
		return
	}

	store := h.cartService.Store(h.casa(c))
	state := store.SetPaymentMethod(c.Request.Context(), method)
	response.OK(c, "Payment method set", state)
}

// SetCustomer attaches a customer to the cart
func (h *CartHandler) SetCustomer(c *gin.Context) {
	var req request.SetCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	store := h.cartService.Store(h.casa(c))
	state, err := store.SetCustomer(c.Request.Context(), req.CustomerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer set", state)
}

// CompletePayment finalizes the cart with the given tender
func (h *CartHandler) CompletePayment(c *gin.Context) {
	var req request.CompletePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, err := enum.ParsePaymentMethod(req.Method)
	if err != nil {
		response.BadRequest(c, "Invalid payment method")
		return
	}

	casa := h.casa(c)
	store := h.cartService.Store(casa)
	receipt, err := store.CompletePayment(c.Request.Context(), method)
	if err != nil {
		response.Error(c, err)
		return
	}
	if receipt == nil {
		response.Error(c, apperror.NewBadRequestError("Cart is empty"))
		return
	}
	if h.metrics != nil {
		h.metrics.Payments.WithLabelValues(string(method)).Inc()
	}

	// Printing is best-effort: the payment is already settled and the
	// bon can be reprinted from the receipts log.
	if h.printerService != nil {
		if err := h.printerService.PrintBon(receipt, casa, nil); err != nil {
			log.Printf("bon print failed for receipt %s: %v", receipt.ID, err)
		}
	}

	response.OK(c, "Payment completed", gin.H{
		"receipt": receipt,
		"state":   store.State(),
	})
}

// Reset discards the cart
func (h *CartHandler) Reset(c *gin.Context) {
	store := h.cartService.Store(h.casa(c))
	state := store.ResetCart(c.Request.Context())
	response.OK(c, "Cart reset", state)
}

// SessionReceipts lists the receipts finalized by this process
func (h *CartHandler) SessionReceipts(c *gin.Context) {
	store := h.cartService.Store(h.casa(c))
	response.OK(c, "Receipts retrieved", store.Receipts())
}
