package request

// AddItemRequest adds a scanned product to the cart. Qty and the
// overrides are optional: a bare scan adds one unit at catalog price.
type AddItemRequest struct {
	UPC             string   `json:"upc" binding:"required,min=1,max=100"`
	Qty             string   `json:"qty"` // keypad text, parsed leniently
	UnitPrice       *float64 `json:"unit_price" binding:"omitempty,min=0"`
	DiscountPercent *float64 `json:"discount_percent" binding:"omitempty,min=0,max=100"`
	DiscountValue   *float64 `json:"discount_value" binding:"omitempty,min=0"`
	Storno          bool     `json:"storno"`
}

// AddCustomItemRequest adds a manually entered line.
type AddCustomItemRequest struct {
	Name            string   `json:"name" binding:"required,min=1,max=255"`
	UnitPrice       float64  `json:"unit_price" binding:"min=0"`
	Qty             string   `json:"qty"`
	VATRate         float64  `json:"vat_rate" binding:"min=0,max=100"`
	DiscountPercent *float64 `json:"discount_percent" binding:"omitempty,min=0,max=100"`
	DiscountValue   *float64 `json:"discount_value" binding:"omitempty,min=0"`
	Storno          bool     `json:"storno"`
}

// UpdateItemRequest edits the selected line from the keypad.
type UpdateItemRequest struct {
	Qty             *string  `json:"qty"`
	UnitPrice       *float64 `json:"unit_price" binding:"omitempty,min=0"`
	DiscountPercent *float64 `json:"discount_percent" binding:"omitempty,min=0,max=100"`
	DiscountValue   *float64 `json:"discount_value" binding:"omitempty,min=0"`
}

// CashGivenRequest records the tendered cash. The amount arrives as
// keypad text and is parsed leniently.
type CashGivenRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// TenderSplitRequest records a mixed-tender breakdown.
type TenderSplitRequest struct {
	CardAmount     float64 `json:"card_amount" binding:"min=0"`
	NumerarAmount  float64 `json:"numerar_amount" binding:"min=0"`
	BonuriValorice float64 `json:"bonuri_valorice" binding:"min=0"`
}

// CodFiscalRequest sets the fiscal code printed on the bon.
type CodFiscalRequest struct {
	CodFiscal string `json:"cod_fiscal" binding:"max=50"`
}

// SetCustomerRequest attaches a customer by ID or loyalty card swipe.
type SetCustomerRequest struct {
	CustomerID string `json:"customer_id" binding:"required,min=1,max=100"`
}

// SetPaymentMethodRequest pre-selects the tender before completion.
type SetPaymentMethodRequest struct {
	Method string `json:"method" binding:"required,oneof=cash card mixed modern"`
}

// CompletePaymentRequest finalizes the cart with the given tender.
type CompletePaymentRequest struct {
	Method string `json:"method" binding:"required,oneof=cash card mixed modern"`
}
