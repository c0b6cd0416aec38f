package request

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Type            string  `json:"type" binding:"omitempty,oneof=pf pj"`
	FirstName       *string `json:"first_name" binding:"omitempty,max=255"`
	LastName        *string `json:"last_name" binding:"omitempty,max=255"`
	CardID          *string `json:"card_id" binding:"omitempty,max=100"`
	DiscountPercent float64 `json:"discount_percent" binding:"min=0,max=100"`
	NrAuto          *string `json:"nr_auto" binding:"omitempty,max=20"`
	CodFiscal       *string `json:"cod_fiscal" binding:"omitempty,max=50"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Type            *string  `json:"type" binding:"omitempty,oneof=pf pj"`
	FirstName       *string  `json:"first_name" binding:"omitempty,max=255"`
	LastName        *string  `json:"last_name" binding:"omitempty,max=255"`
	CardID          *string  `json:"card_id" binding:"omitempty,max=100"`
	DiscountPercent *float64 `json:"discount_percent" binding:"omitempty,min=0,max=100"`
	NrAuto          *string  `json:"nr_auto" binding:"omitempty,max=20"`
	CodFiscal       *string  `json:"cod_fiscal" binding:"omitempty,max=50"`
}
