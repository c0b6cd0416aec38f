package request

// PrintBonRequest is the request body for reprinting a finalized bon.
type PrintBonRequest struct {
	ReceiptID string `json:"receipt_id" binding:"required,uuid"`
}
