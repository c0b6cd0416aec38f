package request

// CreateProductRequest represents a catalog product creation request
type CreateProductRequest struct {
	UPC         string  `json:"upc" binding:"required,min=1,max=100"`
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	Price       float64 `json:"price" binding:"min=0"`
	VATRate     float64 `json:"vat_rate" binding:"min=0,max=100"`
	Departament int     `json:"departament" binding:"min=0"`
	Clasa       int     `json:"clasa" binding:"min=0"`
	Grupa       int     `json:"grupa" binding:"min=0"`
	Gest        string  `json:"gest" binding:"omitempty,max=50"`
	Tax1        int     `json:"tax1" binding:"min=0"`
	Tax2        int     `json:"tax2" binding:"min=0"`
	Tax3        int     `json:"tax3" binding:"min=0"`
	SGR         string  `json:"sgr" binding:"omitempty,oneof=PET Sticla Doza"`
}

// UpdateProductRequest represents a catalog product update request
type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	VATRate     *float64 `json:"vat_rate" binding:"omitempty,min=0,max=100"`
	Departament *int     `json:"departament" binding:"omitempty,min=0"`
	Clasa       *int     `json:"clasa" binding:"omitempty,min=0"`
	Grupa       *int     `json:"grupa" binding:"omitempty,min=0"`
	Gest        *string  `json:"gest" binding:"omitempty,max=50"`
	Tax1        *int     `json:"tax1" binding:"omitempty,min=0"`
	Tax2        *int     `json:"tax2" binding:"omitempty,min=0"`
	Tax3        *int     `json:"tax3" binding:"omitempty,min=0"`
	SGR         *string  `json:"sgr" binding:"omitempty,oneof='' PET Sticla Doza"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	SGROnly   bool   `form:"sgr_only"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
