package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sergiuconi/casier-api/internal/application/service"
	"github.com/sergiuconi/casier-api/internal/presentation/http/dto/request"
	"github.com/sergiuconi/casier-api/internal/presentation/http/dto/response"
	"github.com/sergiuconi/casier-api/pkg/pagination"
	"github.com/sergiuconi/casier-api/pkg/utils"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers with page-based pagination
func (h *CustomerHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Get handles retrieving a single customer by ID
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Customer retrieved successfully", customer)
}

// Create handles registering a new customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Type:            req.Type,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		CardID:          req.CardID,
		DiscountPercent: req.DiscountPercent,
		NrAuto:          req.NrAuto,
		CodFiscal:       req.CodFiscal,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 201, "Customer created successfully", customer)
}

// Update handles updating an existing customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), &service.UpdateCustomerInput{
		ID:              id,
		Type:            req.Type,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		CardID:          req.CardID,
		DiscountPercent: req.DiscountPercent,
		NrAuto:          req.NrAuto,
		CodFiscal:       req.CodFiscal,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Customer updated successfully", customer)
}

// Delete handles removing a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Customer deleted successfully", nil)
}
