package handler

import (
	"secure-bank-console/internal/adapter/http/dto"
	"secure-bank-console/internal/adapter/http/middleware"
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/pkg/response"

	"github.com/gin-gonic/gin"
)

// CustomerHandler serves customer lookup and profile maintenance.
type CustomerHandler struct {
	customerSvc ports.CustomerService
}

func NewCustomerHandler(customerSvc ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerSvc: customerSvc}
}

// List handles GET /api/v1/customers?search=&customerType=&status=&sortBy=&sortOrder=.
func (h *CustomerHandler) List(c *gin.Context) {
	var q dto.CustomerListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}
	dto.SanitizeStruct(&q)

	list, err := h.customerSvc.List(c.Request.Context(), q.Criteria())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, list)
}

// Get handles GET /api/v1/customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := routeID(c, "id")
	if !ok {
		return
	}
	customer, err := h.customerSvc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, customer)
}

// UpdateProfile handles PUT /api/v1/customers/:id/profile.
func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	id, ok := routeID(c, "id")
	if !ok {
		return
	}
	var req dto.ProfileUpdateRequest
	if !bindJSON(c, &req, false) {
		return
	}

	customer, err := h.customerSvc.UpdateProfile(c.Request.Context(), id, req.ToForm())
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetAuditDetails(c, map[string]any{
		"customerType": customer.CustomerType,
		"status":       customer.Status,
	})
	response.OK(c, customer)
}
