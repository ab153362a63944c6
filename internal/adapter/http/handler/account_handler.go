package handler

import (
	"strconv"

	"secure-bank-console/internal/adapter/http/dto"
	"secure-bank-console/internal/adapter/http/middleware"
	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/pkg/apperror"
	"secure-bank-console/pkg/response"

	"github.com/gin-gonic/gin"
)

const defaultHistoryLimit = 50

// AccountHandler serves account lookups, freezes and the account audit trail.
type AccountHandler struct {
	accountSvc ports.AccountService
	freezeSvc  ports.FreezeService
	auditSvc   ports.AuditService
}

func NewAccountHandler(accountSvc ports.AccountService, freezeSvc ports.FreezeService, auditSvc ports.AuditService) *AccountHandler {
	return &AccountHandler{
		accountSvc: accountSvc,
		freezeSvc:  freezeSvc,
		auditSvc:   auditSvc,
	}
}

// Mine handles GET /api/v1/accounts/me: the accounts of the signed-in user.
func (h *AccountHandler) Mine(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	portfolio, err := h.accountSvc.ListForPrincipal(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, portfolio)
}

// ByCustomer handles GET /api/v1/accounts/customer/:customerId.
func (h *AccountHandler) ByCustomer(c *gin.Context) {
	customerID, ok := routeID(c, "customerId")
	if !ok {
		return
	}
	portfolio, err := h.accountSvc.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, portfolio)
}

// Get handles GET /api/v1/accounts/:id.
func (h *AccountHandler) Get(c *gin.Context) {
	id, ok := routeID(c, "id")
	if !ok {
		return
	}
	account, err := h.accountSvc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, account)
}

// Freeze handles PUT /api/v1/accounts/:id/freeze.
func (h *AccountHandler) Freeze(c *gin.Context) {
	id, ok := routeID(c, "id")
	if !ok {
		return
	}
	var req dto.FreezeRequest
	if !bindJSON(c, &req, false) {
		return
	}

	resp, err := h.freezeSvc.Freeze(c.Request.Context(), req.ToCommand(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	if resp.AccountNumber != "" {
		middleware.SetAuditResource(c, resp.AccountNumber)
	}
	middleware.SetAuditDetails(c, map[string]any{
		"freezeType":      req.FreezeType,
		"reason":          req.Reason,
		"authorizedBy":    req.AuthorizedBy,
		"urgent":          req.UrgentFreeze,
		"referenceNumber": resp.FreezeReferenceNumber,
		"previousStatus":  resp.PreviousStatus,
		"currentStatus":   resp.CurrentStatus,
	})
	response.OK(c, resp)
}

// History handles GET /api/v1/accounts/:id/history?limit=: audit entries, newest first.
func (h *AccountHandler) History(c *gin.Context) {
	id, ok := routeID(c, "id")
	if !ok {
		return
	}
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.Error(c, apperror.ValidationFields("Invalid query", map[string]string{
				"limit": "limit must be a positive integer",
			}))
			return
		}
		limit = n
	}

	logs, err := h.auditSvc.History(c.Request.Context(), domain.ResourceAccount, id, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewHistory(logs))
}

// AccountTypes handles GET /api/v1/account-types.
func (h *AccountHandler) AccountTypes(c *gin.Context) {
	response.OK(c, dto.NewAccountTypesResponse())
}
