package handler

import (
	"context"

	"secure-bank-console/internal/adapter/http/dto"
	"secure-bank-console/internal/adapter/http/middleware"
	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/internal/core/wizard"
	"secure-bank-console/pkg/response"

	"github.com/gin-gonic/gin"
)

// WizardHandler exposes the account-opening wizard. Every route answers with
// the session's current view.
type WizardHandler struct {
	wizardSvc ports.WizardService
}

func NewWizardHandler(wizardSvc ports.WizardService) *WizardHandler {
	return &WizardHandler{wizardSvc: wizardSvc}
}

type wizardAction func(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error)

// run executes action against the :id session and renders the result.
func (h *WizardHandler) run(c *gin.Context, action wizardAction) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	session, err := action(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewWizardView(session))
}

// Create handles POST /api/v1/wizards.
func (h *WizardHandler) Create(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	session, err := h.wizardSvc.Create(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetAuditResource(c, session.ID)
	c.Header("Location", "/api/v1/wizards/"+session.ID)
	response.Created(c, dto.NewWizardView(session))
}

// Get handles GET /api/v1/wizards/:id.
func (h *WizardHandler) Get(c *gin.Context) {
	h.run(c, h.wizardSvc.Get)
}

// Search handles POST /api/v1/wizards/:id/search.
func (h *WizardHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if !bindJSON(c, &req, false) {
		return
	}
	h.run(c, func(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error) {
		return h.wizardSvc.Search(ctx, p, id, req.ToPatch())
	})
}

// ResetFilters handles POST /api/v1/wizards/:id/reset-filters.
func (h *WizardHandler) ResetFilters(c *gin.Context) {
	h.run(c, h.wizardSvc.ResetFilters)
}

// Select handles POST /api/v1/wizards/:id/select.
func (h *WizardHandler) Select(c *gin.Context) {
	var req dto.SelectCustomerRequest
	if !bindJSON(c, &req, false) {
		return
	}
	h.run(c, func(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error) {
		return h.wizardSvc.SelectCustomer(ctx, p, id, req.CustomerID)
	})
}

// Deselect handles POST /api/v1/wizards/:id/deselect.
func (h *WizardHandler) Deselect(c *gin.Context) {
	h.run(c, h.wizardSvc.DeselectCustomer)
}

// Next handles POST /api/v1/wizards/:id/next.
func (h *WizardHandler) Next(c *gin.Context) {
	h.run(c, h.wizardSvc.Next)
}

// Back handles POST /api/v1/wizards/:id/back.
func (h *WizardHandler) Back(c *gin.Context) {
	h.run(c, h.wizardSvc.Back)
}

// ApplyAccountType handles POST /api/v1/wizards/:id/account-type.
func (h *WizardHandler) ApplyAccountType(c *gin.Context) {
	var req dto.AccountTypeRequest
	if !bindJSON(c, &req, false) {
		return
	}
	h.run(c, func(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error) {
		return h.wizardSvc.ApplyPreset(ctx, p, id, domain.AccountType(req.AccountType))
	})
}

// UpdateAccount handles PUT /api/v1/wizards/:id/account.
func (h *WizardHandler) UpdateAccount(c *gin.Context) {
	var req dto.AccountPatchRequest
	if !bindJSON(c, &req, false) {
		return
	}
	h.run(c, func(ctx context.Context, p *domain.Principal, id string) (*wizard.Session, error) {
		return h.wizardSvc.UpdateAccount(ctx, p, id, req.ToPatch())
	})
}

// Confirm handles POST /api/v1/wizards/:id/confirm.
func (h *WizardHandler) Confirm(c *gin.Context) {
	h.run(c, h.wizardSvc.Confirm)
}

// Submit handles POST /api/v1/wizards/:id/submit.
func (h *WizardHandler) Submit(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	session, err := h.wizardSvc.Submit(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	details := map[string]any{"wizardId": session.ID}
	if st := session.State; st != nil {
		if st.SelectedCustomer != nil {
			details["customerId"] = st.SelectedCustomer.CustomerID
		}
		details["accountType"] = st.AccountForm.AccountType
		if st.Result != nil {
			middleware.SetAuditResource(c, st.Result.AccountNumber)
		}
	}
	middleware.SetAuditDetails(c, details)
	response.Created(c, dto.NewWizardView(session))
}

// Reset handles POST /api/v1/wizards/:id/reset.
func (h *WizardHandler) Reset(c *gin.Context) {
	h.run(c, h.wizardSvc.Reset)
}
