package handler

import (
	"secure-bank-console/internal/adapter/http/dto"
	"secure-bank-console/internal/adapter/http/middleware"
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/pkg/apperror"
	"secure-bank-console/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuthHandler exposes the identity provider to the console.
type AuthHandler struct {
	idp ports.IdentityProvider
	log zerolog.Logger
}

func NewAuthHandler(idp ports.IdentityProvider, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{idp: idp, log: log}
}

// Login handles GET /api/v1/auth/login. The state value must be echoed back
// by the client after the provider redirects.
func (h *AuthHandler) Login(c *gin.Context) {
	state := uuid.New().String()
	response.OK(c, dto.LoginResponse{
		URL:   h.idp.Login(state),
		State: state,
	})
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req dto.LogoutRequest
	if !bindJSON(c, &req, true) {
		return
	}

	if err := h.idp.Logout(c.Request.Context(), p, req.RefreshToken); err != nil {
		h.log.Error().Err(err).Str("user", p.Username).Msg("logout failed")
		response.Error(c, apperror.ErrIdentityProvider(err))
		return
	}

	middleware.SetAuditResource(c, p.Subject)
	middleware.SetAuditDetails(c, map[string]any{"providerSession": req.RefreshToken != ""})
	response.OK(c, gin.H{"loggedOut": true})
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	response.OK(c, dto.NewPrincipalResponse(p))
}
