package handler

import (
	"errors"
	"io"

	"secure-bank-console/internal/adapter/http/dto"
	"secure-bank-console/internal/adapter/http/middleware"
	"secure-bank-console/internal/core/domain"
	"secure-bank-console/pkg/apperror"
	"secure-bank-console/pkg/response"

	"github.com/gin-gonic/gin"
)

// currentPrincipal returns the authenticated principal or writes AUTH_001.
func currentPrincipal(c *gin.Context) (*domain.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthenticated())
		return nil, false
	}
	return p, true
}

// bindJSON decodes and sanitizes the body into req, writing the error envelope on failure.
// An empty body is accepted when optional is set.
func bindJSON(c *gin.Context, req any, optional bool) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if !(optional && errors.Is(err, io.EOF)) {
			response.Error(c, dto.BindError(err))
			return false
		}
	}
	dto.SanitizeStruct(req)
	return true
}

// routeID reads a path parameter that is forwarded to the banking backend.
// An empty value is passed through so services can answer with their redirect hint.
func routeID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if id != "" && !dto.IsSafeID(id) {
		response.Error(c, apperror.ValidationFields("Invalid identifier", map[string]string{
			name: name + " contains invalid characters",
		}))
		return "", false
	}
	return id, true
}
