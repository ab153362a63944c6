package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/pkg/apperror"
	"secure-bank-console/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderRequestID = "X-Request-ID"

	// Context keys
	CtxPrincipal   = "principal"
	CtxAccessToken = "access_token"
)

// RequestID stamps every request with an id, reusing a well-formed inbound X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// Authenticate resolves the bearer token to a principal through the identity provider.
// The token is also placed on the request context so outbound backend calls carry it.
func Authenticate(idp ports.IdentityProvider, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, apperror.ErrUnauthenticated())
			return
		}

		principal, err := idp.CurrentUser(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, ports.ErrTokenRevoked):
				response.Abort(c, apperror.ErrTokenRevoked())
			case errors.Is(err, ports.ErrInvalidToken):
				log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("rejected access token")
				response.Abort(c, apperror.ErrInvalidToken())
			default:
				log.Error().Err(err).Msg("identity provider check failed")
				response.Abort(c, apperror.ErrIdentityProvider(err))
			}
			return
		}
		if !principal.IsAuthenticated() {
			response.Abort(c, apperror.ErrUnauthenticated())
			return
		}

		c.Set(CtxPrincipal, principal)
		c.Set(CtxAccessToken, token)
		c.Request = c.Request.WithContext(ports.ContextWithAccessToken(c.Request.Context(), token))
		c.Next()
	}
}

// RequireRole admits only principals holding role. An empty role admits nobody.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			response.Abort(c, apperror.ErrUnauthenticated())
			return
		}
		if !p.HasRole(role) {
			response.Abort(c, apperror.ErrForbidden())
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the principal set by Authenticate.
func PrincipalFrom(c *gin.Context) (*domain.Principal, bool) {
	v, exists := c.Get(CtxPrincipal)
	if !exists {
		return nil, false
	}
	p, ok := v.(*domain.Principal)
	return p, ok && p != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		if p, ok := PrincipalFrom(c); ok {
			event = event.Str("user", p.Username)
		}
		event.
			Str("request_id", c.GetString(response.RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
					"request_id": c.GetString(response.RequestIDKey),
				})
			}
		}()
		c.Next()
	}
}
