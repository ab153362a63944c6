package middleware

import (
	"net/http"

	"secure-bank-console/pkg/apperror"
	"secure-bank-console/pkg/response"

	"github.com/gin-gonic/gin"
)

// MaxBodySize rejects requests whose declared length exceeds maxBytes and
// caps the body reader for the rest, so chunked uploads fail at bind time.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Abort(c, apperror.ErrPayloadTooLarge(maxBytes))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
