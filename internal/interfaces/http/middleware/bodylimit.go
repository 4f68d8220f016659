package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flower8718/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size.
// CSV uploads are the largest expected payload.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("REQUEST_TOO_LARGE", "Request body exceeds maximum allowed size"))
			return
		}

		// limited reader covers chunked requests without Content-Length
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
