package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/flower8718/backend/internal/interfaces/http/dto"
)

// IdempotencyKeyHeader is the header clients send to deduplicate retries
const IdempotencyKeyHeader = "Idempotency-Key"

// defaultIdempotencyTTL bounds how long a key blocks replays
const defaultIdempotencyTTL = 24 * time.Hour

// Idempotency returns a middleware that rejects replays of mutating
// requests carrying an Idempotency-Key header. Requests without the
// header pass through untouched.
func Idempotency(store shared.IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		// scope the key by route so the same key may be reused
		// across different endpoints
		scoped := c.Request.Method + " " + c.FullPath() + " " + key

		fresh, err := store.MarkProcessed(c.Request.Context(), scoped, defaultIdempotencyTTL)
		if err != nil {
			// a broken store should not block business operations
			c.Next()
			return
		}
		if !fresh {
			c.AbortWithStatusJSON(http.StatusConflict,
				dto.NewErrorResponse("DUPLICATE_REQUEST", "This request was already processed"))
			return
		}
		c.Next()
	}
}
