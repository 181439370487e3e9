package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/fcinventory/backend/internal/domain/shared"
	"github.com/fcinventory/backend/internal/infrastructure/logger"
	"github.com/fcinventory/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the client supplied key that deduplicates submissions
	IdempotencyKeyHeader = "Idempotency-Key"
	// MaxIdempotencyKeyLength bounds the accepted key size
	MaxIdempotencyKeyLength = 255
	// DefaultIdempotencyTTL is used when no ttl is configured
	DefaultIdempotencyTTL = 24 * time.Hour
)

// Idempotency rejects a request whose Idempotency-Key was already seen for the same route.
// Requests without the header pass through. A key is released again when the handler
// answers with an error status, so a failed submission can be retried with the same key.
// When the store itself fails the request proceeds without deduplication.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest, "Idempotency-Key is too long", getRequestID(c)))
			return
		}

		scoped := c.Request.Method + " " + c.FullPath() + " " + key
		ctx := c.Request.Context()
		log := logger.GetGinLogger(c)

		claimed, err := store.Claim(ctx, scoped, ttl)
		if err != nil {
			log.Warn("idempotency store unavailable, processing without deduplication",
				zap.String("idempotency_key", key), zap.Error(err))
			c.Next()
			return
		}
		if !claimed {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeDuplicateRequest, "A request with this Idempotency-Key was already submitted", getRequestID(c)))
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := store.Release(context.WithoutCancel(ctx), scoped); err != nil {
				log.Warn("failed to release idempotency key", zap.String("idempotency_key", key), zap.Error(err))
			}
		}
	}
}
