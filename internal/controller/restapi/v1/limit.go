package v1

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// limit caps how often conversions are submitted across all sessions.
func (r *V1) limit(ctx *fiber.Ctx) error {
	if r.limiter == nil || r.limiter.Allow() {
		return ctx.Next()
	}

	r.logger.Warn("http - v1 - limit - conversion rate exceeded")

	return errorResponse(ctx, http.StatusTooManyRequests, "too many conversions, please try again")
}
