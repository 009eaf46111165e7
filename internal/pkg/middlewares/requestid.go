package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"mutants.dev/backend/internal/constant"
	"mutants.dev/backend/internal/pkg/flog"
)

// RequestID copies the id generated by the logger chain into ctx.Locals.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := flog.IDFromFiberCtx(c)
		if ok {
			c.Locals(constant.ContextKeyRequestID, id.String())
		}
		return c.Next()
	}
}
