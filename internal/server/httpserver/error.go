package httpserver

import (
	"strconv"

	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"mutants.dev/backend/internal/pkg/apierr"
	"mutants.dev/backend/internal/pkg/flog"
)

func handleCustomError(ctx *fiber.Ctx, e *apierr.APIError) error {
	evt := log.Warn()
	if e.StatusCode >= fiber.StatusInternalServerError {
		evt = log.Error()
	}
	evt.
		Err(e).
		Str("evt.name", "http.error").
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Msg(e.Message)

	// Provide error code if apierr.APIError type
	body := fiber.Map{
		"code":    e.ErrorCode,
		"message": e.Message,
	}

	// Add extra details if needed
	if e.Extras != nil && len(*e.Extras) > 0 {
		for k, v := range *e.Extras {
			body[k] = v
		}
	}

	return ctx.Status(e.StatusCode).JSON(body)
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	// Use custom error handler to return JSON error responses
	var ae *apierr.APIError
	if errors.As(err, &ae) {
		return handleCustomError(ctx, ae)
	}

	// Return default error handler
	// Default 500 statuscode
	re := apierr.ErrInternalError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		// Overwrite status code if fiber.Error type & provided code
		re = apierr.New(fe.Code, "UNKNOWN_ERROR", fe.Message)
		if fe.Code < fiber.StatusInternalServerError {
			return handleCustomError(ctx, re)
		}
	}

	log.Error().
		Stack().
		Err(err).
		Str("evt.name", "http.error.internal").
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status", re.StatusCode).
		Msg("Internal Server Error")

	if hub := fibersentry.GetHubFromContext(ctx); hub != nil {
		hub.Scope().SetTag("status", strconv.Itoa(re.StatusCode))
		if id, ok := flog.IDFromFiberCtx(ctx); ok {
			hub.Scope().SetTag("request_id", id.String())
		}
		hub.CaptureException(err)
	}

	return handleCustomError(ctx, re)
}
