package svr

import (
	"github.com/gofiber/fiber/v2"

	"mutants.dev/backend/internal/app/appconfig"
)

// V1 is the classification API, mounted at conf.GlobalPrefix.
type V1 struct {
	fiber.Router
}

// Meta serves operational endpoints.
type Meta struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App, conf *appconfig.Config) (*V1, *Meta) {
	v1 := app.Group(conf.GlobalPrefix)
	meta := app.Group("/api/_")

	return &V1{Router: v1}, &Meta{Router: meta}
}
