package routes

import (
	"tutor-board/internal/delivery/http/handler"
	"tutor-board/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Handlers groups everything the registry mounts. Nil members are skipped.
type Handlers struct {
	Health  *handler.HealthHandler
	Browser *handler.BrowserHandler
	Demands *handler.DemandsHandler
	Imports *handler.ImportHandler
	WS      *ws.Handler
}

type Registry struct {
	h Handlers
}

func NewRegistry(h Handlers) *Registry {
	return &Registry{h: h}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerRoot(app)
	r.registerAPI(app)
}

func (r *Registry) registerRoot(app *fiber.App) {
	if r.h.Health != nil {
		r.h.Health.RegisterRoutes(app)
	}
	if r.h.Browser != nil {
		r.h.Browser.RegisterRoutes(app)
	}
	if r.h.WS != nil {
		r.h.WS.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	tutoring := app.Group("/api/tutoring")
	if r.h.Demands != nil {
		r.h.Demands.RegisterRoutes(tutoring.Group("/demands"))
	}
	if r.h.Imports != nil {
		r.h.Imports.RegisterRoutes(tutoring.Group("/imports"))
	}
}
