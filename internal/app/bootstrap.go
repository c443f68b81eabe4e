package app

import (
	"fmt"
	"strings"

	"tutor-board/internal/config"
	"tutor-board/internal/delivery/http/handler"
	"tutor-board/internal/delivery/http/middleware"
	"tutor-board/internal/delivery/http/routes"
	"tutor-board/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application over an assembled container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	routes.NewRegistry(handlers(c)).Register(f)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func handlers(c *Container) routes.Handlers {
	checks := map[string]handler.Pinger{}
	if c.DB != nil {
		checks["database"] = c.DB
	}
	if strings.TrimSpace(c.Config.Redis.Host) != "" {
		checks["redis"] = c.Cache
	}

	return routes.Handlers{
		Health:  handler.NewHealthHandler(checks),
		Browser: handler.NewBrowserHandler(c.Catalog, c.Config.App.AppName, c.Logger),
		Demands: handler.NewDemandsHandler(c.DemandList),
		Imports: handler.NewImportHandler(c.Import, c.Config.App.InternalToken, c.Logger),
		WS:      ws.NewHandler(c.Hub, c.Logger),
	}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
