package handler

import (
	"bytes"
	"context"

	"tutor-board/internal/browser"
	"tutor-board/internal/delivery/http/middleware"
	"tutor-board/internal/domain/demand"
	"tutor-board/internal/pkg/response"
	"tutor-board/internal/render"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// DemandCatalog supplies the demand set a browser page is built from.
type DemandCatalog interface {
	Acquire(ctx context.Context) demand.Acquisition
	Reload(ctx context.Context) demand.Acquisition
}

// BrowserHandler serves the demand board as a server-rendered page. Each
// request replays its query parameters on a fresh session.
type BrowserHandler struct {
	catalog DemandCatalog
	appName string
	logger  *zap.Logger
}

func NewBrowserHandler(catalog DemandCatalog, appName string, logger *zap.Logger) *BrowserHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrowserHandler{catalog: catalog, appName: appName, logger: logger}
}

func (h *BrowserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.HandleBoard)
}

func (h *BrowserHandler) HandleBoard(c fiber.Ctx) error {
	view := &render.HTMLView{}
	session := browser.NewSession(view, h.logger)

	switch {
	case h.catalog == nil:
		session.Load(demand.FallbackFor(nil))
	case c.Query("reload") == "1":
		session.Load(h.catalog.Reload(c.Context()))
	default:
		session.Load(h.catalog.Acquire(c.Context()))
	}

	session.Restore(browser.Filters{
		Keyword:  c.Query(string(browser.FieldKeyword)),
		City:     c.Query(string(browser.FieldCity)),
		District: c.Query(string(browser.FieldDistrict)),
		Grade:    c.Query(string(browser.FieldGrade)),
		Subject:  c.Query(string(browser.FieldSubject)),
		Salary:   browser.SalaryBucket(c.Query(string(browser.FieldSalary))),
		Sort:     browser.SortMode(c.Query(string(browser.FieldSort))),
	}, c.Query("selected"))

	var buf bytes.Buffer
	if err := render.Write(&buf, render.NewPage(h.appName, c.Path(), session, view)); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
