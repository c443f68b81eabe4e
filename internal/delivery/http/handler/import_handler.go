package handler

import (
	"crypto/subtle"
	"strings"

	"tutor-board/internal/delivery/http/dto"
	"tutor-board/internal/delivery/http/middleware"
	"tutor-board/internal/pkg/response"
	"tutor-board/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

const HeaderInternalToken = "X-Internal-Token"

// maxImportURLs bounds one request; larger batches go through demandctl.
const maxImportURLs = 20

type ImportHandler struct {
	uc     usecase.ImportUsecase
	token  string
	logger *zap.Logger
}

// NewImportHandler guards imports with token. An empty token rejects every
// request.
func NewImportHandler(uc usecase.ImportUsecase, token string, logger *zap.Logger) *ImportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportHandler{uc: uc, token: strings.TrimSpace(token), logger: logger}
}

func (h *ImportHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.HandleImport)
}

func (h *ImportHandler) HandleImport(c fiber.Ctx) error {
	tok := strings.TrimSpace(c.Get(HeaderInternalToken))
	if tok == "" || h.token == "" || subtle.ConstantTimeCompare([]byte(tok), []byte(h.token)) != 1 {
		return middleware.NewAppError(fiber.StatusUnauthorized, "unauthorized", nil, nil)
	}

	var req dto.ImportRequest
	if err := c.Bind().Body(&req); err != nil {
		h.logger.Warn("import request rejected", zap.Error(err))
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if len(req.URLs) > maxImportURLs {
		return middleware.NewAppError(fiber.StatusBadRequest, "too many urls", fiber.Map{"max": maxImportURLs}, nil)
	}

	report, err := h.uc.Import(c.Context(), req.URLs)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := dto.ImportResponse{
		Articles: report.Articles,
		Parsed:   report.Parsed,
		Upserted: report.Upserted,
		Failures: make([]dto.ImportFailureResponse, 0, len(report.Failures)),
	}
	for _, f := range report.Failures {
		out.Failures = append(out.Failures, dto.ImportFailureResponse{URL: f.URL, Error: f.Error})
	}
	return response.Success(c, fiber.StatusOK, "import finished", out)
}
