package handler

import (
	"tutor-board/internal/delivery/http/dto"
	"tutor-board/internal/pkg/response"
	"tutor-board/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DemandsHandler struct {
	uc usecase.DemandListUsecase
}

func NewDemandsHandler(uc usecase.DemandListUsecase) *DemandsHandler {
	return &DemandsHandler{uc: uc}
}

func (h *DemandsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.HandleListDemands)
	r.Get("/:id", h.HandleGetDemand)
}

func (h *DemandsHandler) HandleListDemands(c fiber.Ctx) error {
	items, err := h.uc.ListDemands(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewDemandListResponse(items))
}

func (h *DemandsHandler) HandleGetDemand(c fiber.Ctx) error {
	d, err := h.uc.GetDemand(c.Context(), c.Params("id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewDemandResponse(d))
}
