package buildings

import (
	buildingsvc "leaseos-backend/internal/application/buildings"
	"leaseos-backend/internal/middleware"
	"leaseos-backend/internal/pkg/response"
	"leaseos-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// GET /api/buildings/:id/common-areas
func (h *Handlers) ListCommonAreas(c *fiber.Ctx) error {
	return listParties("Common areas", h.Service.ListCommonAreas)(c)
}

// POST /api/buildings/:id/common-areas
func (h *Handlers) CreateCommonArea(c *fiber.Ctx) error {
	buildingID, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	var in buildingsvc.CommonAreaInput
	if err := validation.BindJSON(c, &in); err != nil {
		return response.Fail(c, err)
	}
	ca, err := h.Service.CreateCommonArea(c.UserContext(), middleware.ActorFrom(c), buildingID, in)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.SuccessCreated(c, "Common area created successfully", ca, nil)
}

// GET /api/common-areas/:id
func (h *Handlers) GetCommonArea(c *fiber.Ctx) error {
	id, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	ca, err := h.Service.GetCommonArea(c.UserContext(), id)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Common area fetched successfully", ca, nil)
}

// PATCH /api/common-areas/:id
func (h *Handlers) PatchCommonArea(c *fiber.Ctx) error {
	id, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	var in buildingsvc.CommonAreaPatch
	if err := validation.BindJSON(c, &in); err != nil {
		return response.Fail(c, err)
	}
	ca, err := h.Service.PatchCommonArea(c.UserContext(), middleware.ActorFrom(c), id, in)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Common area updated successfully", ca, nil)
}
