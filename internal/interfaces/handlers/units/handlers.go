package units

import (
	unitsvc "leaseos-backend/internal/application/units"
	"leaseos-backend/internal/middleware"
	"leaseos-backend/internal/pkg/response"
	"leaseos-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *unitsvc.Service
}

type splitRequest struct {
	Parts []unitsvc.UnitPart `json:"parts" validate:"required,min=1,dive"`
}

// GET /api/floors/:id/units
func (h *Handlers) ListUnits(c *fiber.Ctx) error {
	floorID, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	units, err := h.Service.ListCurrentUnits(c.UserContext(), floorID)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Units fetched successfully", units, nil)
}

// POST /api/floors/:id/units
func (h *Handlers) CreateUnit(c *fiber.Ctx) error {
	floorID, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	var in unitsvc.CreateUnitInput
	if err := validation.BindJSON(c, &in); err != nil {
		return response.Fail(c, err)
	}
	u, err := h.Service.CreateUnit(c.UserContext(), middleware.ActorFrom(c), floorID, in)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.SuccessCreated(c, "Unit created successfully", u, nil)
}

// PATCH /api/units/:id
func (h *Handlers) PatchUnit(c *fiber.Ctx) error {
	id, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	var in unitsvc.PatchUnitInput
	if err := validation.BindJSON(c, &in); err != nil {
		return response.Fail(c, err)
	}
	u, err := h.Service.PatchUnit(c.UserContext(), middleware.ActorFrom(c), id, in)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Unit updated successfully", u, nil)
}

// POST /api/units/:id/split
func (h *Handlers) SplitUnit(c *fiber.Ctx) error {
	id, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	var req splitRequest
	if err := validation.BindJSON(c, &req); err != nil {
		return response.Fail(c, err)
	}
	children, err := h.Service.SplitUnit(c.UserContext(), middleware.ActorFrom(c), id, req.Parts)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.SuccessCreated(c, "Unit split successfully", children, nil)
}

// POST /api/units/merge
func (h *Handlers) MergeUnits(c *fiber.Ctx) error {
	var in unitsvc.MergeInput
	if err := validation.BindJSON(c, &in); err != nil {
		return response.Fail(c, err)
	}
	merged, err := h.Service.MergeUnits(c.UserContext(), middleware.ActorFrom(c), in)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.SuccessCreated(c, "Units merged successfully", merged, nil)
}

// GET /api/units/:id/lineage
func (h *Handlers) Lineage(c *fiber.Ctx) error {
	id, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	l, err := h.Service.Lineage(c.UserContext(), id)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Unit lineage fetched successfully", l, nil)
}
