package buildings

import (
	buildingsvc "leaseos-backend/internal/application/buildings"
	"leaseos-backend/internal/middleware"
	"leaseos-backend/internal/pkg/response"
	"leaseos-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves buildings, floors and the building-scoped registries.
type Handlers struct {
	Service *buildingsvc.Service
}

// GET /api/buildings
func (h *Handlers) ListBuildings(c *fiber.Ctx) error {
	data, err := h.Service.ListBuildings(c.UserContext())
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Buildings fetched successfully", data, nil)
}

// POST /api/buildings
func (h *Handlers) CreateBuilding(c *fiber.Ctx) error {
	var in buildingsvc.BuildingInput
	if err := validation.BindJSON(c, &in); err != nil {
		return response.Fail(c, err)
	}
	b, err := h.Service.CreateBuilding(c.UserContext(), middleware.ActorFrom(c), in)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.SuccessCreated(c, "Building created successfully", b, nil)
}

// GET /api/buildings/:id
func (h *Handlers) GetBuilding(c *fiber.Ctx) error {
	id, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	b, err := h.Service.GetBuilding(c.UserContext(), id)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Building fetched successfully", b, nil)
}

// PATCH /api/buildings/:id
func (h *Handlers) PatchBuilding(c *fiber.Ctx) error {
	id, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	var in buildingsvc.BuildingPatch
	if err := validation.BindJSON(c, &in); err != nil {
		return response.Fail(c, err)
	}
	b, err := h.Service.PatchBuilding(c.UserContext(), middleware.ActorFrom(c), id, in)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Building updated successfully", b, nil)
}

// POST /api/buildings/:id/floors/generate
// The body is optional; configured defaults apply to omitted counts.
func (h *Handlers) GenerateFloors(c *fiber.Ctx) error {
	id, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	var in buildingsvc.GenerateFloorsInput
	if len(c.Body()) > 0 {
		if err := validation.BindJSON(c, &in); err != nil {
			return response.Fail(c, err)
		}
	}
	floors, err := h.Service.GenerateFloors(c.UserContext(), middleware.ActorFrom(c), id, in)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.SuccessCreated(c, "Floors generated successfully", floors, fiber.Map{"count": len(floors)})
}

// GET /api/buildings/:id/floors
func (h *Handlers) ListFloors(c *fiber.Ctx) error {
	id, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	floors, err := h.Service.ListFloors(c.UserContext(), id)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Floors fetched successfully", floors, nil)
}

// GET /api/floors/:id
func (h *Handlers) GetFloor(c *fiber.Ctx) error {
	id, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	f, err := h.Service.GetFloor(c.UserContext(), id)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Floor fetched successfully", f, nil)
}
