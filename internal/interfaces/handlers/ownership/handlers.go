package ownership

import (
	ownersvc "leaseos-backend/internal/application/ownership"
	"leaseos-backend/internal/middleware"
	"leaseos-backend/internal/pkg/response"
	"leaseos-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *ownersvc.Service
}

// POST /api/floors/:id/owners/assign
func (h *Handlers) AssignFloorOwner(c *fiber.Ctx) error {
	floorID, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	var in ownersvc.AssignInput
	if err := validation.BindJSON(c, &in); err != nil {
		return response.Fail(c, err)
	}
	fo, err := h.Service.AssignFloorOwner(c.UserContext(), middleware.ActorFrom(c), floorID, in)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.SuccessCreated(c, "Floor owner assigned successfully", fo, nil)
}

// GET /api/floors/:id/owners
func (h *Handlers) ListFloorOwners(c *fiber.Ctx) error {
	floorID, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	owners, err := h.Service.ListFloorOwners(c.UserContext(), floorID)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Floor owners fetched successfully", owners, nil)
}

// DELETE /api/floor-owners/:id
func (h *Handlers) DeleteFloorOwner(c *fiber.Ctx) error {
	id, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	if err := h.Service.DeleteFloorOwner(c.UserContext(), middleware.ActorFrom(c), id); err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Floor owner removed successfully", fiber.Map{"id": id}, nil)
}
