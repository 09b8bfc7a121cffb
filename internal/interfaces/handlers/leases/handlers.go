package leases

import (
	leasesvc "leaseos-backend/internal/application/leases"
	"leaseos-backend/internal/middleware"
	"leaseos-backend/internal/pkg/response"
	"leaseos-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves leases and occupancies.
type Handlers struct {
	Service *leasesvc.Service
}

// POST /api/leases
func (h *Handlers) CreateLease(c *fiber.Ctx) error {
	var in leasesvc.CreateLeaseInput
	if err := validation.BindJSON(c, &in); err != nil {
		return response.Fail(c, err)
	}
	lease, err := h.Service.CreateLease(c.UserContext(), middleware.ActorFrom(c), in)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.SuccessCreated(c, "Lease created successfully", lease, nil)
}

// GET /api/leases/:id
func (h *Handlers) GetLease(c *fiber.Ctx) error {
	id, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	detail, err := h.Service.GetLease(c.UserContext(), id)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Lease fetched successfully", detail, nil)
}

// PATCH /api/leases/:id
func (h *Handlers) PatchLease(c *fiber.Ctx) error {
	id, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	var in leasesvc.PatchLeaseInput
	if err := validation.BindJSON(c, &in); err != nil {
		return response.Fail(c, err)
	}
	lease, err := h.Service.PatchLease(c.UserContext(), middleware.ActorFrom(c), id, in)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Lease updated successfully", lease, nil)
}

// GET /api/buildings/:id/leases
func (h *Handlers) ListLeases(c *fiber.Ctx) error {
	buildingID, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	leases, err := h.Service.ListLeases(c.UserContext(), buildingID)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Leases fetched successfully", leases, nil)
}

// POST /api/occupancies
func (h *Handlers) CreateOccupancy(c *fiber.Ctx) error {
	var in leasesvc.CreateOccupancyInput
	if err := validation.BindJSON(c, &in); err != nil {
		return response.Fail(c, err)
	}
	occ, err := h.Service.CreateOccupancy(c.UserContext(), middleware.ActorFrom(c), in)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.SuccessCreated(c, "Occupancy created successfully", occ, nil)
}

// PATCH /api/occupancies/:id
func (h *Handlers) PatchOccupancy(c *fiber.Ctx) error {
	id, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	var in leasesvc.PatchOccupancyInput
	if err := validation.BindJSON(c, &in); err != nil {
		return response.Fail(c, err)
	}
	occ, err := h.Service.PatchOccupancy(c.UserContext(), middleware.ActorFrom(c), id, in)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Occupancy updated successfully", occ, nil)
}

// GET /api/buildings/:id/occupancies
func (h *Handlers) ListOccupancies(c *fiber.Ctx) error {
	buildingID, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	occs, err := h.Service.ListOccupancies(c.UserContext(), buildingID)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Occupancies fetched successfully", occs, nil)
}
