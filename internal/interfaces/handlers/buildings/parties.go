package buildings

import (
	"context"

	buildingsvc "leaseos-backend/internal/application/buildings"
	"leaseos-backend/internal/middleware"
	"leaseos-backend/internal/pkg/response"
	"leaseos-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Tenants, owners and vendors share request shapes, so their handlers are built from these.

func createParty[T any](label string, create func(ctx context.Context, actor string, buildingID uuid.UUID, in buildingsvc.PartyInput) (T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		buildingID, err := validation.UUIDParam(c, "id")
		if err != nil {
			return response.Fail(c, err)
		}
		var in buildingsvc.PartyInput
		if err := validation.BindJSON(c, &in); err != nil {
			return response.Fail(c, err)
		}
		out, err := create(c.UserContext(), middleware.ActorFrom(c), buildingID, in)
		if err != nil {
			return response.Fail(c, err)
		}
		return response.SuccessCreated(c, label+" created successfully", out, nil)
	}
}

func patchParty[T any](label string, patch func(ctx context.Context, actor string, id uuid.UUID, in buildingsvc.PartyPatch) (T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.UUIDParam(c, "id")
		if err != nil {
			return response.Fail(c, err)
		}
		var in buildingsvc.PartyPatch
		if err := validation.BindJSON(c, &in); err != nil {
			return response.Fail(c, err)
		}
		out, err := patch(c.UserContext(), middleware.ActorFrom(c), id, in)
		if err != nil {
			return response.Fail(c, err)
		}
		return response.Success(c, label+" updated successfully", out, nil)
	}
}

func listParties[T any](label string, list func(ctx context.Context, buildingID uuid.UUID) ([]T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		buildingID, err := validation.UUIDParam(c, "id")
		if err != nil {
			return response.Fail(c, err)
		}
		out, err := list(c.UserContext(), buildingID)
		if err != nil {
			return response.Fail(c, err)
		}
		return response.Success(c, label+" fetched successfully", out, nil)
	}
}

// GET /api/buildings/:id/tenants
func (h *Handlers) ListTenants(c *fiber.Ctx) error {
	return listParties("Tenants", h.Service.ListTenants)(c)
}

// POST /api/buildings/:id/tenants
func (h *Handlers) CreateTenant(c *fiber.Ctx) error {
	return createParty("Tenant", h.Service.CreateTenant)(c)
}

// GET /api/tenants/:id
func (h *Handlers) GetTenant(c *fiber.Ctx) error {
	id, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	t, err := h.Service.GetTenant(c.UserContext(), id)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Tenant fetched successfully", t, nil)
}

// PATCH /api/tenants/:id
func (h *Handlers) PatchTenant(c *fiber.Ctx) error {
	return patchParty("Tenant", h.Service.PatchTenant)(c)
}

// GET /api/buildings/:id/owners
func (h *Handlers) ListOwners(c *fiber.Ctx) error {
	return listParties("Owners", h.Service.ListOwners)(c)
}

// POST /api/buildings/:id/owners
func (h *Handlers) CreateOwner(c *fiber.Ctx) error {
	return createParty("Owner", h.Service.CreateOwner)(c)
}

// PATCH /api/owners/:id
func (h *Handlers) PatchOwner(c *fiber.Ctx) error {
	return patchParty("Owner", h.Service.PatchOwner)(c)
}

// GET /api/buildings/:id/vendors
func (h *Handlers) ListVendors(c *fiber.Ctx) error {
	return listParties("Vendors", h.Service.ListVendors)(c)
}

// POST /api/buildings/:id/vendors
func (h *Handlers) CreateVendor(c *fiber.Ctx) error {
	return createParty("Vendor", h.Service.CreateVendor)(c)
}

// PATCH /api/vendors/:id
func (h *Handlers) PatchVendor(c *fiber.Ctx) error {
	return patchParty("Vendor", h.Service.PatchVendor)(c)
}
