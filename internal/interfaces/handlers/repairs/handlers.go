package repairs

import (
	repairsvc "leaseos-backend/internal/application/repairs"
	"leaseos-backend/internal/domain"
	"leaseos-backend/internal/middleware"
	"leaseos-backend/internal/pkg/response"
	"leaseos-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *repairsvc.Service
}

type listQuery struct {
	Status    string `json:"status" validate:"omitempty,oneof=DRAFT QUOTED APPROVED IN_PROGRESS COMPLETED ACCEPTED REJECTED"`
	ScopeType string `json:"scopeType" validate:"omitempty,oneof=FLOOR COMMON_AREA"`
}

// POST /api/repairs
func (h *Handlers) CreateRepair(c *fiber.Ctx) error {
	var in repairsvc.CreateRepairInput
	if err := validation.BindJSON(c, &in); err != nil {
		return response.Fail(c, err)
	}
	r, err := h.Service.CreateRepair(c.UserContext(), middleware.ActorFrom(c), in)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.SuccessCreated(c, "Repair record created successfully", r, nil)
}

// GET /api/repairs/:id
func (h *Handlers) GetRepair(c *fiber.Ctx) error {
	id, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	r, err := h.Service.GetRepair(c.UserContext(), id)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Repair record fetched successfully", r, nil)
}

// PATCH /api/repairs/:id
func (h *Handlers) PatchRepair(c *fiber.Ctx) error {
	id, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	var in repairsvc.PatchRepairInput
	if err := validation.BindJSON(c, &in); err != nil {
		return response.Fail(c, err)
	}
	r, err := h.Service.PatchRepair(c.UserContext(), middleware.ActorFrom(c), id, in)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Repair record updated successfully", r, nil)
}

// GET /api/buildings/:id/repairs?status=&scopeType=&floorId=&commonAreaId=
func (h *Handlers) ListRepairs(c *fiber.Ctx) error {
	buildingID, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	q := listQuery{Status: c.Query("status"), ScopeType: c.Query("scopeType")}
	if err := validation.Struct(&q); err != nil {
		return response.Fail(c, err)
	}
	var f repairsvc.RepairFilter
	if q.Status != "" {
		s := domain.RepairStatus(q.Status)
		f.Status = &s
	}
	if q.ScopeType != "" {
		s := domain.RepairScopeType(q.ScopeType)
		f.ScopeType = &s
	}
	if f.FloorID, err = validation.UUIDQuery(c, "floorId"); err != nil {
		return response.Fail(c, err)
	}
	if f.CommonAreaID, err = validation.UUIDQuery(c, "commonAreaId"); err != nil {
		return response.Fail(c, err)
	}
	records, err := h.Service.ListRepairs(c.UserContext(), buildingID, f)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, "Repair records fetched successfully", records, fiber.Map{"count": len(records)})
}
