package export

import (
	"fmt"

	exportsvc "leaseos-backend/internal/application/export"
	"leaseos-backend/internal/pkg/response"
	"leaseos-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handlers struct {
	Service *exportsvc.Service
}

// GET /api/buildings/:id/export/xlsx
func (h *Handlers) BuildingWorkbook(c *fiber.Ctx) error {
	id, err := validation.UUIDParam(c, "id")
	if err != nil {
		return response.Fail(c, err)
	}
	data, name, err := h.Service.BuildingWorkbook(c.UserContext(), id)
	if err != nil {
		return response.Fail(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(data)
}
