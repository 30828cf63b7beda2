package gifts

import (
	"fmt"
	"time"

	giftsvc "donorcrm-backend/internal/application/gifts"
	"donorcrm-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handlers struct {
	Service *giftsvc.Service
}

// Register mounts the report routes. Call before the generic /gifts/:id routes.
func (h *Handlers) Register(api fiber.Router) {
	api.Get("/gifts/analytics", h.Analytics)
	api.Get("/gifts/export", h.Export)
}

// GET /api/gifts/analytics?category=
func (h *Handlers) Analytics(c *fiber.Ctx) error {
	report, err := h.Service.Analytics(c.UserContext(), c.Query("category"))
	if err != nil {
		return err
	}
	return response.OK(c, report)
}

// GET /api/gifts/export: xlsx download
func (h *Handlers) Export(c *fiber.Ctx) error {
	b, err := h.Service.Export(c.UserContext())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=gifts-%s.xlsx", time.Now().UTC().Format("2006-01-02")))
	return c.Send(b)
}
