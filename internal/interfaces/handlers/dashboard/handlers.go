package dashboard

import (
	dashsvc "donorcrm-backend/internal/application/dashboard"
	"donorcrm-backend/internal/domain"
	"donorcrm-backend/internal/middleware"
	"donorcrm-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *dashsvc.Service
}

func (h *Handlers) Register(api fiber.Router) {
	g := api.Group("/dashboard")
	g.Get("/", h.ForRole)
	g.Get("/home", h.Home)
	g.Get("/mgo", h.MGO)
	g.Get("/dev-director", h.DevDirector)
	g.Get("/ceo", h.CEO)
}

// GET /api/dashboard: picks the dashboard for the session user's role; home when anonymous
func (h *Handlers) ForRole(c *fiber.Ctx) error {
	role := ""
	if u := middleware.GetUser(c); u != nil {
		role = u.Role
	}
	switch role {
	case domain.RoleMGO:
		return h.MGO(c)
	case domain.RoleDevDirector:
		return h.DevDirector(c)
	case domain.RoleCEO:
		return h.CEO(c)
	}
	return h.Home(c)
}

// GET /api/dashboard/home
func (h *Handlers) Home(c *fiber.Ctx) error {
	d, err := h.Service.Home(c.UserContext())
	if err != nil {
		return err
	}
	return response.OK(c, d)
}

// GET /api/dashboard/mgo: 501 until the metric set is defined
func (h *Handlers) MGO(c *fiber.Ctx) error {
	d, err := h.Service.MGO(c.UserContext())
	if err != nil {
		return err
	}
	return response.OK(c, d)
}

// GET /api/dashboard/dev-director
func (h *Handlers) DevDirector(c *fiber.Ctx) error {
	d, err := h.Service.DevDirector(c.UserContext())
	if err != nil {
		return err
	}
	return response.OK(c, d)
}

// GET /api/dashboard/ceo
func (h *Handlers) CEO(c *fiber.Ctx) error {
	d, err := h.Service.CEO(c.UserContext())
	if err != nil {
		return err
	}
	return response.OK(c, d)
}
