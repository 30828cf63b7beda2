package resources

import (
	"encoding/json"
	"strconv"

	ressvc "donorcrm-backend/internal/application/resources"
	"donorcrm-backend/internal/infrastructure/repository"
	"donorcrm-backend/internal/middleware"
	"donorcrm-backend/internal/pkg/apperrors"
	"donorcrm-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// Filter kinds decide how a query-string value is parsed before it reaches SQL.
const (
	KindString = iota
	KindUUID
	KindInt
	KindBool
)

// Filter whitelists one query-string key and maps it to a column.
type Filter struct {
	Param  string
	Column string
	Kind   int
}

// Scope binds a route parameter (e.g. /workflows/:id/blocks) to a parent column and body field.
type Scope struct {
	Param     string
	Column    string
	JSONField string
}

// Config describes one REST resource.
type Config struct {
	Filters []Filter
	Order   string
	Scope   *Scope
	// OwnerField is the JSON field defaulted to the session user's id on create.
	OwnerField string
}

// Handlers serves list/get/create/update/delete for one model type.
type Handlers[T any] struct {
	Service *ressvc.Service[T]
	Config  Config
}

// GET /api/<res>
func (h *Handlers[T]) List(c *fiber.Ctx) error {
	q := repository.Query{Filters: map[string]interface{}{}, Order: h.Config.Order, Limit: defaultLimit}

	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return apperrors.NewValidation("limit must be a positive integer")
		}
		if n > maxLimit {
			n = maxLimit
		}
		q.Limit = n
	}
	for _, f := range h.Config.Filters {
		raw := c.Query(f.Param)
		if raw == "" {
			continue
		}
		v, err := parseFilter(f, raw)
		if err != nil {
			return err
		}
		q.Filters[f.Column] = v
	}
	if sc := h.Config.Scope; sc != nil {
		parent, err := parseID(c, sc.Param)
		if err != nil {
			return err
		}
		q.Filters[sc.Column] = parent
	}

	rows, err := h.Service.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return response.OK(c, rows)
}

// GET /api/<res>/:id
func (h *Handlers[T]) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	row, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return response.OK(c, row)
}

// POST /api/<res>: 201 with the created row
func (h *Handlers[T]) Create(c *fiber.Ctx) error {
	body, err := decodeObject(c.Body())
	if err != nil {
		return err
	}
	if sc := h.Config.Scope; sc != nil {
		parent, err := parseID(c, sc.Param)
		if err != nil {
			return err
		}
		body[sc.JSONField] = mustJSON(parent.String())
	}
	if f := h.Config.OwnerField; f != "" && isAbsent(body[f]) {
		if uid, ok := middleware.GetUserID(c); ok {
			body[f] = mustJSON(uid.String())
		}
	}

	var row T
	b, _ := json.Marshal(body)
	if err := json.Unmarshal(b, &row); err != nil {
		return apperrors.NewValidation("Invalid request body")
	}
	created, err := h.Service.Create(c.UserContext(), &row)
	if err != nil {
		return err
	}
	return response.Created(c, created)
}

// PATCH|PUT /api/<res>/:id: partial merge
func (h *Handlers[T]) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	body, err := decodeObject(c.Body())
	if err != nil {
		return err
	}
	if sc := h.Config.Scope; sc != nil {
		delete(body, sc.JSONField)
	}
	row, err := h.Service.Update(c.UserContext(), id, body)
	if err != nil {
		return err
	}
	return response.OK(c, row)
}

// DELETE /api/<res>/:id: 204, empty body
func (h *Handlers[T]) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return response.NoContent(c)
}

// Mount registers the five CRUD routes on r. Single-row routes are skipped for scoped
// (nested) resources since their rows are addressed through the parent.
func (h *Handlers[T]) Mount(r fiber.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	if h.Config.Scope != nil {
		return
	}
	r.Get("/:id", h.Get)
	r.Patch("/:id", h.Update)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func parseID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, &apperrors.ValidationError{
			Message: "Invalid " + param + " format",
			Details: map[string]string{param: "must be a UUID"},
		}
	}
	return id, nil
}

func parseFilter(f Filter, raw string) (interface{}, error) {
	bad := func(rule string) error {
		return &apperrors.ValidationError{
			Message: "Invalid filter " + f.Param,
			Details: map[string]string{f.Param: rule},
		}
	}
	switch f.Kind {
	case KindUUID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, bad("must be a UUID")
		}
		return id, nil
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, bad("must be an integer")
		}
		return n, nil
	case KindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, bad("must be true or false")
		}
		return v, nil
	}
	return raw, nil
}

func decodeObject(b []byte) (map[string]json.RawMessage, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(b, &body); err != nil || body == nil {
		return nil, apperrors.NewValidation("Invalid request body")
	}
	return body, nil
}

func isAbsent(v json.RawMessage) bool {
	return len(v) == 0 || string(v) == "null" || string(v) == `""`
}

func mustJSON(v interface{}) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}
