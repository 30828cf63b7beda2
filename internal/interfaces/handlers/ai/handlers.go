package ai

import (
	"encoding/json"

	aisvc "donorcrm-backend/internal/application/ai"
	"donorcrm-backend/internal/pkg/apperrors"
	"donorcrm-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *aisvc.Service
}

// Register mounts the AI routes; limit, when set, runs before each of them.
func (h *Handlers) Register(api fiber.Router, limit fiber.Handler) {
	handlers := func(hs ...fiber.Handler) []fiber.Handler {
		if limit == nil {
			return hs
		}
		return append([]fiber.Handler{limit}, hs...)
	}
	api.Post("/ai/chat", handlers(h.Chat)...)
	api.Get("/ai/meeting-brief/:personId", handlers(h.MeetingBrief)...)
	api.Post("/ai/meeting-brief/:personId", handlers(h.MeetingBrief)...)
	api.Get("/ai/predictive-timing/:personId", handlers(h.PredictiveTiming)...)
	api.Post("/ai/predictive-timing/:personId", handlers(h.PredictiveTiming)...)
	api.Post("/meeting-notes/transcribe", handlers(h.Transcribe)...)
}

type chatBody struct {
	Message             string          `json:"message"`
	ConversationHistory []aisvc.Message `json:"conversationHistory"`
}

// POST /api/ai/chat: { message, conversationHistory? } → { response, timestamp }
func (h *Handlers) Chat(c *fiber.Ctx) error {
	var body chatBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return apperrors.NewValidation("Invalid request body")
	}
	reply, err := h.Service.Chat(c.UserContext(), body.Message, body.ConversationHistory)
	if err != nil {
		return err
	}
	return response.OK(c, reply)
}

// GET|POST /api/ai/meeting-brief/:personId
func (h *Handlers) MeetingBrief(c *fiber.Ctx) error {
	id, err := personID(c)
	if err != nil {
		return err
	}
	out, err := h.Service.MeetingBrief(c.UserContext(), id)
	if err != nil {
		return err
	}
	return response.OK(c, out)
}

// GET|POST /api/ai/predictive-timing/:personId
func (h *Handlers) PredictiveTiming(c *fiber.Ctx) error {
	id, err := personID(c)
	if err != nil {
		return err
	}
	out, err := h.Service.PredictiveTiming(c.UserContext(), id)
	if err != nil {
		return err
	}
	return response.OK(c, out)
}

// POST /api/meeting-notes/transcribe: multipart field "audio"
func (h *Handlers) Transcribe(c *fiber.Ctx) error {
	fh, err := c.FormFile("audio")
	if err != nil {
		return apperrors.NewValidation("No audio file provided")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	out, err := h.Service.Transcribe(c.UserContext(), fh.Filename, f)
	if err != nil {
		return err
	}
	return response.OK(c, out)
}

func personID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("personId"))
	if err != nil {
		return uuid.Nil, &apperrors.ValidationError{
			Message: "Invalid personId format",
			Details: map[string]string{"personId": "must be a UUID"},
		}
	}
	return id, nil
}
