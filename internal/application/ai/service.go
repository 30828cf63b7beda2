package ai

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"donorcrm-backend/internal/domain"
	"donorcrm-backend/internal/infrastructure/repository"
	"donorcrm-backend/internal/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotConfigured is returned when the OpenAI base URL or API key is missing.
var ErrNotConfigured = &apperrors.UnavailableError{
	Message: "OpenAI integration is not configured. Set AI_INTEGRATIONS_OPENAI_BASE_URL and AI_INTEGRATIONS_OPENAI_API_KEY.",
}

// MaxHistoryTurns bounds the conversation history sent upstream.
const MaxHistoryTurns = 20

const (
	recentGiftLimit        = 10
	recentInteractionLimit = 10
)

const chatSystemPrompt = "You are a fundraising assistant inside a donor CRM. " +
	"Answer questions about donors, gifts, pipeline and stewardship concisely and practically."

// Service wraps the LLM client. A nil Client means the integration is not configured.
type Service struct {
	Client Client
	DB     *gorm.DB
}

// ChatReply is the answer to one chat message.
type ChatReply struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// Chat sends message, preceded by up to MaxHistoryTurns prior turns, and returns the reply.
func (s *Service) Chat(ctx context.Context, message string, history []Message) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.NewValidation("Message is required")
	}
	if s.Client == nil {
		return nil, ErrNotConfigured
	}

	msgs := []Message{{Role: RoleSystem, Content: chatSystemPrompt}}
	msgs = append(msgs, trimHistory(history)...)
	msgs = append(msgs, Message{Role: RoleUser, Content: message})

	text, err := s.Client.Complete(ctx, msgs)
	if err != nil {
		return nil, err
	}
	return &ChatReply{Response: text, Timestamp: time.Now().UTC()}, nil
}

// trimHistory keeps the most recent user/assistant turns with content.
func trimHistory(history []Message) []Message {
	kept := make([]Message, 0, len(history))
	for _, m := range history {
		if (m.Role != RoleUser && m.Role != RoleAssistant) || strings.TrimSpace(m.Content) == "" {
			continue
		}
		kept = append(kept, m)
	}
	if len(kept) > MaxHistoryTurns {
		kept = kept[len(kept)-MaxHistoryTurns:]
	}
	return kept
}

// DonorInsight is a generated text about one donor.
type DonorInsight struct {
	PersonID  uuid.UUID `json:"personId"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type donorContext struct {
	person        *domain.Person
	gifts         []domain.Gift
	interactions  []domain.Interaction
	opportunities []domain.Opportunity
}

func (s *Service) loadDonor(ctx context.Context, personID uuid.UUID) (*donorContext, error) {
	person, err := repository.New[domain.Person](s.DB, "Person").Get(ctx, personID)
	if err != nil {
		return nil, err
	}
	byPerson := map[string]interface{}{"person_id": personID}
	gifts, err := repository.New[domain.Gift](s.DB, "Gift").Find(ctx, repository.Query{
		Filters: byPerson, Order: "received_at DESC", Limit: recentGiftLimit,
	})
	if err != nil {
		return nil, err
	}
	interactions, err := repository.New[domain.Interaction](s.DB, "Interaction").Find(ctx, repository.Query{
		Filters: byPerson, Order: "occurred_at DESC", Limit: recentInteractionLimit,
	})
	if err != nil {
		return nil, err
	}
	opps, err := repository.New[domain.Opportunity](s.DB, "Opportunity").Find(ctx, repository.Query{
		Filters: byPerson, Order: "created_at DESC",
	})
	if err != nil {
		return nil, err
	}
	return &donorContext{person: person, gifts: gifts, interactions: interactions, opportunities: opps}, nil
}

func (d *donorContext) describe() string {
	var b strings.Builder
	p := d.person
	fmt.Fprintf(&b, "Donor: %s\n", p.FullName())
	fmt.Fprintf(&b, "Lifetime giving: $%s\n", p.LifetimeGiving.StringFixed(2))
	fmt.Fprintf(&b, "Scores: capacity %d, engagement %d, affinity %d\n", p.CapacityScore, p.EngagementScore, p.AffinityScore)
	if p.WealthBand != "" {
		fmt.Fprintf(&b, "Wealth band: %s\n", p.WealthBand)
	}
	b.WriteString("Recent gifts:\n")
	if len(d.gifts) == 0 {
		b.WriteString("- none\n")
	}
	for _, g := range d.gifts {
		fmt.Fprintf(&b, "- %s $%s %s\n", g.ReceivedAt.Format("2006-01-02"), g.Amount.StringFixed(2), g.Designation)
	}
	b.WriteString("Recent interactions:\n")
	if len(d.interactions) == 0 {
		b.WriteString("- none\n")
	}
	for _, in := range d.interactions {
		fmt.Fprintf(&b, "- %s %s: %s\n", in.OccurredAt.Format("2006-01-02"), in.Type, in.Subject)
	}
	b.WriteString("Open opportunities:\n")
	if len(d.opportunities) == 0 {
		b.WriteString("- none\n")
	}
	for _, o := range d.opportunities {
		fmt.Fprintf(&b, "- %s, stage %s, ask $%s at %d%%\n", o.Name, o.Stage, o.AskAmount.StringFixed(2), o.Probability)
	}
	return b.String()
}

func (s *Service) insight(ctx context.Context, personID uuid.UUID, instruction string) (*DonorInsight, error) {
	if s.Client == nil {
		return nil, ErrNotConfigured
	}
	donor, err := s.loadDonor(ctx, personID)
	if err != nil {
		return nil, err
	}
	text, err := s.Client.Complete(ctx, []Message{
		{Role: RoleSystem, Content: chatSystemPrompt},
		{Role: RoleUser, Content: instruction + "\n\n" + donor.describe()},
	})
	if err != nil {
		return nil, err
	}
	return &DonorInsight{PersonID: personID, Content: text, Timestamp: time.Now().UTC()}, nil
}

// MeetingBrief prepares a gift officer for a meeting with the donor.
func (s *Service) MeetingBrief(ctx context.Context, personID uuid.UUID) (*DonorInsight, error) {
	return s.insight(ctx, personID,
		"Write a one-page meeting brief: relationship summary, giving history highlights, talking points and a suggested next step.")
}

// PredictiveTiming suggests when and how to make the next ask.
func (s *Service) PredictiveTiming(ctx context.Context, personID uuid.UUID) (*DonorInsight, error) {
	return s.insight(ctx, personID,
		"Based on this giving and engagement pattern, recommend the best timing and amount for the next ask and explain why.")
}

// Transcription is the text of an uploaded recording.
type Transcription struct {
	Text string `json:"text"`
}

// Transcribe converts meeting audio to text.
func (s *Service) Transcribe(ctx context.Context, filename string, audio io.Reader) (*Transcription, error) {
	if s.Client == nil {
		return nil, ErrNotConfigured
	}
	text, err := s.Client.Transcribe(ctx, filename, audio)
	if err != nil {
		return nil, err
	}
	return &Transcription{Text: text}, nil
}
