package domain

import (
	"time"

	"github.com/google/uuid"
)

// Interaction types.
const (
	InteractionEmail   = "email"
	InteractionMeeting = "meeting"
	InteractionCall    = "call"
	InteractionEvent   = "event"
	InteractionLetter  = "letter"
	InteractionText    = "text"
	InteractionNote    = "note"
)

// Interaction is a timestamped touchpoint with a donor.
type Interaction struct {
	Base
	PersonID   uuid.UUID  `gorm:"column:person_id;type:uuid;not null;index" json:"personId" validate:"required"`
	OwnerID    *uuid.UUID `gorm:"column:owner_id;type:uuid;index" json:"ownerId"`
	Type       string     `gorm:"column:type;type:varchar(20);not null" json:"type" validate:"required,oneof=email meeting call event letter text note"`
	OccurredAt time.Time  `gorm:"column:occurred_at;not null;index" json:"occurredAt" validate:"required"`
	Subject    string     `gorm:"column:subject" json:"subject"`
	Notes      string     `gorm:"column:notes" json:"notes"`
	Person     *Person    `gorm:"foreignKey:PersonID" json:"-"`
}

func (Interaction) TableName() string {
	return "interactions"
}

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Task is a next-best-action item. Completed is stored as 0/1.
type Task struct {
	Base
	Title         string     `gorm:"column:title;not null" json:"title" validate:"required"`
	Description   string     `gorm:"column:description" json:"description"`
	PersonID      *uuid.UUID `gorm:"column:person_id;type:uuid;index" json:"personId"`
	OwnerID       *uuid.UUID `gorm:"column:owner_id;type:uuid;index" json:"ownerId"`
	OpportunityID *uuid.UUID `gorm:"column:opportunity_id;type:uuid;index" json:"opportunityId"`
	Priority      string     `gorm:"column:priority;type:varchar(10);not null;default:'medium'" json:"priority" validate:"oneof=low medium high urgent"`
	DueDate       *time.Time `gorm:"column:due_date;index" json:"dueDate"`
	Completed     int        `gorm:"column:completed;not null;default:0" json:"completed" validate:"oneof=0 1"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) ApplyDefaults() {
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
}

// IsOverdue reports an open task whose due date has passed.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Completed == 0 && t.DueDate != nil && t.DueDate.Before(now)
}

// CalendarEvent is a scheduled meeting or event, optionally tied to a donor.
type CalendarEvent struct {
	Base
	Title       string     `gorm:"column:title;not null" json:"title" validate:"required"`
	StartsAt    time.Time  `gorm:"column:starts_at;not null;index" json:"startsAt" validate:"required"`
	EndsAt      *time.Time `gorm:"column:ends_at" json:"endsAt"`
	PersonID    *uuid.UUID `gorm:"column:person_id;type:uuid;index" json:"personId"`
	OwnerID     *uuid.UUID `gorm:"column:owner_id;type:uuid;index" json:"ownerId"`
	Location    string     `gorm:"column:location" json:"location"`
	Description string     `gorm:"column:description" json:"description"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}

func (e *CalendarEvent) Validate() error {
	if e.EndsAt != nil && e.EndsAt.Before(e.StartsAt) {
		return invalid("endsAt", "must not be before startsAt")
	}
	return nil
}
