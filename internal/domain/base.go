package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the generated primary key and timestamps shared by every table.
type Base struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// Record is implemented by every model through its embedded Base.
type Record interface {
	BaseFields() *Base
}

func (b *Base) BaseFields() *Base {
	return b
}

// BeforeCreate: never insert zero UUID for primary key; generate random when not set.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Defaulter is implemented by models that fill optional fields before validation on create.
type Defaulter interface {
	ApplyDefaults()
}

// All returns every model for AutoMigrate, parents before children.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Household{},
		&Portfolio{},
		&Person{},
		&Campaign{},
		&Gift{},
		&Opportunity{},
		&Interaction{},
		&Task{},
		&Integration{},
		&IntegrationSyncRun{},
		&DataQualityIssue{},
		&Workflow{},
		&WorkflowBlock{},
		&CalendarEvent{},
	}
}
