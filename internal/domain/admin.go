package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Integration statuses.
const (
	IntegrationConnected    = "connected"
	IntegrationDisconnected = "disconnected"
	IntegrationError        = "error"
)

// Integration is a connection to an external donor or payment system.
type Integration struct {
	Base
	Name         string         `gorm:"column:name;not null" json:"name" validate:"required"`
	Provider     string         `gorm:"column:provider;not null" json:"provider" validate:"required"`
	Status       string         `gorm:"column:status;type:varchar(20);not null;default:'disconnected'" json:"status" validate:"oneof=connected disconnected error"`
	Settings     datatypes.JSON `gorm:"column:settings;type:jsonb" json:"settings"`
	LastSyncedAt *time.Time     `gorm:"column:last_synced_at" json:"lastSyncedAt"`
}

func (Integration) TableName() string {
	return "integrations"
}

func (i *Integration) ApplyDefaults() {
	if i.Status == "" {
		i.Status = IntegrationDisconnected
	}
}

// Sync run statuses.
const (
	SyncRunning   = "running"
	SyncSucceeded = "succeeded"
	SyncFailed    = "failed"
)

// IntegrationSyncRun records one import pass of an Integration.
type IntegrationSyncRun struct {
	Base
	IntegrationID    uuid.UUID    `gorm:"column:integration_id;type:uuid;not null;index" json:"integrationId" validate:"required"`
	Status           string       `gorm:"column:status;type:varchar(20);not null;default:'running'" json:"status" validate:"oneof=running succeeded failed"`
	StartedAt        time.Time    `gorm:"column:started_at;not null" json:"startedAt"`
	FinishedAt       *time.Time   `gorm:"column:finished_at" json:"finishedAt"`
	RecordsProcessed int          `gorm:"column:records_processed;not null;default:0" json:"recordsProcessed" validate:"min=0"`
	ErrorMessage     string       `gorm:"column:error_message" json:"errorMessage"`
	Integration      *Integration `gorm:"foreignKey:IntegrationID" json:"-"`
}

func (IntegrationSyncRun) TableName() string {
	return "integration_sync_runs"
}

func (r *IntegrationSyncRun) ApplyDefaults() {
	if r.Status == "" {
		r.Status = SyncRunning
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now().UTC()
	}
}

// DataQualityIssue flags a suspect record found during import or review.
type DataQualityIssue struct {
	Base
	EntityType  string         `gorm:"column:entity_type;not null" json:"entityType" validate:"required"`
	EntityID    *uuid.UUID     `gorm:"column:entity_id;type:uuid;index" json:"entityId"`
	IssueType   string         `gorm:"column:issue_type;not null" json:"issueType" validate:"required"`
	Severity    string         `gorm:"column:severity;type:varchar(10);not null;default:'medium'" json:"severity" validate:"oneof=low medium high"`
	Description string         `gorm:"column:description" json:"description"`
	Details     datatypes.JSON `gorm:"column:details;type:jsonb" json:"details"`
	Resolved    bool           `gorm:"column:resolved;not null;default:false" json:"resolved"`
}

func (DataQualityIssue) TableName() string {
	return "data_quality_issues"
}

func (d *DataQualityIssue) ApplyDefaults() {
	if d.Severity == "" {
		d.Severity = PriorityMedium
	}
}

// Workflow statuses.
const (
	WorkflowDraft    = "draft"
	WorkflowActive   = "active"
	WorkflowArchived = "archived"
)

// Workflow is an ordered sequence of blocks (steps) staff can follow.
type Workflow struct {
	Base
	Name        string     `gorm:"column:name;not null" json:"name" validate:"required"`
	Description string     `gorm:"column:description" json:"description"`
	Status      string     `gorm:"column:status;type:varchar(20);not null;default:'draft'" json:"status" validate:"oneof=draft active archived"`
	OwnerID     *uuid.UUID `gorm:"column:owner_id;type:uuid;index" json:"ownerId"`
}

func (Workflow) TableName() string {
	return "workflows"
}

func (w *Workflow) ApplyDefaults() {
	if w.Status == "" {
		w.Status = WorkflowDraft
	}
}

// WorkflowBlock is one step of a Workflow.
type WorkflowBlock struct {
	Base
	WorkflowID uuid.UUID      `gorm:"column:workflow_id;type:uuid;not null;index" json:"workflowId" validate:"required"`
	Type       string         `gorm:"column:type;not null" json:"type" validate:"required"`
	Position   int            `gorm:"column:position;not null;default:0" json:"position" validate:"min=0"`
	Config     datatypes.JSON `gorm:"column:config;type:jsonb" json:"config"`
	Workflow   *Workflow      `gorm:"foreignKey:WorkflowID" json:"-"`
}

func (WorkflowBlock) TableName() string {
	return "workflow_blocks"
}
