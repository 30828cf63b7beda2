package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Structured gift types. Empty means the classifier falls back to amount and designation.
const (
	GiftTypeMajor     = "major"
	GiftTypeRecurring = "recurring"
	GiftTypePlanned   = "planned"
	GiftTypeOther     = "other"
)

// Recurring cadences.
const (
	CadenceWeekly    = "weekly"
	CadenceMonthly   = "monthly"
	CadenceQuarterly = "quarterly"
	CadenceAnnual    = "annual"
)

// DefaultCurrency is applied when a gift is created without one.
const DefaultCurrency = "USD"

// Gift is a single received donation owned by one Person.
type Gift struct {
	Base
	PersonID         uuid.UUID       `gorm:"column:person_id;type:uuid;not null;index" json:"personId" validate:"required"`
	Amount           decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	Currency         string          `gorm:"column:currency;type:varchar(3);not null;default:'USD'" json:"currency" validate:"len=3"`
	ReceivedAt       time.Time       `gorm:"column:received_at;not null;index" json:"receivedAt" validate:"required"`
	CampaignID       *uuid.UUID      `gorm:"column:campaign_id;type:uuid;index" json:"campaignId"`
	Designation      string          `gorm:"column:designation" json:"designation"`
	PaymentMethod    string          `gorm:"column:payment_method" json:"paymentMethod"`
	GiftType         string          `gorm:"column:gift_type;type:varchar(20)" json:"giftType" validate:"omitempty,oneof=major recurring planned other"`
	RecurringCadence string          `gorm:"column:recurring_cadence;type:varchar(20)" json:"recurringCadence" validate:"omitempty,oneof=weekly monthly quarterly annual"`
	SourceSystem     string          `gorm:"column:source_system" json:"sourceSystem"`
	SourceRecordID   string          `gorm:"column:source_record_id" json:"sourceRecordId"`
	Person           *Person         `gorm:"foreignKey:PersonID" json:"-"`
	Campaign         *Campaign       `gorm:"foreignKey:CampaignID" json:"-"`
}

func (Gift) TableName() string {
	return "gifts"
}

func (g *Gift) ApplyDefaults() {
	if g.Currency == "" {
		g.Currency = DefaultCurrency
	}
}

func (g *Gift) Validate() error {
	if !g.Amount.IsPositive() {
		return invalid("amount", "must be greater than 0")
	}
	return checkMoney("amount", g.Amount, maxMoney12)
}

// Campaign statuses.
const (
	CampaignPlanned   = "planned"
	CampaignActive    = "active"
	CampaignCompleted = "completed"
)

// Campaign is a fundraising appeal gifts can be attributed to.
type Campaign struct {
	Base
	Name        string          `gorm:"column:name;not null" json:"name" validate:"required"`
	Type        string          `gorm:"column:type" json:"type"`
	Status      string          `gorm:"column:status;type:varchar(20);not null;default:'planned'" json:"status" validate:"oneof=planned active completed"`
	Goal        decimal.Decimal `gorm:"column:goal;type:numeric(14,2);not null;default:0" json:"goal"`
	StartDate   *time.Time      `gorm:"column:start_date" json:"startDate"`
	EndDate     *time.Time      `gorm:"column:end_date" json:"endDate"`
	Description string          `gorm:"column:description" json:"description"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

func (c *Campaign) ApplyDefaults() {
	if c.Status == "" {
		c.Status = CampaignPlanned
	}
}

func (c *Campaign) Validate() error {
	if c.Goal.IsNegative() {
		return invalid("goal", "must not be negative")
	}
	if err := checkMoney("goal", c.Goal, maxMoney14); err != nil {
		return err
	}
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
		return invalid("endDate", "must not be before startDate")
	}
	return nil
}
