package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pipeline stages in order. Any stage may be set from any other; there is no transition guard.
const (
	StageProspect    = "prospect"
	StageCultivation = "cultivation"
	StageAsk         = "ask"
	StageSteward     = "steward"
	StageRenewal     = "renewal"
)

// Stages lists the pipeline stages in order.
var Stages = []string{StageProspect, StageCultivation, StageAsk, StageSteward, StageRenewal}

// Opportunity is a pipeline entry toward a future gift.
type Opportunity struct {
	Base
	PersonID    uuid.UUID       `gorm:"column:person_id;type:uuid;not null;index" json:"personId" validate:"required"`
	OwnerID     uuid.UUID       `gorm:"column:owner_id;type:uuid;not null;index" json:"ownerId" validate:"required"`
	Name        string          `gorm:"column:name" json:"name"`
	Stage       string          `gorm:"column:stage;type:varchar(20);not null;default:'prospect';index" json:"stage" validate:"oneof=prospect cultivation ask steward renewal"`
	AskAmount   decimal.Decimal `gorm:"column:ask_amount;type:numeric(12,2);not null;default:0" json:"askAmount"`
	Probability int             `gorm:"column:probability;not null;default:0" json:"probability" validate:"min=0,max=100"`
	CloseDate   *time.Time      `gorm:"column:close_date" json:"closeDate"`
	Notes       string          `gorm:"column:notes" json:"notes"`
	Person      *Person         `gorm:"foreignKey:PersonID" json:"-"`
	Owner       *User           `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Opportunity) TableName() string {
	return "opportunities"
}

func (o *Opportunity) ApplyDefaults() {
	if o.Stage == "" {
		o.Stage = StageProspect
	}
}

func (o *Opportunity) Validate() error {
	if o.AskAmount.IsNegative() {
		return invalid("askAmount", "must not be negative")
	}
	return checkMoney("askAmount", o.AskAmount, maxMoney12)
}

// Weighted returns askAmount × probability / 100.
func (o *Opportunity) Weighted() decimal.Decimal {
	return o.AskAmount.Mul(decimal.NewFromInt(int64(o.Probability))).Div(decimal.NewFromInt(100))
}
