package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Household groups donors living at one address.
type Household struct {
	Base
	Name       string `gorm:"column:name;not null" json:"name" validate:"required"`
	Address    string `gorm:"column:address" json:"address"`
	City       string `gorm:"column:city" json:"city"`
	State      string `gorm:"column:state" json:"state"`
	PostalCode string `gorm:"column:postal_code" json:"postalCode"`
	Country    string `gorm:"column:country" json:"country"`
}

func (Household) TableName() string {
	return "households"
}

// Portfolio is the set of donors a gift officer manages.
type Portfolio struct {
	Base
	Name        string    `gorm:"column:name;not null" json:"name" validate:"required"`
	OwnerID     uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index" json:"ownerId" validate:"required"`
	Description string    `gorm:"column:description" json:"description"`
	Owner       *User     `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Portfolio) TableName() string {
	return "portfolios"
}

// Person is a donor or prospect. Scores are maintained by external scoring jobs.
type Person struct {
	Base
	FirstName       string          `gorm:"column:first_name;not null" json:"firstName" validate:"required"`
	LastName        string          `gorm:"column:last_name;not null" json:"lastName" validate:"required"`
	Email           string          `gorm:"column:email;index" json:"email" validate:"omitempty,email"`
	Phone           string          `gorm:"column:phone" json:"phone"`
	HouseholdID     *uuid.UUID      `gorm:"column:household_id;type:uuid;index" json:"householdId"`
	PortfolioID     *uuid.UUID      `gorm:"column:portfolio_id;type:uuid;index" json:"portfolioId"`
	CapacityScore   int             `gorm:"column:capacity_score;not null;default:0" json:"capacityScore" validate:"min=0,max=100"`
	EngagementScore int             `gorm:"column:engagement_score;not null;default:0" json:"engagementScore" validate:"min=0,max=100"`
	AffinityScore   int             `gorm:"column:affinity_score;not null;default:0" json:"affinityScore" validate:"min=0,max=100"`
	WealthBand      string          `gorm:"column:wealth_band" json:"wealthBand"`
	LifetimeGiving  decimal.Decimal `gorm:"column:lifetime_giving;type:numeric(14,2);not null;default:0" json:"lifetimeGiving"`
	LastGiftDate    *time.Time      `gorm:"column:last_gift_date" json:"lastGiftDate"`
	SourceSystem    string          `gorm:"column:source_system" json:"sourceSystem"`
	SourceRecordID  string          `gorm:"column:source_record_id" json:"sourceRecordId"`
	Household       *Household      `gorm:"foreignKey:HouseholdID" json:"-"`
	Portfolio       *Portfolio      `gorm:"foreignKey:PortfolioID" json:"-"`
}

func (Person) TableName() string {
	return "persons"
}

// FullName joins first and last name.
func (p *Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

func (p *Person) Validate() error {
	if p.LifetimeGiving.IsNegative() {
		return invalid("lifetimeGiving", "must not be negative")
	}
	return checkMoney("lifetimeGiving", p.LifetimeGiving, maxMoney14)
}
