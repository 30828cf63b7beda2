package gifts

import (
	"strings"

	"donorcrm-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// Categories a gift is classified into.
const (
	CategoryMajor     = domain.GiftTypeMajor
	CategoryRecurring = domain.GiftTypeRecurring
	CategoryPlanned   = domain.GiftTypePlanned
	CategoryOther     = domain.GiftTypeOther
)

// Categories in report order.
var Categories = []string{CategoryMajor, CategoryRecurring, CategoryPlanned, CategoryOther}

// Names of the rule that decided a classification.
const (
	RuleGiftType         = "giftType"
	RuleRecurringCadence = "recurringCadence"
	RuleAmountThreshold  = "amountThreshold"
	RuleDesignation      = "designationKeyword"
	RuleDefault          = "default"
)

// MajorGiftThreshold is the smallest amount treated as a major gift when nothing more specific applies.
var MajorGiftThreshold = decimal.NewFromInt(10000)

// Designation keywords per category, matched case-insensitively as substrings in this order.
var designationKeywords = []struct {
	category string
	words    []string
}{
	{CategoryMajor, []string{"major", "capital campaign", "endowment", "leadership"}},
	{CategoryRecurring, []string{"monthly", "recurring", "sustainer", "subscription"}},
	{CategoryPlanned, []string{"planned", "bequest", "estate", "legacy", "trust", "annuity"}},
}

// Classification is the category of a gift and the rule that produced it.
type Classification struct {
	Category string `json:"category"`
	Rule     string `json:"rule"`
}

type rule struct {
	name  string
	match func(g *domain.Gift) (string, bool)
}

// rules run in order; the first match wins.
var rules = []rule{
	{RuleGiftType, func(g *domain.Gift) (string, bool) {
		return g.GiftType, IsCategory(g.GiftType)
	}},
	{RuleRecurringCadence, func(g *domain.Gift) (string, bool) {
		return CategoryRecurring, g.RecurringCadence != ""
	}},
	{RuleAmountThreshold, func(g *domain.Gift) (string, bool) {
		return CategoryMajor, g.Amount.GreaterThanOrEqual(MajorGiftThreshold)
	}},
	{RuleDesignation, func(g *domain.Gift) (string, bool) {
		d := strings.ToLower(g.Designation)
		if d == "" {
			return "", false
		}
		for _, kw := range designationKeywords {
			for _, w := range kw.words {
				if strings.Contains(d, w) {
					return kw.category, true
				}
			}
		}
		return "", false
	}},
}

// Classify assigns g to exactly one category.
func Classify(g *domain.Gift) Classification {
	for _, r := range rules {
		if cat, ok := r.match(g); ok {
			return Classification{Category: cat, Rule: r.name}
		}
	}
	return Classification{Category: CategoryOther, Rule: RuleDefault}
}

// IsCategory reports whether s names a category.
func IsCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

var (
	weeksPerMonth = decimal.RequireFromString("4.33")
	three         = decimal.NewFromInt(3)
	twelve        = decimal.NewFromInt(12)
)

// MonthlyEquivalent normalizes a recurring gift to a monthly amount, rounded to cents.
// A gift without a cadence counts as monthly.
func MonthlyEquivalent(g *domain.Gift) decimal.Decimal {
	var m decimal.Decimal
	switch g.RecurringCadence {
	case domain.CadenceWeekly:
		m = g.Amount.Mul(weeksPerMonth)
	case domain.CadenceQuarterly:
		m = g.Amount.Div(three)
	case domain.CadenceAnnual:
		m = g.Amount.Div(twelve)
	default:
		m = g.Amount
	}
	return m.Round(2)
}
