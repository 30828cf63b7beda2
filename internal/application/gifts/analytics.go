package gifts

import (
	"math"
	"time"

	"donorcrm-backend/internal/domain"
	"donorcrm-backend/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RetentionStats compares this calendar year's donors with last year's.
type RetentionStats struct {
	CurrentYearDonors int     `json:"currentYearDonors"`
	PriorYearDonors   int     `json:"priorYearDonors"`
	Retained          int     `json:"retained"`
	Churned           int     `json:"churned"`
	RetentionRate     float64 `json:"retentionRate"`
	ChurnRate         float64 `json:"churnRate"`
}

// Retention computes donor retention and churn percentages. Both rates are 0 when nobody gave last year.
func Retention(gifts []domain.Gift, now time.Time) RetentionStats {
	year := now.Year()
	current := make(map[uuid.UUID]struct{})
	prior := make(map[uuid.UUID]struct{})
	for i := range gifts {
		switch gifts[i].ReceivedAt.In(now.Location()).Year() {
		case year:
			current[gifts[i].PersonID] = struct{}{}
		case year - 1:
			prior[gifts[i].PersonID] = struct{}{}
		}
	}

	st := RetentionStats{CurrentYearDonors: len(current), PriorYearDonors: len(prior)}
	for id := range prior {
		if _, ok := current[id]; ok {
			st.Retained++
		} else {
			st.Churned++
		}
	}
	if st.PriorYearDonors > 0 {
		st.RetentionRate = percent(st.Retained, st.PriorYearDonors)
		st.ChurnRate = percent(st.Churned, st.PriorYearDonors)
	}
	return st
}

func percent(n, d int) float64 {
	return math.Round(float64(n)/float64(d)*100*100) / 100
}

// CategorySummary is the count and total amount of one category.
type CategorySummary struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// ClassifiedGift is a gift with its classification attached.
type ClassifiedGift struct {
	domain.Gift
	Category          string          `json:"category"`
	Rule              string          `json:"classificationRule"`
	MonthlyEquivalent decimal.Decimal `json:"monthlyEquivalent"`
}

// Analytics is the gift analytics report.
type Analytics struct {
	Categories              []CategorySummary `json:"categories"`
	Gifts                   []ClassifiedGift  `json:"gifts"`
	MonthlyRecurringRevenue decimal.Decimal   `json:"monthlyRecurringRevenue"`
	Retention               RetentionStats    `json:"retention"`
}

// Analyze classifies every gift. category, when set, filters the returned gift list only;
// summaries, recurring revenue and retention always cover the full set.
func Analyze(gifts []domain.Gift, category string, now time.Time) (*Analytics, error) {
	if category != "" && !IsCategory(category) {
		return nil, &apperrors.ValidationError{
			Message: "Invalid category",
			Details: map[string]string{"category": "must be one of [major recurring planned other]"},
		}
	}

	byCat := make(map[string]*CategorySummary, len(Categories))
	out := &Analytics{
		Categories:              make([]CategorySummary, len(Categories)),
		Gifts:                   make([]ClassifiedGift, 0),
		MonthlyRecurringRevenue: decimal.Zero,
	}
	for i, c := range Categories {
		out.Categories[i] = CategorySummary{Category: c, Total: decimal.Zero}
		byCat[c] = &out.Categories[i]
	}

	for i := range gifts {
		g := &gifts[i]
		cl := Classify(g)
		sum := byCat[cl.Category]
		sum.Count++
		sum.Total = sum.Total.Add(g.Amount)

		var monthly decimal.Decimal
		if cl.Category == CategoryRecurring {
			monthly = MonthlyEquivalent(g)
			out.MonthlyRecurringRevenue = out.MonthlyRecurringRevenue.Add(monthly)
		}
		if category == "" || category == cl.Category {
			out.Gifts = append(out.Gifts, ClassifiedGift{Gift: *g, Category: cl.Category, Rule: cl.Rule, MonthlyEquivalent: monthly})
		}
	}
	out.Retention = Retention(gifts, now)
	return out, nil
}
