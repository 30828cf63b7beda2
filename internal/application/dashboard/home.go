package dashboard

import (
	"fmt"
	"time"

	"donorcrm-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	trailingDonorWindow = 30 * 24 * time.Hour
	forecastWindow      = 90 * 24 * time.Hour
)

// StageSummary is the size of one pipeline stage.
type StageSummary struct {
	Stage    string          `json:"stage"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
	Weighted decimal.Decimal `json:"weighted"`
}

// NextAction is the suggested follow-up for one opportunity.
type NextAction struct {
	OpportunityID uuid.UUID `json:"opportunityId"`
	PersonID      uuid.UUID `json:"personId"`
	Stage         string    `json:"stage"`
	Action        string    `json:"action"`
}

// HomeDashboard is the executive rollup shown on the landing page.
type HomeDashboard struct {
	YTDRaised        decimal.Decimal `json:"ytdRaised"`
	YTDGiftCount     int             `json:"ytdGiftCount"`
	AvgGiftSize      decimal.Decimal `json:"avgGiftSize"`
	PipelineTotal    decimal.Decimal `json:"pipelineTotal"`
	WeightedPipeline decimal.Decimal `json:"weightedPipeline"`
	DonorsLast30Days int             `json:"donorsLast30Days"`
	Forecast90Days   decimal.Decimal `json:"forecast90Days"`
	PipelineByStage  []StageSummary  `json:"pipelineByStage"`
	OpenTasks        int             `json:"openTasks"`
	OverdueTasks     int             `json:"overdueTasks"`
	TotalDonors      int64           `json:"totalDonors"`
	NextActions      []NextAction    `json:"nextActions"`
	GeneratedAt      time.Time       `json:"generatedAt"`
}

// HomeInput is everything the home rollup reads.
type HomeInput struct {
	Now           time.Time
	Gifts         []domain.Gift // at least every gift since Jan 1 and in the trailing 30 days
	Opportunities []domain.Opportunity
	OpenTasks     []domain.Task
	DonorNames    map[uuid.UUID]string
	TotalDonors   int64
}

// ComputeHome does the dashboard arithmetic. Money sums are exact.
func ComputeHome(in HomeInput) *HomeDashboard {
	now := in.Now
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	trailingStart := now.Add(-trailingDonorWindow)
	forecastEnd := now.Add(forecastWindow)

	d := &HomeDashboard{
		YTDRaised:        decimal.Zero,
		AvgGiftSize:      decimal.Zero,
		PipelineTotal:    decimal.Zero,
		WeightedPipeline: decimal.Zero,
		Forecast90Days:   decimal.Zero,
		PipelineByStage:  make([]StageSummary, len(domain.Stages)),
		NextActions:      make([]NextAction, 0, len(in.Opportunities)),
		TotalDonors:      in.TotalDonors,
		GeneratedAt:      now,
	}

	recentDonors := make(map[uuid.UUID]struct{})
	for i := range in.Gifts {
		g := &in.Gifts[i]
		if !g.ReceivedAt.Before(yearStart) {
			d.YTDRaised = d.YTDRaised.Add(g.Amount)
			d.YTDGiftCount++
		}
		if !g.ReceivedAt.Before(trailingStart) && !g.ReceivedAt.After(now) {
			recentDonors[g.PersonID] = struct{}{}
		}
	}
	d.DonorsLast30Days = len(recentDonors)
	if d.YTDGiftCount > 0 {
		// Rounded to cents like every other money figure.
		d.AvgGiftSize = d.YTDRaised.Div(decimal.NewFromInt(int64(d.YTDGiftCount))).Round(2)
	}

	stageIdx := make(map[string]int, len(domain.Stages))
	for i, s := range domain.Stages {
		stageIdx[s] = i
		d.PipelineByStage[i] = StageSummary{Stage: s, Total: decimal.Zero, Weighted: decimal.Zero}
	}
	for i := range in.Opportunities {
		o := &in.Opportunities[i]
		w := o.Weighted()
		d.PipelineTotal = d.PipelineTotal.Add(o.AskAmount)
		d.WeightedPipeline = d.WeightedPipeline.Add(w)
		if o.CloseDate != nil && !o.CloseDate.Before(now) && !o.CloseDate.After(forecastEnd) {
			d.Forecast90Days = d.Forecast90Days.Add(w)
		}
		if idx, ok := stageIdx[o.Stage]; ok {
			s := &d.PipelineByStage[idx]
			s.Count++
			s.Total = s.Total.Add(o.AskAmount)
			s.Weighted = s.Weighted.Add(w)
		}
		d.NextActions = append(d.NextActions, NextAction{
			OpportunityID: o.ID,
			PersonID:      o.PersonID,
			Stage:         o.Stage,
			Action:        nextAction(o, in.DonorNames[o.PersonID]),
		})
	}

	for i := range in.OpenTasks {
		t := &in.OpenTasks[i]
		if t.Completed != 0 {
			continue
		}
		d.OpenTasks++
		if t.IsOverdue(now) {
			d.OverdueTasks++
		}
	}
	return d
}

// nextAction renders the fixed per-stage suggestion.
func nextAction(o *domain.Opportunity, donor string) string {
	if donor == "" {
		donor = "this donor"
	}
	switch o.Stage {
	case domain.StageProspect:
		return fmt.Sprintf("Research %s's giving capacity and schedule a discovery call", donor)
	case domain.StageCultivation:
		return fmt.Sprintf("Invite %s to a site visit or cultivation event", donor)
	case domain.StageAsk:
		return fmt.Sprintf("Prepare and deliver the $%s ask to %s", o.AskAmount.StringFixed(2), donor)
	case domain.StageSteward:
		return fmt.Sprintf("Send %s an impact report and a personal thank-you", donor)
	case domain.StageRenewal:
		return fmt.Sprintf("Schedule a renewal conversation with %s", donor)
	}
	return fmt.Sprintf("Review the opportunity with %s", donor)
}
