package dashboard

import (
	"testing"
	"time"

	"donorcrm-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeHome_YTDExactSum(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	d := ComputeHome(HomeInput{
		Now: now,
		Gifts: []domain.Gift{
			{PersonID: a, Amount: dec("50000.00"), ReceivedAt: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)},
			{PersonID: b, Amount: dec("75000.00"), ReceivedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
			{PersonID: b, Amount: dec("999.99"), ReceivedAt: time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)},
		},
	})
	assert.Equal(t, "125000.00", d.YTDRaised.StringFixed(2))
	assert.True(t, dec("125000").Equal(d.YTDRaised))
	assert.Equal(t, 2, d.YTDGiftCount)
	assert.Equal(t, "62500.00", d.AvgGiftSize.StringFixed(2))
	assert.Equal(t, 1, d.DonorsLast30Days)
}

func TestComputeHome_AvgGiftSizeRoundedToCents(t *testing.T) {
	p := uuid.New()
	d := ComputeHome(HomeInput{
		Now: now,
		Gifts: []domain.Gift{
			{PersonID: p, Amount: dec("50.00"), ReceivedAt: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
			{PersonID: p, Amount: dec("25.00"), ReceivedAt: time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)},
			{PersonID: p, Amount: dec("25.00"), ReceivedAt: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
		},
	})
	assert.True(t, dec("100").Equal(d.YTDRaised))
	assert.True(t, dec("33.33").Equal(d.AvgGiftSize), d.AvgGiftSize.String())
}

func TestComputeHome_NoGifts(t *testing.T) {
	d := ComputeHome(HomeInput{Now: now})
	assert.True(t, d.YTDRaised.IsZero())
	assert.True(t, d.AvgGiftSize.IsZero())
	assert.Equal(t, 0, d.YTDGiftCount)
	assert.NotNil(t, d.NextActions)
	assert.Len(t, d.PipelineByStage, len(domain.Stages))
}

func TestComputeHome_PipelineAndForecast(t *testing.T) {
	inWindow := now.Add(30 * 24 * time.Hour)
	outside := now.Add(120 * 24 * time.Hour)
	past := now.Add(-24 * time.Hour)
	donor := uuid.New()
	d := ComputeHome(HomeInput{
		Now: now,
		Opportunities: []domain.Opportunity{
			{PersonID: donor, Stage: domain.StageAsk, AskAmount: dec("100000"), Probability: 50, CloseDate: &inWindow},
			{PersonID: uuid.New(), Stage: domain.StageProspect, AskAmount: dec("20000"), Probability: 10, CloseDate: &outside},
			{PersonID: uuid.New(), Stage: domain.StageRenewal, AskAmount: dec("5000"), Probability: 100, CloseDate: &past},
			{PersonID: uuid.New(), Stage: domain.StageSteward, AskAmount: dec("1000"), Probability: 80},
		},
		DonorNames: map[uuid.UUID]string{donor: "Ada Lovelace"},
	})
	assert.Equal(t, "126000.00", d.PipelineTotal.StringFixed(2))
	assert.Equal(t, "57800.00", d.WeightedPipeline.StringFixed(2))
	assert.Equal(t, "50000.00", d.Forecast90Days.StringFixed(2))

	require.Len(t, d.NextActions, 4)
	assert.Equal(t, "Prepare and deliver the $100000.00 ask to Ada Lovelace", d.NextActions[0].Action)
	assert.Contains(t, d.NextActions[1].Action, "this donor")

	ask := d.PipelineByStage[2]
	assert.Equal(t, domain.StageAsk, ask.Stage)
	assert.Equal(t, 1, ask.Count)
}

func TestComputeHome_Tasks(t *testing.T) {
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)
	d := ComputeHome(HomeInput{
		Now: now,
		OpenTasks: []domain.Task{
			{Title: "a", DueDate: &yesterday},
			{Title: "b", DueDate: &tomorrow},
			{Title: "c"},
			{Title: "done", DueDate: &yesterday, Completed: 1},
		},
	})
	assert.Equal(t, 3, d.OpenTasks)
	assert.Equal(t, 1, d.OverdueTasks)
}

func TestNextAction_EveryStage(t *testing.T) {
	for _, s := range domain.Stages {
		o := &domain.Opportunity{Stage: s, AskAmount: dec("10")}
		assert.NotEmpty(t, nextAction(o, "Grace"))
		assert.Contains(t, nextAction(o, "Grace"), "Grace")
	}
	assert.Equal(t, "Review the opportunity with Grace", nextAction(&domain.Opportunity{Stage: "lost"}, "Grace"))
}
