package gifts

import (
	"bytes"
	"context"
	"testing"
	"time"

	"donorcrm-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func TestServiceClockIsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, (&Service{}).now().Location())
}

func setupGiftsTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.All()...))
	return &Service{DB: db, Now: func() time.Time { return now }}, db
}

func TestService_AnalyticsAndExport(t *testing.T) {
	svc, db := setupGiftsTest(t)
	ctx := context.Background()

	person := &domain.Person{FirstName: "Ada", LastName: "Lovelace"}
	require.NoError(t, db.Create(person).Error)
	require.NoError(t, db.Create(&domain.Gift{
		PersonID: person.ID, Amount: decimal.RequireFromString("12000.00"), Currency: "USD", ReceivedAt: now,
	}).Error)
	require.NoError(t, db.Create(&domain.Gift{
		PersonID: person.ID, Amount: decimal.RequireFromString("1200.00"), Currency: "USD",
		ReceivedAt: now.AddDate(-1, 0, 0), RecurringCadence: domain.CadenceAnnual,
	}).Error)

	report, err := svc.Analytics(ctx, "")
	require.NoError(t, err)
	assert.Len(t, report.Gifts, 2)
	assert.Equal(t, "100.00", report.MonthlyRecurringRevenue.StringFixed(2))
	assert.Equal(t, 100.0, report.Retention.RetentionRate)

	b, err := svc.Export(ctx)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ExportHeader, rows[0])
	assert.Equal(t, "Ada Lovelace", rows[1][2])
	assert.Equal(t, CategoryMajor, rows[1][9])
	assert.Equal(t, CategoryRecurring, rows[2][9])
	assert.Equal(t, "100.00", rows[2][11])
}

func TestBuildWorkbook_Empty(t *testing.T) {
	b, err := BuildWorkbook(nil, nil)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{exportSheet}, f.GetSheetList())
	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
