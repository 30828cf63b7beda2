package gifts

import (
	"bytes"
	"fmt"

	"donorcrm-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Gifts"

// ExportHeader is the first row of the gift workbook.
var ExportHeader = []string{
	"Gift ID",
	"Received At",
	"Donor",
	"Amount",
	"Currency",
	"Designation",
	"Payment Method",
	"Gift Type",
	"Recurring Cadence",
	"Category",
	"Classification Rule",
	"Monthly Equivalent",
}

var exportColumnWidths = []float64{38, 20, 28, 14, 10, 30, 16, 12, 18, 12, 20, 18}

// BuildWorkbook renders gifts, with their classification, as an .xlsx file.
// donors maps person ids to display names; unknown ids are written as the raw id.
func BuildWorkbook(gifts []domain.Gift, donors map[uuid.UUID]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}

	header := make([]interface{}, len(ExportHeader))
	for i, h := range ExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(ExportHeader))
	if err := f.SetCellStyle(exportSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}
	for i, w := range exportColumnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(exportSheet, col, col, w); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i := range gifts {
		g := &gifts[i]
		cl := Classify(g)
		donor, ok := donors[g.PersonID]
		if !ok {
			donor = g.PersonID.String()
		}
		monthly := ""
		if cl.Category == CategoryRecurring {
			monthly = MonthlyEquivalent(g).StringFixed(2)
		}
		row := []interface{}{
			g.ID.String(),
			g.ReceivedAt.UTC().Format("2006-01-02 15:04"),
			donor,
			g.Amount.InexactFloat64(),
			g.Currency,
			g.Designation,
			g.PaymentMethod,
			g.GiftType,
			g.RecurringCadence,
			cl.Category,
			cl.Rule,
			monthly,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	if len(gifts) > 0 {
		last := fmt.Sprintf("D%d", len(gifts)+1)
		if err := f.SetCellStyle(exportSheet, "D2", last, moneyStyle); err != nil {
			return nil, fmt.Errorf("failed to set amount style: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
