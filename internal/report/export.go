package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"trip_ledger/internal/models"
)

// RecapSheet is the worksheet name of the recap workbook.
const RecapSheet = "Recap"

var recapHeaders = []string{"No", "Tanggal", "Nopol", "Driver", "Origin", "Destinasi", "UJ", "Harga", "Margin", "Status", "Status SJ"}

// WriteRecap writes records as an xlsx workbook: a header row, one row per trip
// and a totals row summing cost, price and the margin of confirmed trips.
func WriteRecap(w io.Writer, title string, records []models.TripRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RecapSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if title != "" {
		if err := f.SetDocProps(&excelize.DocProperties{Title: title, Creator: "trip_ledger"}); err != nil {
			return fmt.Errorf("set doc props: %w", err)
		}
	}

	// 1. Header
	for i, h := range recapHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(RecapSheet, cell, h)
	}
	styleHeader, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F46E5"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(recapHeaders))
	f.SetCellStyle(RecapSheet, "A1", lastCol+"1", styleHeader)

	styleLoss, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "#EF4444"}})
	if err != nil {
		return fmt.Errorf("loss style: %w", err)
	}

	// 2. Rows
	var totalCost, totalPrice, totalMargin int64
	row := 2
	for i, rec := range records {
		driver := ""
		if rec.Driver != nil {
			driver = *rec.Driver
		}
		values := []interface{}{
			i + 1, rec.Date.String(), rec.PlateNumber, driver, rec.Origin, rec.Destination,
			rec.Cost, rec.Price, rec.Margin(), rec.Status, rec.DeliveryStatus,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(RecapSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		if rec.Margin() < 0 {
			f.SetCellStyle(RecapSheet, fmt.Sprintf("I%d", row), fmt.Sprintf("I%d", row), styleLoss)
		}

		totalCost += rec.Cost
		totalPrice += rec.Price
		if rec.Status == models.StatusConfirmed {
			totalMargin += rec.Margin()
		}
		row++
	}

	// 3. Totals
	f.SetCellValue(RecapSheet, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(RecapSheet, fmt.Sprintf("G%d", row), totalCost)
	f.SetCellValue(RecapSheet, fmt.Sprintf("H%d", row), totalPrice)
	f.SetCellValue(RecapSheet, fmt.Sprintf("I%d", row), totalMargin)

	f.SetColWidth(RecapSheet, "A", "A", 5)
	f.SetColWidth(RecapSheet, "B", "C", 14)
	f.SetColWidth(RecapSheet, "D", "F", 20)
	f.SetColWidth(RecapSheet, "G", "I", 14)
	f.SetColWidth(RecapSheet, "J", "K", 14)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
