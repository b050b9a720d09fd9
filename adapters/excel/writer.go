package excel

import (
	"fmt"
	"io"

	"launchdash/domain/launch"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Launches"

var exportHeaders = []interface{}{
	"Flight Number", "Launch Site", "Payload Mass (kg)", "Booster Version", "Booster Version Category", "class",
}

// WriteRecords writes records as an XLSX workbook using the input column names
func WriteRecords(w io.Writer, records []launch.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.FlightNumber, r.Site, r.PayloadMassKg, r.BoosterVersion, r.BoosterCategory, int(r.Outcome)}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
