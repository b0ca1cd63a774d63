package saveresults

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"outreach-campaigns/internal/models"
)

const exportSheet = "Results"

var exportHeader = []interface{}{"Business", "Email", "Status", "Message ID", "Error"}

// ExportXLSX writes report to a spreadsheet with one row per entry.
func ExportXLSX(report models.CampaignReport, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetCellValue(exportSheet, "A1", "Campaign run"); err != nil {
		return err
	}
	if err := f.SetCellValue(exportSheet, "B1", report.Timestamp); err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, "A3", &exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, e := range report.Results {
		status := "sent"
		if !e.Success {
			status = "failed"
		}
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return err
		}
		row := []interface{}{e.BusinessName, e.BusinessEmail, status, e.MessageID, e.Error}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
