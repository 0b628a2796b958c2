// Package export builds the spreadsheet downloads offered by the asset,
// employee and maintenance views.
package export

import (
	"fmt"
	"time"

	"github.com/hward/assetdesk/internal/models"
	"github.com/xuri/excelize/v2"
)

// cell converts a 1-based row index into an A-column coordinate.
func cell(row int) string {
	return fmt.Sprintf("A%d", row)
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// Assets builds a workbook listing every asset.
func Assets(assets []models.Asset) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Assets"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("export: rename sheet: %w", err)
	}

	header := []interface{}{"Name", "Asset Tag", "Category", "Brand", "Model", "Serial Number", "Location", "Status", "Assigned To", "Purchase Date", "Warranty Expiry", "Remarks"}
	if err := f.SetSheetRow(sheet, cell(1), &header); err != nil {
		return nil, fmt.Errorf("export: assets header: %w", err)
	}

	for i, a := range assets {
		assignee := ""
		if a.AssignedTo != nil {
			assignee = a.AssignedTo.Name
		}
		row := []interface{}{a.Name, a.AssetTag, a.Category, a.Brand, a.Model, a.SerialNumber, a.Location, a.Status, assignee, fmtDate(a.PurchaseDate), fmtDate(a.WarrantyExpiry), a.Remarks}
		if err := f.SetSheetRow(sheet, cell(i+2), &row); err != nil {
			return nil, fmt.Errorf("export: asset row %d: %w", i, err)
		}
	}
	return f, nil
}

// Employees builds a workbook listing every employee and how many assets
// they currently hold.
func Employees(employees []models.Employee) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Employees"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("export: rename sheet: %w", err)
	}

	header := []interface{}{"Name", "Email", "Department", "Assets Held"}
	if err := f.SetSheetRow(sheet, cell(1), &header); err != nil {
		return nil, fmt.Errorf("export: employees header: %w", err)
	}

	for i, e := range employees {
		row := []interface{}{e.Name, e.Email, e.Department, len(e.Assets)}
		if err := f.SetSheetRow(sheet, cell(i+2), &row); err != nil {
			return nil, fmt.Errorf("export: employee row %d: %w", i, err)
		}
	}
	return f, nil
}

// Maintenance builds a workbook for the maintenance report view.
func Maintenance(reminders []models.MaintenanceReminder) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Maintenance"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("export: rename sheet: %w", err)
	}

	header := []interface{}{"Asset", "Employee", "Reminder Date", "Returned", "Returned At", "Notes"}
	if err := f.SetSheetRow(sheet, cell(1), &header); err != nil {
		return nil, fmt.Errorf("export: maintenance header: %w", err)
	}

	for i, r := range reminders {
		returned := "no"
		if r.Returned {
			returned = "yes"
		}
		row := []interface{}{r.Asset.Name, r.Employee.Name, r.ReminderDate.Format("2006-01-02"), returned, fmtDate(r.ReturnedAt), r.Notes}
		if err := f.SetSheetRow(sheet, cell(i+2), &row); err != nil {
			return nil, fmt.Errorf("export: maintenance row %d: %w", i, err)
		}
	}
	return f, nil
}
