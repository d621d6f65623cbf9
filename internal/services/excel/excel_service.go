package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sndservices/snd-crm-backend/internal/database/repository"

	"github.com/xuri/excelize/v2"
)

// Service handles Excel export of CRM data
type Service struct {
	clientRepo *repository.ClientRepository
	branchRepo *repository.BranchRepository
	exportsDir string
}

// NewExcelService creates a new Excel service instance
func NewExcelService(clientRepo *repository.ClientRepository, branchRepo *repository.BranchRepository, exportsDir string) *Service {
	if _, err := os.Stat(exportsDir); os.IsNotExist(err) {
		os.MkdirAll(exportsDir, 0755)
	}

	return &Service{
		clientRepo: clientRepo,
		branchRepo: branchRepo,
		exportsDir: exportsDir,
	}
}

// ExportResult contains the result of an export operation
type ExportResult struct {
	Success  bool
	Message  string
	Filename string
	FilePath string
}

// ExportClientsToExcel exports every client of a branch to an Excel file and
// returns the generated file's location.
func (s *Service) ExportClientsToExcel(branchID string) (*ExportResult, error) {
	branch, err := s.branchRepo.GetByID(branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get branch: %w", err)
	}

	clients, err := s.clientRepo.GetAllByBranch(branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}

	timestamp := time.Now().Unix()
	filename := fmt.Sprintf("clients_%s_%d.xlsx", branch.Code, timestamp)
	filePath := filepath.Join(s.exportsDir, filename)

	f := excelize.NewFile()

	sheetName := "Clients"
	defaultSheetName := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheetName, sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	f.SetActiveSheet(0)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"D9D9D9"},
			Pattern: 1,
		},
	})

	columns := []string{
		"client_number", "first_name", "last_name", "email", "phone",
		"alt_phone", "company_name", "ad_source", "allow_billing",
		"tax_exempt", "created_at",
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, client := range clients {
		row := rowIdx + 2
		values := []interface{}{
			client.ClientNumber,
			client.FirstName,
			client.LastName,
			client.Email,
			client.Phone,
			client.AltPhone,
			client.CompanyName,
			client.AdSource,
			client.AllowBilling,
			client.TaxExempt,
			client.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Widen the name and contact columns for readability
	f.SetColWidth(sheetName, "B", "H", 20)

	if err := f.SaveAs(filePath); err != nil {
		return nil, fmt.Errorf("failed to save excel file: %w", err)
	}

	return &ExportResult{
		Success:  true,
		Message:  fmt.Sprintf("Exported %d clients", len(clients)),
		Filename: filename,
		FilePath: filePath,
	}, nil
}
