package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/repository"
	"github.com/robomation/roboquote-api/pkg/apperror"
	"github.com/xuri/excelize/v2"
)

// ExportService renders quotations as Excel workbooks
type ExportService struct {
	quotationRepo repository.QuotationRepository
}

// NewExportService creates a new export service
func NewExportService(quotationRepo repository.QuotationRepository) *ExportService {
	return &ExportService{quotationRepo: quotationRepo}
}

// GenerateQuotationExcel renders the quotation as an xlsx workbook and
// returns the file contents
func (s *ExportService) GenerateQuotationExcel(ctx context.Context, quotationID uuid.UUID) ([]byte, string, error) {
	project, err := s.quotationRepo.GetWithDetails(ctx, quotationID)
	if err != nil {
		return nil, "", err
	}
	if project == nil {
		return nil, "", apperror.NewNotFoundError("Quotation")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := project.Reference
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, "", fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]

	widths := []float64{8, 44, 10, 16, 16, 18}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, "", fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, "", fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, "", fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("create header style: %w", err)
	}

	systemStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#EEEEEE"}, Pattern: 1},
	})
	if err != nil {
		return nil, "", fmt.Errorf("create system style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 10},
	})
	if err != nil {
		return nil, "", fmt.Errorf("create item style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, "", fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, "", fmt.Errorf("create summary value style: %w", err)
	}

	// Header rows
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, "", fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(project.ProjectName))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, "", fmt.Errorf("merge ref: %w", err)
	}
	f.SetCellValue(sheetName, "A2", "Ref: "+project.Reference)
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	if project.CustomerName != "" {
		if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
			return nil, "", fmt.Errorf("merge customer: %w", err)
		}
		f.SetCellValue(sheetName, "A3", "Customer: "+sanitizeExcelCell(project.CustomerName))
		f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)
	}

	// Column headers
	headers := []string{"#", "Description", "Qty", "Unit (USD)", "Unit (ILS)", "Price (ILS)"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s5", columns[i])
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", headerStyle)

	// Line grid, one header row per system followed by its items in display
	// order
	row := 6
	itemsBySystem := make(map[uuid.UUID][]entity.QuotationItem)
	for _, item := range project.Items {
		itemsBySystem[item.SystemID] = append(itemsBySystem[item.SystemID], item)
	}

	for _, system := range project.Systems {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, system.Order)
		label := sanitizeExcelCell(system.Name)
		if system.Quantity > 1 {
			label = fmt.Sprintf("%s (x%g)", label, system.Quantity)
		}
		f.SetCellValue(sheetName, "B"+rowStr, label)
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, systemStyle)
		row++

		for _, item := range itemsBySystem[system.ID] {
			rowStr = fmt.Sprintf("%d", row)
			f.SetCellValue(sheetName, "A"+rowStr, item.DisplayNumber)
			f.SetCellValue(sheetName, "B"+rowStr, "  "+sanitizeExcelCell(item.Name))
			f.SetCellValue(sheetName, "C"+rowStr, item.Quantity)
			f.SetCellValue(sheetName, "D"+rowStr, item.UnitPriceUSD)
			f.SetCellValue(sheetName, "E"+rowStr, item.UnitPriceILS)
			f.SetCellValue(sheetName, "F"+rowStr, item.CustomerPriceILS)
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, itemStyle)
			row++
		}
	}

	// Totals block
	row++
	calcs := project.Calculations
	summaries := []struct {
		label string
		value float64
	}{
		{"Total Cost (ILS):", calcs.TotalCostILS},
		{"Profit (ILS):", calcs.TotalProfitILS},
		{"Risk Addition (ILS):", calcs.RiskAdditionILS},
		{"Total Before VAT (ILS):", calcs.TotalQuoteILS},
		{"VAT (ILS):", calcs.TotalVATILS},
		{"Final Total (ILS):", calcs.FinalTotalILS},
	}
	for _, sm := range summaries {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "E"+rowStr, sm.label)
		f.SetCellStyle(sheetName, "E"+rowStr, "E"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "F"+rowStr, sm.value)
		f.SetCellStyle(sheetName, "F"+rowStr, "F"+rowStr, summaryValueStyle)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("write excel: %w", err)
	}

	filename := fmt.Sprintf("%s.xlsx", project.Reference)
	return buf.Bytes(), filename, nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +,
// -, @, \t or \r as formulas.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
