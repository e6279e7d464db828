package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
)

// QualityChecksSheet is the sheet name of the quality check export.
const QualityChecksSheet = "QualityChecks"

var qualityCheckHeaders = []string{
	"GRN", "Material Name", "Material Code", "Inspection Date", "Inspector Name", "Quality Status", "Comments",
}

// QualityChecksWorkbook renders the quality check list as an xlsx workbook.
func QualityChecksWorkbook(checks []models.QualityCheck) ([]byte, error) {
	data := make([][]string, 0, len(checks))
	for _, qc := range checks {
		data = append(data, []string{
			qc.GRN,
			qc.MaterialName,
			qc.MaterialCode,
			models.NormalizeDate(qc.InspectionDate),
			qc.InspectorName,
			qc.QualityStatus,
			qc.Comments,
		})
	}
	return workbook(QualityChecksSheet, qualityCheckHeaders, data)
}

func workbook(sheetName string, headers []string, data [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", sheetName, err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range data {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "A", lastCol, 18); err != nil {
		return nil, err
	}

	if sheetName != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
