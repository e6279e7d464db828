package form

import (
	"math"
	"strconv"
	"strings"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
)

// ParametersList is the error-key namespace of QC parameter rows.
const ParametersList = "parameters"

var qualityCheckRequired = []struct {
	field models.QualityCheckField
	label string
}{
	{models.QCBatchNumber, "Batch Number"},
	{models.QCMaterialName, "Material Name"},
	{models.QCInspectionDate, "Inspection Date"},
	{models.QCInspectorName, "Inspector Name"},
	{models.QCQualityStatus, "Quality Status"},
	{models.QCComments, "Comments"},
}

// ValidateQualityCheck maps a quality check and its parameter rows to an error map.
func ValidateQualityCheck(rec models.QualityCheckRecord, rows []models.ParameterResultRow) models.ErrorMap {
	errs := models.ErrorMap{}

	for _, rule := range qualityCheckRequired {
		requireField(errs, string(rule.field), rule.label, rec.Get(rule.field))
	}
	validateDate(errs, string(models.QCInspectionDate), "Inspection Date", rec.InspectionDate)
	validateEnum(errs, string(models.QCQualityStatus), "Quality Status", rec.QualityStatus, models.QualityStatuses)

	for i, row := range rows {
		requireNumber(errs, RowKey(ParametersList, i, string(models.ParamActualResult)), "Actual Result", row.ActualResult)
	}

	return errs
}

// ParameterStatus grades a measurement against inclusive bounds. Blank or
// non-numeric measurements have no status.
func ParameterStatus(actual string, min, max models.Bound) string {
	actual = strings.TrimSpace(actual)
	if actual == "" {
		return ""
	}
	v, err := strconv.ParseFloat(actual, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	if v >= float64(min) && v <= float64(max) {
		return models.ParameterPass
	}
	return models.ParameterFail
}

// ParameterRows builds blank result rows for the parameters of a material.
func ParameterRows(params []models.QCParameter) []models.ParameterResultRow {
	rows := make([]models.ParameterResultRow, 0, len(params))
	for _, p := range params {
		rows = append(rows, models.ParameterResultRow{QCParameter: p})
	}
	return rows
}

// UpdateParameterRow sets one field of one row. Changing the actual result
// recomputes the row status.
func UpdateParameterRow(rows []models.ParameterResultRow, index int, field models.ParameterRowField, value string) ([]models.ParameterResultRow, error) {
	return UpdateRow(rows, index, func(row models.ParameterResultRow) models.ParameterResultRow {
		switch field {
		case models.ParamActualResult:
			row.ActualResult = value
			row.Status = ParameterStatus(value, row.MinRange, row.MaxRange)
		case models.ParamRemarks:
			row.Remarks = value
		}
		return row
	})
}

// SelectBatch applies a choice made in one of the linked material name, material
// code or batch number selects: the matching batch fills all three. It reports false
// and leaves rec untouched when nothing matches.
func SelectBatch(rec models.QualityCheckRecord, batches []models.Batch, field models.QualityCheckField, value string) (models.QualityCheckRecord, bool) {
	for _, b := range batches {
		var hit bool
		switch field {
		case models.QCMaterialName:
			hit = b.MaterialName == value
		case models.QCMaterialCode:
			hit = b.MaterialCode == value
		case models.QCBatchNumber:
			hit = b.BatchNumber == value
		}
		if hit {
			rec.MaterialName = b.MaterialName
			rec.MaterialCode = b.MaterialCode
			rec.BatchNumber = b.BatchNumber
			return rec, true
		}
	}
	return rec, false
}

// IsBatchField reports whether f is one of the linked batch selects.
func IsBatchField(f models.QualityCheckField) bool {
	return f == models.QCMaterialName || f == models.QCMaterialCode || f == models.QCBatchNumber
}

// QualityCheckOptions lists the select entries for the batch-linked fields and the
// status select. Batch-linked lists end with an entry navigating to current stock.
func QualityCheckOptions(batches []models.Batch) map[string][]models.Option {
	nav := &models.NavigationCommand{Target: models.NavigateCurrentStock}

	names := make([]models.Option, 0, len(batches)+1)
	codes := make([]models.Option, 0, len(batches)+1)
	numbers := make([]models.Option, 0, len(batches)+1)
	for _, b := range batches {
		names = append(names, models.Option{Label: b.MaterialName, Value: b.MaterialName})
		codes = append(codes, models.Option{Label: b.MaterialCode, Value: b.MaterialCode})
		numbers = append(numbers, models.Option{Label: b.BatchNumber, Value: b.BatchNumber})
	}
	names = append(names, models.Option{Label: "Add New Material In Current Stock +", Navigate: nav})
	codes = append(codes, models.Option{Label: "Add New Material Code +", Navigate: nav})
	numbers = append(numbers, models.Option{Label: "Add New Batch +", Navigate: nav})

	statuses := make([]models.Option, 0, len(models.QualityStatuses))
	for _, s := range models.QualityStatuses {
		statuses = append(statuses, models.Option{Label: s, Value: s})
	}

	return map[string][]models.Option{
		string(models.QCMaterialName):  names,
		string(models.QCMaterialCode):  codes,
		string(models.QCBatchNumber):   numbers,
		string(models.QCQualityStatus): statuses,
	}
}
