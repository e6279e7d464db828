package sheets

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
)

// memorySheet keeps rows per sheet name, so "Sheet!A:H" and "Sheet!A1:H1" address the
// same rows.
type memorySheet struct {
	rows    map[string][][]interface{}
	appends int
	failOn  string
}

func sheetName(sheetRange string) string {
	name, _, _ := strings.Cut(sheetRange, "!")
	return name
}

func (m *memorySheet) AppendRows(_ context.Context, sheetRange string, rows [][]interface{}) error {
	if sheetRange == m.failOn {
		return errors.New("quota exceeded")
	}
	if m.rows == nil {
		m.rows = map[string][][]interface{}{}
	}
	m.appends++
	m.rows[sheetName(sheetRange)] = append(m.rows[sheetName(sheetRange)], rows...)
	return nil
}

func (m *memorySheet) ReadRange(_ context.Context, sheetRange string) ([][]interface{}, error) {
	rows := m.rows[sheetName(sheetRange)]
	if strings.Contains(sheetRange, "1:") && len(rows) > 1 {
		return rows[:1], nil
	}
	return rows, nil
}

var registerRecord = models.QualityCheckRecord{
	BatchNumber:    "B100",
	MaterialName:   "Resin-A",
	InspectionDate: "2024-01-01",
	InspectorName:  "J. Doe",
	QualityStatus:  models.QualityAccepted,
	Comments:       "ok",
}

func TestQualityRegister_AppendQualityCheck(t *testing.T) {
	sheet := &memorySheet{}
	reg := NewQualityRegister(sheet)
	reg.now = func() time.Time { return time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC) }

	rows := []models.ParameterResultRow{
		{QCParameter: models.QCParameter{ID: "p1", ParameterName: "Viscosity"}, ActualResult: "12", Status: models.ParameterPass},
		{QCParameter: models.QCParameter{ID: "p2", ParameterName: "Moisture"}, ActualResult: "3", Status: models.ParameterFail, Remarks: "wet"},
	}

	require.NoError(t, reg.AppendQualityCheck(context.Background(), "qc-1", registerRecord, rows))

	assert.Equal(t, [][]interface{}{
		qualityCheckColumns,
		{"2024-01-01", "qc-1", "B100", "Resin-A", "", "J. Doe", "Accepted", "ok"},
	}, sheet.rows["QualityChecks"])
	assert.Equal(t, [][]interface{}{
		parameterResultColumns,
		{"2024-01-01", "qc-1", "p1", "Viscosity", "12", "PASS", "", "2024-01-01T09:30:00Z"},
		{"2024-01-01", "qc-1", "p2", "Moisture", "3", "FAIL", "wet", "2024-01-01T09:30:00Z"},
	}, sheet.rows["ParameterResults"])
	assert.Equal(t, 4, sheet.appends, "parameter rows go out in one call")

	require.NoError(t, reg.AppendQualityCheck(context.Background(), "qc-2", registerRecord, nil))
	assert.Len(t, sheet.rows["QualityChecks"], 3, "header written once")
}

func TestQualityRegister_KeepsExistingHeader(t *testing.T) {
	sheet := &memorySheet{rows: map[string][][]interface{}{
		"QualityChecks": {{"Date", "QC"}},
	}}
	reg := NewQualityRegister(sheet)

	require.NoError(t, reg.AppendQualityCheck(context.Background(), "qc-1", registerRecord, nil))

	assert.Len(t, sheet.rows["QualityChecks"], 2)
	assert.Empty(t, sheet.rows["ParameterResults"])
}

func TestQualityRegister_StopsOnCheckFailure(t *testing.T) {
	sheet := &memorySheet{rows: map[string][][]interface{}{"QualityChecks": {qualityCheckColumns}}, failOn: QualityChecksRange}
	reg := NewQualityRegister(sheet)

	err := reg.AppendQualityCheck(context.Background(), "qc-1", registerRecord, []models.ParameterResultRow{{}})

	assert.ErrorContains(t, err, "qc-1")
	assert.Empty(t, sheet.rows["ParameterResults"])
}
