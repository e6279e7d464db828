package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
)

func TestQualityChecksWorkbook(t *testing.T) {
	raw, err := QualityChecksWorkbook([]models.QualityCheck{
		{ID: "qc-1", GRN: "GRN-7", MaterialName: "Resin-A", InspectionDate: "2024-01-01T00:00:00.000Z", InspectorName: "J. Doe", QualityStatus: "Accepted", Comments: "ok"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{QualityChecksSheet}, f.GetSheetList())

	rows, err := f.GetRows(QualityChecksSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, qualityCheckHeaders, rows[0])
	assert.Equal(t, []string{"GRN-7", "Resin-A", "", "2024-01-01", "J. Doe", "Accepted", "ok"}, rows[1])
}

func TestQualityChecksWorkbook_Empty(t *testing.T) {
	raw, err := QualityChecksWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(QualityChecksSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
