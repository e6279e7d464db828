package form

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
)

func completeQualityCheck() models.QualityCheckRecord {
	return models.QualityCheckRecord{
		MaterialName:   "Resin-A",
		BatchNumber:    "B100",
		InspectionDate: "2024-01-01",
		InspectorName:  "J. Doe",
		QualityStatus:  "Accepted",
		Comments:       "ok",
	}
}

func TestValidateQualityCheck_CompleteRecordIsValid(t *testing.T) {
	errs := ValidateQualityCheck(completeQualityCheck(), nil)
	assert.True(t, errs.Valid(), "unexpected errors: %v", errs)
}

func TestValidateQualityCheck_EachRequiredField(t *testing.T) {
	for _, rule := range qualityCheckRequired {
		t.Run(string(rule.field), func(t *testing.T) {
			rec := completeQualityCheck()
			rec.Set(rule.field, "")

			errs := ValidateQualityCheck(rec, nil)

			want := models.ErrorMap{string(rule.field): rule.label + " is required"}
			if diff := cmp.Diff(want, errs); diff != "" {
				t.Fatalf("error map mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateQualityCheck_Formats(t *testing.T) {
	rec := completeQualityCheck()
	rec.InspectionDate = "01/02/2024"
	rec.QualityStatus = "Maybe"

	errs := ValidateQualityCheck(rec, nil)

	assert.Contains(t, errs[string(models.QCInspectionDate)], "valid date")
	assert.Contains(t, errs[string(models.QCQualityStatus)], "must be one of")
}

func TestValidateQualityCheck_ParameterRowsNamespaced(t *testing.T) {
	rows := []models.ParameterResultRow{
		{ActualResult: "4.2"},
		{ActualResult: ""},
		{ActualResult: "high"},
	}

	errs := ValidateQualityCheck(completeQualityCheck(), rows)

	want := models.ErrorMap{
		"parameters[1].actualResult": "Actual Result is required",
		"parameters[2].actualResult": "Actual Result must be a valid number",
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("error map mismatch (-want +got):\n%s", diff)
	}
}

func TestIsNumber(t *testing.T) {
	valid := []string{"0", "12", "12.5", "0.001", "100000"}
	invalid := []string{"-1", "1e3", "12.", ".5", "abc", " 1", "1,5", "+2"}

	for _, v := range valid {
		assert.True(t, IsNumber(v), v)
	}
	for _, v := range invalid {
		assert.False(t, IsNumber(v), v)

		errs := models.ErrorMap{}
		requireNumber(errs, "qty", "Quantity", v)
		assert.Equal(t, "Quantity must be a valid number", errs["qty"], v)
	}
}

func TestParameterStatus(t *testing.T) {
	tests := []struct {
		actual string
		want   string
	}{
		{"5", models.ParameterPass},
		{"1", models.ParameterPass},
		{"10", models.ParameterPass},
		{"0.99", models.ParameterFail},
		{"10.01", models.ParameterFail},
		{"-3", models.ParameterFail},
		{"", ""},
		{"  ", ""},
		{"abc", ""},
		{"NaN", ""},
		{"Inf", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParameterStatus(tt.actual, 1, 10), "actual=%q", tt.actual)
	}
}

func TestUpdateParameterRow_RecomputesStatus(t *testing.T) {
	rows := ParameterRows([]models.QCParameter{
		{ID: "p1", ParameterName: "Viscosity", MinRange: 10, MaxRange: 20},
		{ID: "p2", ParameterName: "Moisture", MinRange: 0, MaxRange: 1},
	})

	updated, err := UpdateParameterRow(rows, 0, models.ParamActualResult, "25")
	require.NoError(t, err)
	assert.Equal(t, models.ParameterFail, updated[0].Status)
	assert.Empty(t, rows[0].Status, "input rows must not change")

	updated, err = UpdateParameterRow(updated, 0, models.ParamRemarks, "retest")
	require.NoError(t, err)
	assert.Equal(t, models.ParameterFail, updated[0].Status, "remarks leave status alone")
	assert.Equal(t, "retest", updated[0].Remarks)

	updated, err = UpdateParameterRow(updated, 0, models.ParamActualResult, "15")
	require.NoError(t, err)
	assert.Equal(t, models.ParameterPass, updated[0].Status)

	_, err = UpdateParameterRow(updated, 2, models.ParamActualResult, "1")
	assert.True(t, errors.Is(err, ErrRowOutOfRange))
}

func TestSelectBatch(t *testing.T) {
	batches := []models.Batch{
		{MaterialName: "Resin-A", MaterialCode: "RA-1", BatchNumber: "B100"},
		{MaterialName: "Resin-B", MaterialCode: "RB-1", BatchNumber: "B200"},
	}

	for _, tc := range []struct {
		field models.QualityCheckField
		value string
	}{
		{models.QCMaterialName, "Resin-B"},
		{models.QCMaterialCode, "RB-1"},
		{models.QCBatchNumber, "B200"},
	} {
		rec, ok := SelectBatch(models.QualityCheckRecord{Comments: "keep"}, batches, tc.field, tc.value)
		require.True(t, ok, tc.field)
		assert.Equal(t, models.QualityCheckRecord{
			MaterialName: "Resin-B", MaterialCode: "RB-1", BatchNumber: "B200", Comments: "keep",
		}, rec)
	}

	rec, ok := SelectBatch(models.QualityCheckRecord{MaterialName: "x"}, batches, models.QCBatchNumber, "B999")
	assert.False(t, ok)
	assert.Equal(t, "x", rec.MaterialName)
}

func TestQualityCheckOptions_EndWithNavigation(t *testing.T) {
	opts := QualityCheckOptions([]models.Batch{{MaterialName: "Resin-A", MaterialCode: "RA-1", BatchNumber: "B100"}})

	for _, key := range []string{"materialName", "materialCode", "batchNumber"} {
		list := opts[key]
		require.Len(t, list, 2, key)
		last := list[len(list)-1]
		require.NotNil(t, last.Navigate, key)
		assert.Equal(t, models.NavigateCurrentStock, last.Navigate.Target)
		assert.Empty(t, last.Value)
	}
	assert.Len(t, opts["qualityStatus"], 3)
}
