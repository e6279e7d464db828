package sheets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
)

// Sheet ranges of the quality register.
const (
	QualityChecksRange      = "QualityChecks!A:H"
	ParameterResultsRange   = "ParameterResults!A:H"
	qualityChecksHeader     = "QualityChecks!A1:H1"
	parameterResultsHeader  = "ParameterResults!A1:H1"
	registerTimestampLayout = time.RFC3339
)

var (
	qualityCheckColumns = []interface{}{
		"Inspection Date", "Quality Check", "Batch Number", "Material Name",
		"Material Code", "Inspector Name", "Quality Status", "Comments",
	}
	parameterResultColumns = []interface{}{
		"Inspection Date", "Quality Check", "Parameter", "Parameter Name",
		"Actual Result", "Status", "Remarks", "Recorded At",
	}
)

// QualityRegister appends accepted quality checks to the spreadsheet, one row per check
// and one row per measured parameter. Column headers are written the first time a sheet
// is found empty.
type QualityRegister struct {
	repo Repository
	now  func() time.Time

	mu     sync.Mutex
	headed map[string]bool
}

// NewQualityRegister wraps a sheet repository.
func NewQualityRegister(repo Repository) *QualityRegister {
	return &QualityRegister{repo: repo, now: time.Now, headed: map[string]bool{}}
}

// AppendQualityCheck writes the check row followed by its parameter rows.
func (r *QualityRegister) AppendQualityCheck(ctx context.Context, qcID string, rec models.QualityCheckRecord, rows []models.ParameterResultRow) error {
	if err := r.ensureHeader(ctx, qualityChecksHeader, QualityChecksRange, qualityCheckColumns); err != nil {
		return err
	}
	check := []interface{}{
		rec.InspectionDate,
		qcID,
		rec.BatchNumber,
		rec.MaterialName,
		rec.MaterialCode,
		rec.InspectorName,
		rec.QualityStatus,
		rec.Comments,
	}
	if err := r.repo.AppendRows(ctx, QualityChecksRange, [][]interface{}{check}); err != nil {
		return fmt.Errorf("register quality check %s: %w", qcID, err)
	}

	if len(rows) == 0 {
		return nil
	}
	if err := r.ensureHeader(ctx, parameterResultsHeader, ParameterResultsRange, parameterResultColumns); err != nil {
		return err
	}

	recordedAt := r.now().UTC().Format(registerTimestampLayout)
	results := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		results = append(results, []interface{}{
			rec.InspectionDate,
			qcID,
			row.ID,
			row.ParameterName,
			row.ActualResult,
			row.Status,
			row.Remarks,
			recordedAt,
		})
	}
	if err := r.repo.AppendRows(ctx, ParameterResultsRange, results); err != nil {
		return fmt.Errorf("register %d parameter results of %s: %w", len(results), qcID, err)
	}
	return nil
}

func (r *QualityRegister) ensureHeader(ctx context.Context, headerRange, sheetRange string, columns []interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.headed[sheetRange] {
		return nil
	}

	existing, err := r.repo.ReadRange(ctx, headerRange)
	if err != nil {
		return fmt.Errorf("check register header %s: %w", headerRange, err)
	}
	if len(existing) == 0 {
		if err := r.repo.AppendRows(ctx, sheetRange, [][]interface{}{columns}); err != nil {
			return fmt.Errorf("write register header %s: %w", headerRange, err)
		}
	}
	r.headed[sheetRange] = true
	return nil
}
