package forms

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
)

// QualitySession is the state of one open quality check form.
type QualitySession struct {
	ID         string                      `json:"id"`
	Record     models.QualityCheckRecord   `json:"record"`
	Parameters []models.ParameterResultRow `json:"parameters"`
	Errors     models.ErrorMap             `json:"errors"`
	Submitting bool                        `json:"submitting"`

	Batches []models.Batch `json:"-"`
	// IdempotencyKey is sent with the primary write and rotates after a successful submit.
	IdempotencyKey string `json:"-"`
	// CreatedID and PersistedParams let a retry resume after a partial failure.
	CreatedID       string          `json:"-"`
	PersistedParams map[string]bool `json:"-"`
}

// Reset returns the form to its empty state. The batch list stays, it belongs to the view.
func (s *QualitySession) Reset() {
	s.Record = models.QualityCheckRecord{}
	s.Parameters = nil
	s.Errors = models.ErrorMap{}
	s.IdempotencyKey = uuid.NewString()
	s.CreatedID = ""
	s.PersistedParams = nil
}

// ParameterKey identifies a parameter row across submit attempts.
func ParameterKey(index int, row models.ParameterResultRow) string {
	if row.ID != "" {
		return row.ID
	}
	return "row-" + strconv.Itoa(index)
}

// ProductionSession is the state of one open production order output form.
type ProductionSession struct {
	ID         string                        `json:"id"`
	Record     models.ProductionOutputRecord `json:"-"`
	Errors     models.ErrorMap               `json:"errors"`
	Submitting bool                          `json:"submitting"`

	Products       []string `json:"-"`
	Batches        []string `json:"-"`
	IdempotencyKey string   `json:"-"`
}

// Reset returns the form to its empty state.
func (s *ProductionSession) Reset() {
	s.Record = models.EmptyProductionOutput()
	s.Errors = models.ErrorMap{}
	s.IdempotencyKey = uuid.NewString()
}

// ProductionView is what the view renders. The authorization password never leaves
// the session.
type ProductionView struct {
	ID              string                        `json:"id"`
	Record          models.ProductionOutputRecord `json:"record"`
	AuthPasswordSet bool                          `json:"authPasswordSet"`
	Errors          models.ErrorMap               `json:"errors"`
	Submitting      bool                          `json:"submitting"`
}

// View renders the session for the browser.
func (s ProductionSession) View() ProductionView {
	rec := s.Record
	rec.AuthPassword = ""
	return ProductionView{
		ID:              s.ID,
		Record:          rec,
		AuthPasswordSet: s.Record.AuthPassword != "",
		Errors:          s.Errors,
		Submitting:      s.Submitting,
	}
}
