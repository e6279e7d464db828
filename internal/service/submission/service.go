package submission

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
	"github.com/mamadbah2/mfgconsole/internal/form"
	"github.com/mamadbah2/mfgconsole/internal/service/forms"
	"github.com/mamadbah2/mfgconsole/pkg/clients/backend"
)

var (
	// ErrSubmitInFlight rejects a submit while the previous one on the same form is
	// still waiting for the backend.
	ErrSubmitInFlight = errors.New("a submission for this form is already in flight")
	// ErrNotConfirmed rejects a destructive operation the user did not confirm.
	ErrNotConfirmed = errors.New("operation requires explicit confirmation")
)

const followUpTimeout = 5 * time.Second

const (
	qualitySavedMessage      = "Quality Check and Parameters saved successfully!"
	qualityFailedMessage     = "Error saving Quality Check"
	productionSavedMessage   = "Production order output updated successfully"
	productionFailedMessage  = "Error updating production order output"
	qualityRemovedMessage    = "Quality check removed successfully"
	qualityRemoveFailMessage = "Error removing quality check"
)

// Backend is the subset of the REST client the orchestrator writes through.
type Backend interface {
	CreateQualityCheck(ctx context.Context, rec models.QualityCheckRecord, idempotencyKey string) (string, error)
	CreateParameterResult(ctx context.Context, result models.ParameterResult, idempotencyKey string) error
	EditProductionOutput(ctx context.Context, rec models.ProductionOutputRecord, idempotencyKey string) (string, error)
	DeleteQualityCheck(ctx context.Context, qualityCheckID string) (string, error)
}

// Journal records submit attempts.
type Journal interface {
	SaveSubmission(ctx context.Context, record models.SubmissionRecord) error
}

// Register keeps a copy of every accepted quality check.
type Register interface {
	AppendQualityCheck(ctx context.Context, qcID string, rec models.QualityCheckRecord, rows []models.ParameterResultRow) error
}

// Service validates form sessions and turns them into backend writes.
type Service struct {
	forms    *forms.Service
	backend  Backend
	journal  Journal
	register Register
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires the orchestrator. journal and register may be nil.
func NewService(formsSvc *forms.Service, api Backend, journal Journal, register Register, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		forms:    formsSvc,
		backend:  api,
		journal:  journal,
		register: register,
		logger:   logger,
		now:      time.Now,
	}
}

// SubmitQualityCheck validates the form and, when valid, creates the quality check
// followed by one parameter result per row. An invalid form makes no backend call.
func (s *Service) SubmitQualityCheck(ctx context.Context, sessionID string) (models.SubmitOutcome, error) {
	var snap forms.QualitySession
	var errs models.ErrorMap

	_, err := s.forms.UpdateQualityCheck(sessionID, func(sess *forms.QualitySession) error {
		if sess.Submitting {
			return ErrSubmitInFlight
		}
		errs = form.ValidateQualityCheck(sess.Record, sess.Parameters)
		sess.Errors = errs
		if !errs.Valid() {
			return nil
		}
		sess.Submitting = true
		snap = *sess
		return nil
	})
	if err != nil {
		return models.SubmitOutcome{}, err
	}
	if !errs.Valid() {
		return models.SubmitOutcome{Errors: errs}, nil
	}

	journal := models.SubmissionRecord{
		Form:           models.FormQualityCheck,
		SessionID:      sessionID,
		IdempotencyKey: snap.IdempotencyKey,
	}

	qcID := snap.CreatedID
	var writeErr error
	if qcID == "" {
		qcID, writeErr = s.backend.CreateQualityCheck(ctx, form.SanitizeQualityCheck(snap.Record), snap.IdempotencyKey)
	} else {
		s.logger.Info("resuming quality check submission",
			zap.String("session_id", sessionID), zap.String("qc_id", qcID), zap.Int("saved_rows", len(snap.PersistedParams)))
	}

	persisted := make(map[string]bool, len(snap.Parameters))
	for key := range snap.PersistedParams {
		persisted[key] = true
	}
	var failed []string
	if writeErr == nil {
		var saved []string
		saved, failed, writeErr = s.writeParameterResults(ctx, qcID, snap)
		for _, key := range saved {
			persisted[key] = true
		}
		journal.PersistedRows = sortedKeys(persisted)
		journal.FailedRows = failed
	}
	journal.RecordID = qcID

	var outcome models.SubmitOutcome
	if writeErr != nil {
		outcome = failureOutcome(writeErr, qualityFailedMessage)
		s.logger.Error("quality check submission failed",
			zap.String("session_id", sessionID), zap.String("qc_id", qcID), zap.Strings("failed_rows", failed), zap.Error(writeErr))
	} else {
		outcome = successOutcome(qualitySavedMessage)
		s.logger.Info("quality check submitted",
			zap.String("session_id", sessionID), zap.String("qc_id", qcID), zap.Int("parameters", len(snap.Parameters)))
		s.appendToRegister(ctx, qcID, snap)
	}

	_, err = s.forms.UpdateQualityCheck(sessionID, func(sess *forms.QualitySession) error {
		sess.Submitting = false
		if writeErr == nil {
			sess.Reset()
			return nil
		}
		sess.CreatedID = qcID
		sess.PersistedParams = persisted
		return nil
	})
	if err != nil {
		s.logger.Warn("form closed before submission finished", zap.String("session_id", sessionID), zap.Error(err))
	}

	s.record(ctx, journal, outcome)
	return outcome, nil
}

// writeParameterResults issues the dependent writes for every row not saved yet. All
// writes run to completion so the caller knows exactly which rows persisted.
func (s *Service) writeParameterResults(ctx context.Context, qcID string, snap forms.QualitySession) ([]string, []string, error) {
	var (
		g      errgroup.Group
		mu     sync.Mutex
		saved  []string
		failed []string
	)

	for i, row := range snap.Parameters {
		key := forms.ParameterKey(i, row)
		if snap.PersistedParams[key] {
			continue
		}
		result := form.SanitizeRemarks(models.ParameterResult{
			QualityCheck: qcID,
			Parameter:    row.ID,
			ActualResult: row.ActualResult,
			Status:       row.Status,
			Remarks:      row.Remarks,
		})
		g.Go(func() error {
			err := s.backend.CreateParameterResult(ctx, result, snap.IdempotencyKey+":"+key)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = append(failed, key)
				return err
			}
			saved = append(saved, key)
			return nil
		})
	}

	err := g.Wait()
	sort.Strings(saved)
	sort.Strings(failed)
	return saved, failed, err
}

func (s *Service) appendToRegister(ctx context.Context, qcID string, snap forms.QualitySession) {
	if s.register == nil {
		return
	}
	registerCtx, cancel := detached(ctx)
	defer cancel()
	if err := s.register.AppendQualityCheck(registerCtx, qcID, snap.Record, snap.Parameters); err != nil {
		s.logger.Warn("failed to append quality register", zap.String("qc_id", qcID), zap.Error(err))
	}
}

// SubmitProductionOutput validates the form and, when valid, sends the edit.
func (s *Service) SubmitProductionOutput(ctx context.Context, sessionID string) (models.SubmitOutcome, error) {
	var snap forms.ProductionSession
	var errs models.ErrorMap

	_, err := s.forms.UpdateProductionOutput(sessionID, func(sess *forms.ProductionSession) error {
		if sess.Submitting {
			return ErrSubmitInFlight
		}
		errs = form.ValidateProductionOutput(sess.Record)
		sess.Errors = errs
		if !errs.Valid() {
			return nil
		}
		sess.Submitting = true
		snap = *sess
		return nil
	})
	if err != nil {
		return models.SubmitOutcome{}, err
	}
	if !errs.Valid() {
		return models.SubmitOutcome{Errors: errs}, nil
	}

	message, writeErr := s.backend.EditProductionOutput(ctx, form.SanitizeProductionOutput(snap.Record), snap.IdempotencyKey)

	var outcome models.SubmitOutcome
	if writeErr != nil {
		outcome = failureOutcome(writeErr, productionFailedMessage)
		s.logger.Error("production output submission failed",
			zap.String("session_id", sessionID), zap.String("output_id", snap.Record.ProductionOrderOutputID), zap.Error(writeErr))
	} else {
		if message == "" {
			message = productionSavedMessage
		}
		outcome = successOutcome(message)
		s.logger.Info("production output submitted",
			zap.String("session_id", sessionID), zap.String("output_id", snap.Record.ProductionOrderOutputID))
	}

	_, err = s.forms.UpdateProductionOutput(sessionID, func(sess *forms.ProductionSession) error {
		sess.Submitting = false
		if writeErr == nil {
			sess.Reset()
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("form closed before submission finished", zap.String("session_id", sessionID), zap.Error(err))
	}

	s.record(ctx, models.SubmissionRecord{
		Form:           models.FormProductionOutput,
		SessionID:      sessionID,
		IdempotencyKey: snap.IdempotencyKey,
		RecordID:       snap.Record.ProductionOrderOutputID,
	}, outcome)
	return outcome, nil
}

// DeleteQualityCheck removes a quality check once the user confirmed it.
func (s *Service) DeleteQualityCheck(ctx context.Context, qualityCheckID string, confirmed bool) (models.SubmitOutcome, error) {
	if !confirmed {
		return models.SubmitOutcome{}, ErrNotConfirmed
	}

	message, err := s.backend.DeleteQualityCheck(ctx, qualityCheckID)
	if err != nil {
		s.logger.Error("failed to remove quality check", zap.String("qc_id", qualityCheckID), zap.Error(err))
		return failureOutcome(err, qualityRemoveFailMessage), nil
	}

	if message == "" {
		message = qualityRemovedMessage
	}
	s.logger.Info("quality check removed", zap.String("qc_id", qualityCheckID))
	return successOutcome(message), nil
}

func (s *Service) record(ctx context.Context, rec models.SubmissionRecord, outcome models.SubmitOutcome) {
	if s.journal == nil {
		return
	}
	rec.Outcome = models.OutcomeFailure
	if outcome.Submitted {
		rec.Outcome = models.OutcomeSuccess
	}
	if outcome.Notice != nil {
		rec.Message = outcome.Notice.Message
	}
	rec.CreatedAt = s.now().UTC()

	journalCtx, cancel := detached(ctx)
	defer cancel()
	if err := s.journal.SaveSubmission(journalCtx, rec); err != nil {
		s.logger.Warn("failed to journal submission", zap.String("session_id", rec.SessionID), zap.Error(err))
	}
}

// detached outlives a cancelled request so follow-up writes of an accepted submit still land.
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), followUpTimeout)
}

func successOutcome(message string) models.SubmitOutcome {
	return models.SubmitOutcome{
		Submitted: true,
		Notice:    &models.Notice{Level: models.NoticeSuccess, Message: message},
		Refresh:   true,
	}
}

// failureOutcome prefers the backend's own message and falls back to a generic one
// when the error payload is missing.
func failureOutcome(err error, fallback string) models.SubmitOutcome {
	message := backend.MessageOf(err)
	if message == "" {
		message = fallback
	}
	return models.SubmitOutcome{
		Notice: &models.Notice{Level: models.NoticeError, Message: message},
	}
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
