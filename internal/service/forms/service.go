package forms

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
	"github.com/mamadbah2/mfgconsole/internal/form"
)

// ParameterSource loads the QC parameters defined for a material.
type ParameterSource interface {
	ListQCParameters(ctx context.Context, materialName string) ([]models.QCParameter, error)
}

var (
	// ErrHeaderSaved rejects edits to a quality check whose header the backend already
	// stored during a partially failed submit.
	ErrHeaderSaved = errors.New("quality check already saved; only unsaved parameter rows can change")
	// ErrRowSaved rejects edits to a parameter result the backend already stored.
	ErrRowSaved = errors.New("parameter result already saved")
)

// Service owns the open form sessions of every editing surface.
type Service struct {
	quality    *Store[QualitySession]
	production *Store[ProductionSession]
	params     ParameterSource
	logger     *zap.Logger
}

// NewService wires a new form session service.
func NewService(params ParameterSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		quality:    NewStore[QualitySession](),
		production: NewStore[ProductionSession](),
		params:     params,
		logger:     logger,
	}
}

// OpenQualityCheck starts an empty quality check form over the given batch list.
func (s *Service) OpenQualityCheck(batches []models.Batch) QualitySession {
	sess := s.quality.Open(func(id string) QualitySession {
		sess := QualitySession{ID: id, Batches: append([]models.Batch(nil), batches...)}
		sess.Reset()
		return sess
	})
	s.logger.Debug("quality check form opened", zap.String("session_id", sess.ID), zap.Int("batches", len(batches)))
	return sess
}

// QualityCheck returns the current state of a quality check form.
func (s *Service) QualityCheck(id string) (QualitySession, error) {
	return s.quality.Get(id)
}

// CloseQualityCheck discards a quality check form.
func (s *Service) CloseQualityCheck(id string) error {
	if !s.quality.Close(id) {
		return ErrSessionNotFound
	}
	return nil
}

// UpdateQualityCheck runs fn against the session under the store lock.
func (s *Service) UpdateQualityCheck(id string, fn func(*QualitySession) error) (QualitySession, error) {
	return s.quality.Update(id, fn)
}

// SetQualityCheckField assigns one field. Choosing a material name, material code or
// batch number fills the other two from the batch list when one matches. A change of
// material name reloads the parameter rows.
func (s *Service) SetQualityCheckField(ctx context.Context, id, name, value string) (QualitySession, error) {
	field, err := models.ParseQualityCheckField(name)
	if err != nil {
		return QualitySession{}, err
	}

	var previousMaterial string
	sess, err := s.quality.Update(id, func(sess *QualitySession) error {
		if sess.CreatedID != "" {
			return ErrHeaderSaved
		}
		previousMaterial = sess.Record.MaterialName
		if form.IsBatchField(field) {
			if rec, ok := form.SelectBatch(sess.Record, sess.Batches, field, value); ok {
				sess.Record = rec
				return nil
			}
		}
		sess.Record.Set(field, value)
		return nil
	})
	if err != nil {
		return sess, err
	}

	if sess.Record.MaterialName == previousMaterial {
		return sess, nil
	}
	return s.reloadParameters(ctx, id, sess.Record.MaterialName)
}

func (s *Service) reloadParameters(ctx context.Context, id, materialName string) (QualitySession, error) {
	var rows []models.ParameterResultRow
	if materialName != "" && s.params != nil {
		params, err := s.params.ListQCParameters(ctx, materialName)
		if err != nil {
			s.logger.Warn("failed to load qc parameters",
				zap.String("session_id", id), zap.String("material", materialName), zap.Error(err))
		} else {
			rows = form.ParameterRows(params)
		}
	}

	return s.quality.Update(id, func(sess *QualitySession) error {
		// A later edit may have switched material while the fetch was running.
		if sess.Record.MaterialName != materialName {
			return nil
		}
		sess.Parameters = rows
		return nil
	})
}

// UpdateParameter sets one field of one parameter row.
func (s *Service) UpdateParameter(id string, index int, name, value string) (QualitySession, error) {
	field, err := models.ParseParameterRowField(name)
	if err != nil {
		return QualitySession{}, err
	}
	return s.quality.Update(id, func(sess *QualitySession) error {
		if index >= 0 && index < len(sess.Parameters) && sess.PersistedParams[ParameterKey(index, sess.Parameters[index])] {
			return ErrRowSaved
		}
		rows, err := form.UpdateParameterRow(sess.Parameters, index, field, value)
		if err != nil {
			return err
		}
		sess.Parameters = rows
		return nil
	})
}

// ValidateQualityCheck recomputes and stores the error map of a quality check form.
func (s *Service) ValidateQualityCheck(id string) (QualitySession, error) {
	return s.quality.Update(id, func(sess *QualitySession) error {
		sess.Errors = form.ValidateQualityCheck(sess.Record, sess.Parameters)
		return nil
	})
}

// QualityCheckOptions returns the select lists of a quality check form.
func (s *Service) QualityCheckOptions(id string) (map[string][]models.Option, error) {
	sess, err := s.quality.Get(id)
	if err != nil {
		return nil, err
	}
	return form.QualityCheckOptions(sess.Batches), nil
}

// OpenProductionOutput starts an edit form seeded from an existing output, or an
// empty one when seed is nil.
func (s *Service) OpenProductionOutput(seed *models.ProductionOutputRecord, products, batches []string) ProductionSession {
	sess := s.production.Open(func(id string) ProductionSession {
		sess := ProductionSession{
			ID:       id,
			Products: append([]string(nil), products...),
			Batches:  append([]string(nil), batches...),
		}
		sess.Reset()
		if seed != nil {
			sess.Record = models.SeedProductionOutput(*seed)
		}
		return sess
	})
	s.logger.Debug("production output form opened",
		zap.String("session_id", sess.ID), zap.String("output_id", sess.Record.ProductionOrderOutputID))
	return sess
}

// ProductionOutput returns the current state of a production output form.
func (s *Service) ProductionOutput(id string) (ProductionSession, error) {
	return s.production.Get(id)
}

// CloseProductionOutput discards a production output form.
func (s *Service) CloseProductionOutput(id string) error {
	if !s.production.Close(id) {
		return ErrSessionNotFound
	}
	return nil
}

// UpdateProductionOutput runs fn against the session under the store lock.
func (s *Service) UpdateProductionOutput(id string, fn func(*ProductionSession) error) (ProductionSession, error) {
	return s.production.Update(id, fn)
}

// SetProductionOutputField assigns one scalar field.
func (s *Service) SetProductionOutputField(id, name, value string) (ProductionSession, error) {
	field, err := models.ParseProductionOutputField(name)
	if err != nil {
		return ProductionSession{}, err
	}
	return s.production.Update(id, func(sess *ProductionSession) error {
		sess.Record.Set(field, value)
		return nil
	})
}

// AddPackingMaterial appends a blank packing row.
func (s *Service) AddPackingMaterial(id string) (ProductionSession, error) {
	return s.production.Update(id, func(sess *ProductionSession) error {
		sess.Record.PackingMaterials = form.AppendRow(sess.Record.PackingMaterials, models.PackingMaterial{})
		return nil
	})
}

// RemovePackingMaterial drops the packing row at index.
func (s *Service) RemovePackingMaterial(id string, index int) (ProductionSession, error) {
	return s.production.Update(id, func(sess *ProductionSession) error {
		rows, err := form.RemoveRow(sess.Record.PackingMaterials, index)
		if err != nil {
			return err
		}
		sess.Record.PackingMaterials = rows
		return nil
	})
}

// UpdatePackingMaterial sets one field of one packing row.
func (s *Service) UpdatePackingMaterial(id string, index int, name, value string) (ProductionSession, error) {
	field, err := models.ParsePackingMaterialField(name)
	if err != nil {
		return ProductionSession{}, err
	}
	return s.production.Update(id, func(sess *ProductionSession) error {
		rows, err := form.UpdateRow(sess.Record.PackingMaterials, index, func(pm models.PackingMaterial) models.PackingMaterial {
			return pm.With(field, value)
		})
		if err != nil {
			return err
		}
		sess.Record.PackingMaterials = rows
		return nil
	})
}

// ValidateProductionOutput recomputes and stores the error map of a production output form.
func (s *Service) ValidateProductionOutput(id string) (ProductionSession, error) {
	return s.production.Update(id, func(sess *ProductionSession) error {
		sess.Errors = form.ValidateProductionOutput(sess.Record)
		return nil
	})
}

// ProductionOutputOptions returns the select lists of a production output form.
func (s *Service) ProductionOutputOptions(id string) (map[string][]models.Option, error) {
	sess, err := s.production.Get(id)
	if err != nil {
		return nil, err
	}
	return form.ProductionOutputOptions(sess.Products, sess.Batches), nil
}

// Sweep closes every form idle for longer than idle.
func (s *Service) Sweep(idle time.Duration) int {
	closed := s.quality.Sweep(idle) + s.production.Sweep(idle)
	if closed > 0 {
		s.logger.Info("idle form sessions closed", zap.Int("closed", closed))
	}
	return closed
}
