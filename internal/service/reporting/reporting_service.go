package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
	repo "github.com/mamadbah2/mfgconsole/internal/repository/sheets"
)

const dateLayout = "2006-01-02"

// ErrRegisterDisabled is returned when no quality register is configured.
var ErrRegisterDisabled = errors.New("quality register is not configured")

// SummaryStore persists computed summaries.
type SummaryStore interface {
	SaveQualitySummary(ctx context.Context, summary models.QualitySummary) error
}

// Service aggregates the quality register into summaries.
type Service struct {
	repo   repo.Repository
	store  SummaryStore
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new reporting service instance. A nil repository disables
// reporting; a nil store skips persistence.
func NewService(repository repo.Repository, store SummaryStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, store: store, logger: logger, now: time.Now}
}

// QualitySummary counts inspections by status and parameter outcomes whose inspection
// date falls within [start, end].
func (s *Service) QualitySummary(ctx context.Context, start, end time.Time) (models.QualitySummary, error) {
	if s.repo == nil {
		return models.QualitySummary{}, ErrRegisterDisabled
	}
	if end.Before(start) {
		return models.QualitySummary{}, fmt.Errorf("report range ends before it starts: %s > %s", start.Format(dateLayout), end.Format(dateLayout))
	}

	summary := models.QualitySummary{From: start, To: end, CreatedAt: s.now().UTC()}

	checks, err := s.repo.ReadRange(ctx, repo.QualityChecksRange)
	if err != nil {
		return models.QualitySummary{}, fmt.Errorf("load quality checks range: %w", err)
	}
	for _, row := range checks {
		if len(row) < 7 || !s.inRange(row[0], start, end) {
			continue
		}
		summary.Inspections++
		switch fmt.Sprint(row[6]) {
		case models.QualityAccepted:
			summary.Accepted++
		case models.QualityQuarantine:
			summary.Quarantine++
		case models.QualityRejected:
			summary.Rejected++
		default:
			s.logger.Debug("unknown quality status in register", zap.Any("value", row[6]))
		}
	}

	results, err := s.repo.ReadRange(ctx, repo.ParameterResultsRange)
	if err != nil {
		return models.QualitySummary{}, fmt.Errorf("load parameter results range: %w", err)
	}
	for _, row := range results {
		if len(row) < 6 || !s.inRange(row[0], start, end) {
			continue
		}
		switch fmt.Sprint(row[5]) {
		case models.ParameterPass:
			summary.ParameterPasses++
		case models.ParameterFail:
			summary.ParameterFailures++
		}
	}

	return summary, nil
}

// DailyQualitySummary summarises the calendar day of now and stores the result.
func (s *Service) DailyQualitySummary(ctx context.Context, now time.Time) (models.QualitySummary, error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	summary, err := s.QualitySummary(ctx, day, day)
	if err != nil {
		return models.QualitySummary{}, err
	}

	if s.store != nil {
		if err := s.store.SaveQualitySummary(ctx, summary); err != nil {
			return summary, fmt.Errorf("store quality summary: %w", err)
		}
	}
	return summary, nil
}

// inRange compares calendar dates only; register rows carry no time of day.
func (s *Service) inRange(value interface{}, start, end time.Time) bool {
	date, err := parseDate(value)
	if err != nil {
		s.logger.Debug("skip register row with invalid date", zap.Any("value", value), zap.Error(err))
		return false
	}
	day := date.Format(dateLayout)
	return day >= start.Format(dateLayout) && day <= end.Format(dateLayout)
}

// FormatSummary renders a one-line digest of a summary.
func FormatSummary(summary models.QualitySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Quality (%s-%s): ", summary.From.Format(dateLayout), summary.To.Format(dateLayout))
	if summary.Inspections == 0 {
		b.WriteString("no inspections recorded.")
		return b.String()
	}
	fmt.Fprintf(&b, "%d inspections, %d accepted, %d in quarantine, %d rejected. Parameters: %d pass, %d fail.",
		summary.Inspections, summary.Accepted, summary.Quarantine, summary.Rejected,
		summary.ParameterPasses, summary.ParameterFailures)
	return b.String()
}

func parseDate(value interface{}) (time.Time, error) {
	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(str) > len(dateLayout) {
		str = str[:len(dateLayout)]
	}
	return time.Parse(dateLayout, str)
}
