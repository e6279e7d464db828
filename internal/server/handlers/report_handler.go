package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
	"github.com/mamadbah2/mfgconsole/internal/service/reporting"
)

const reportDateLayout = "2006-01-02"

// QualityReporter summarises the quality register.
type QualityReporter interface {
	QualitySummary(ctx context.Context, start, end time.Time) (models.QualitySummary, error)
}

// ReportHandler serves quality summaries.
type ReportHandler struct {
	reporter QualityReporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(reporter QualityReporter, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{reporter: reporter, logger: logger, now: time.Now}
}

// Quality returns the summary for ?from=YYYY-MM-DD&to=YYYY-MM-DD. Both default to today.
func (h *ReportHandler) Quality(c *gin.Context) {
	today := h.now().UTC().Format(reportDateLayout)
	from, err := time.Parse(reportDateLayout, c.DefaultQuery("from", today))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be a date (YYYY-MM-DD)"})
		return
	}
	to, err := time.Parse(reportDateLayout, c.DefaultQuery("to", today))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be a date (YYYY-MM-DD)"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be before from"})
		return
	}

	summary, err := h.reporter.QualitySummary(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, reporting.ErrRegisterDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"text":    reporting.FormatSummary(summary),
	})
}
