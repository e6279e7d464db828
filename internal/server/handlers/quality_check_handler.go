package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
	"github.com/mamadbah2/mfgconsole/internal/service/export"
	"github.com/mamadbah2/mfgconsole/internal/service/submission"
	"github.com/mamadbah2/mfgconsole/pkg/clients/backend"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// QualityCheckLister lists the persisted quality checks.
type QualityCheckLister interface {
	ListQualityChecks(ctx context.Context) ([]models.QualityCheck, error)
}

// QualityCheckHandler serves the persisted quality check list.
type QualityCheckHandler struct {
	lister    QualityCheckLister
	submitter *submission.Service
	logger    *zap.Logger
	now       func() time.Time
}

// NewQualityCheckHandler constructs the HTTP handler adapter.
func NewQualityCheckHandler(lister QualityCheckLister, submitter *submission.Service, logger *zap.Logger) *QualityCheckHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QualityCheckHandler{lister: lister, submitter: submitter, logger: logger, now: time.Now}
}

// List returns the quality checks known to the backend.
func (h *QualityCheckHandler) List(c *gin.Context) {
	checks, err := h.lister.ListQualityChecks(c.Request.Context())
	if err != nil {
		h.backendFailure(c, err, "unable to load quality checks")
		return
	}
	c.JSON(http.StatusOK, checks)
}

// Export returns the quality check list as an xlsx workbook.
func (h *QualityCheckHandler) Export(c *gin.Context) {
	checks, err := h.lister.ListQualityChecks(c.Request.Context())
	if err != nil {
		h.backendFailure(c, err, "unable to load quality checks")
		return
	}

	raw, err := export.QualityChecksWorkbook(checks)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	filename := "quality-checks-" + h.now().UTC().Format("20060102") + ".xlsx"
	h.logger.Info("quality checks exported", zap.Int("rows", len(checks)))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, raw)
}

// Delete removes a quality check. The request must carry confirm=true.
func (h *QualityCheckHandler) Delete(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	outcome, err := h.submitter.DeleteQualityCheck(c.Request.Context(), c.Param("id"), confirmed)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOutcome(c, outcome, nil)
}

func (h *QualityCheckHandler) backendFailure(c *gin.Context, err error, fallback string) {
	h.logger.Error("backend request failed", zap.String("path", c.FullPath()), zap.Error(err))
	message := backend.MessageOf(err)
	if message == "" {
		message = fallback
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": message})
}
