package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
	"github.com/mamadbah2/mfgconsole/internal/service/forms"
	"github.com/mamadbah2/mfgconsole/internal/service/submission"
)

// QualityFormHandler serves the quality check form sessions.
type QualityFormHandler struct {
	forms     *forms.Service
	submitter *submission.Service
	logger    *zap.Logger
}

// NewQualityFormHandler constructs the HTTP handler adapter.
func NewQualityFormHandler(formsSvc *forms.Service, submitter *submission.Service, logger *zap.Logger) *QualityFormHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QualityFormHandler{forms: formsSvc, submitter: submitter, logger: logger}
}

type openQualityCheckRequest struct {
	Batches []models.Batch `json:"batches"`
}

// Open starts a quality check form over the batch list of the view.
func (h *QualityFormHandler) Open(c *gin.Context) {
	var req openQualityCheckRequest
	if !bindOptionalJSON(c, h.logger, &req) {
		return
	}
	c.JSON(http.StatusCreated, h.forms.OpenQualityCheck(req.Batches))
}

// Get returns the form state.
func (h *QualityFormHandler) Get(c *gin.Context) {
	sess, err := h.forms.QualityCheck(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Close discards the form.
func (h *QualityFormHandler) Close(c *gin.Context) {
	if err := h.forms.CloseQualityCheck(c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetField assigns one header field.
func (h *QualityFormHandler) SetField(c *gin.Context) {
	req, ok := bindField(c, h.logger)
	if !ok {
		return
	}
	sess, err := h.forms.SetQualityCheckField(c.Request.Context(), c.Param("id"), req.Field, req.Value)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// SetParameter assigns one field of one parameter row.
func (h *QualityFormHandler) SetParameter(c *gin.Context) {
	index, err := indexParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	req, ok := bindField(c, h.logger)
	if !ok {
		return
	}
	sess, err := h.forms.UpdateParameter(c.Param("id"), index, req.Field, req.Value)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Options returns the select lists of the form.
func (h *QualityFormHandler) Options(c *gin.Context) {
	opts, err := h.forms.QualityCheckOptions(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// Validate recomputes the error map without submitting.
func (h *QualityFormHandler) Validate(c *gin.Context) {
	sess, err := h.forms.ValidateQualityCheck(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Submit validates and writes the quality check with its parameter results.
func (h *QualityFormHandler) Submit(c *gin.Context) {
	id := c.Param("id")
	outcome, err := h.submitter.SubmitQualityCheck(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var view any
	if sess, err := h.forms.QualityCheck(id); err == nil {
		view = sess
	}
	respondOutcome(c, outcome, view)
}
