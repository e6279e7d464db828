package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
	"github.com/mamadbah2/mfgconsole/internal/service/forms"
	"github.com/mamadbah2/mfgconsole/internal/service/submission"
)

// ProductionFormHandler serves the production order output edit sessions.
type ProductionFormHandler struct {
	forms     *forms.Service
	submitter *submission.Service
	logger    *zap.Logger
}

// NewProductionFormHandler constructs the HTTP handler adapter.
func NewProductionFormHandler(formsSvc *forms.Service, submitter *submission.Service, logger *zap.Logger) *ProductionFormHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductionFormHandler{forms: formsSvc, submitter: submitter, logger: logger}
}

type openProductionOutputRequest struct {
	Record   *models.ProductionOutputRecord `json:"record"`
	Products []string                      `json:"products"`
	Batches  []string                      `json:"batches"`
}

// Open starts an edit form, seeded from record when one is given.
func (h *ProductionFormHandler) Open(c *gin.Context) {
	var req openProductionOutputRequest
	if !bindOptionalJSON(c, h.logger, &req) {
		return
	}
	sess := h.forms.OpenProductionOutput(req.Record, req.Products, req.Batches)
	c.JSON(http.StatusCreated, sess.View())
}

// Get returns the form state.
func (h *ProductionFormHandler) Get(c *gin.Context) {
	h.respond(c)(h.forms.ProductionOutput(c.Param("id")))
}

// Close discards the form.
func (h *ProductionFormHandler) Close(c *gin.Context) {
	if err := h.forms.CloseProductionOutput(c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetField assigns one scalar field.
func (h *ProductionFormHandler) SetField(c *gin.Context) {
	req, ok := bindField(c, h.logger)
	if !ok {
		return
	}
	h.respond(c)(h.forms.SetProductionOutputField(c.Param("id"), req.Field, req.Value))
}

// AddPackingMaterial appends a blank packing row.
func (h *ProductionFormHandler) AddPackingMaterial(c *gin.Context) {
	h.respond(c)(h.forms.AddPackingMaterial(c.Param("id")))
}

// SetPackingMaterial assigns one field of one packing row.
func (h *ProductionFormHandler) SetPackingMaterial(c *gin.Context) {
	index, err := indexParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	req, ok := bindField(c, h.logger)
	if !ok {
		return
	}
	h.respond(c)(h.forms.UpdatePackingMaterial(c.Param("id"), index, req.Field, req.Value))
}

// RemovePackingMaterial drops one packing row.
func (h *ProductionFormHandler) RemovePackingMaterial(c *gin.Context) {
	index, err := indexParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.respond(c)(h.forms.RemovePackingMaterial(c.Param("id"), index))
}

// Options returns the select lists of the form.
func (h *ProductionFormHandler) Options(c *gin.Context) {
	opts, err := h.forms.ProductionOutputOptions(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// Validate recomputes the error map without submitting.
func (h *ProductionFormHandler) Validate(c *gin.Context) {
	h.respond(c)(h.forms.ValidateProductionOutput(c.Param("id")))
}

// Submit validates and sends the edit.
func (h *ProductionFormHandler) Submit(c *gin.Context) {
	id := c.Param("id")
	outcome, err := h.submitter.SubmitProductionOutput(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var view any
	if sess, err := h.forms.ProductionOutput(id); err == nil {
		view = sess.View()
	}
	respondOutcome(c, outcome, view)
}

// respond renders the session view or maps the error.
func (h *ProductionFormHandler) respond(c *gin.Context) func(forms.ProductionSession, error) {
	return func(sess forms.ProductionSession, err error) {
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, sess.View())
	}
}
