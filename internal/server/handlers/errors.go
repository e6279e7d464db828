package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
	"github.com/mamadbah2/mfgconsole/internal/form"
	"github.com/mamadbah2/mfgconsole/internal/service/forms"
	"github.com/mamadbah2/mfgconsole/internal/service/submission"
)

var errInvalidIndex = errors.New("row index must be a non-negative integer")

// statusOf maps service errors to HTTP statuses.
func statusOf(err error) int {
	switch {
	case errors.Is(err, forms.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUnknownField),
		errors.Is(err, form.ErrRowOutOfRange),
		errors.Is(err, errInvalidIndex),
		errors.Is(err, submission.ErrNotConfirmed):
		return http.StatusBadRequest
	case errors.Is(err, submission.ErrSubmitInFlight),
		errors.Is(err, forms.ErrHeaderSaved),
		errors.Is(err, forms.ErrRowSaved):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	logger.Debug("request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondOutcome writes a submit or delete outcome: 200 on success, 422 when the form
// did not validate and 502 when the backend refused the write.
func respondOutcome(c *gin.Context, outcome models.SubmitOutcome, session any) {
	status := http.StatusOK
	switch {
	case !outcome.Errors.Valid():
		status = http.StatusUnprocessableEntity
	case !outcome.Submitted:
		status = http.StatusBadGateway
	}
	body := gin.H{"outcome": outcome}
	if session != nil {
		body["session"] = session
	}
	c.JSON(status, body)
}

// fieldRequest assigns one field by its wire name.
type fieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

func bindField(c *gin.Context, logger *zap.Logger) (fieldRequest, bool) {
	var req fieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid field payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return req, false
	}
	return req, true
}

// bindOptionalJSON decodes the body into dst, accepting an empty body.
func bindOptionalJSON(c *gin.Context, logger *zap.Logger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("invalid payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

func indexParam(c *gin.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return 0, errInvalidIndex
	}
	return index, nil
}
