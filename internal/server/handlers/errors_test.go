package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
	"github.com/mamadbah2/mfgconsole/internal/form"
	"github.com/mamadbah2/mfgconsole/internal/service/forms"
	"github.com/mamadbah2/mfgconsole/internal/service/submission"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{forms.ErrSessionNotFound, http.StatusNotFound},
		{fmt.Errorf("quality check %q: %w", "grn", models.ErrUnknownField), http.StatusBadRequest},
		{fmt.Errorf("update row 3 of 1: %w", form.ErrRowOutOfRange), http.StatusBadRequest},
		{errInvalidIndex, http.StatusBadRequest},
		{submission.ErrNotConfirmed, http.StatusBadRequest},
		{submission.ErrSubmitInFlight, http.StatusConflict},
		{forms.ErrHeaderSaved, http.StatusConflict},
		{forms.ErrRowSaved, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, statusOf(tc.err))
		})
	}
}
