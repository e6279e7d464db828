package form

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "J. Doe", SanitizeText("J. Doe"))
	assert.Equal(t, "Smith & Sons", SanitizeText("Smith & Sons"))
	assert.Equal(t, "ok & fine", SanitizeText("<b>ok</b> & fine"))
	assert.Equal(t, "", SanitizeText(""))
	assert.Equal(t, `say "hi" it's fine`, SanitizeText(`<i>say "hi"</i> it's fine`))
}

func TestSanitizeText_EscapedMarkupStaysEscaped(t *testing.T) {
	cases := map[string]string{
		"&lt;script&gt;alert(1)&lt;/script&gt;":           "&lt;script&gt;alert(1)&lt;/script&gt;",
		"<b>bold</b> &lt;img src=x onerror=alert(1)&gt;": "bold &lt;img src=x onerror=alert(1)&gt;",
		"&amp;lt;script&amp;gt;":                          "&lt;script&gt;",
		"pressure < 5 bar":                                "pressure &lt; 5 bar",
	}
	for in, want := range cases {
		got := SanitizeText(in)
		assert.Equal(t, want, got, in)
		assert.NotContains(t, got, "<", in)
		assert.NotContains(t, got, ">", in)
	}
}

func TestSanitizeQualityCheck_LeavesPlainRecordUntouched(t *testing.T) {
	rec := completeQualityCheck()
	assert.Equal(t, rec, SanitizeQualityCheck(rec))
}

func TestSanitizeProductionOutput_CopiesRows(t *testing.T) {
	rec := completeProductionOutput()
	rec.PackingMaterials[0].Type = "<i>Carton</i>"

	clean := SanitizeProductionOutput(rec)

	assert.Equal(t, "Carton", clean.PackingMaterials[0].Type)
	assert.Equal(t, "<i>Carton</i>", rec.PackingMaterials[0].Type)
}

func TestSanitizeRemarks(t *testing.T) {
	out := SanitizeRemarks(models.ParameterResult{Remarks: "<p>slightly high</p>"})
	assert.Equal(t, "slightly high", out.Remarks)
}
