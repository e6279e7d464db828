package form

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// plainEntities restores only the escapes that can never form markup.
var plainEntities = strings.NewReplacer("&amp;", "&", "&#39;", "'", "&#34;", `"`)

const maxSanitizePasses = 4

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// SanitizeText strips markup from free text. Plain text, including characters such
// as '&' or quotes, passes through unchanged. Angle brackets never survive raw: escaped
// markup stays escaped.
func SanitizeText(raw string) string {
	if raw == "" || !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	text := raw
	for i := 0; i < maxSanitizePasses; i++ {
		next := plainEntities.Replace(textSanitizer().Sanitize(text))
		if next == text {
			break
		}
		text = next
	}
	return text
}

// SanitizeQualityCheck cleans the free-text fields of a quality check before it
// leaves the console.
func SanitizeQualityCheck(rec models.QualityCheckRecord) models.QualityCheckRecord {
	rec.InspectorName = SanitizeText(rec.InspectorName)
	rec.Comments = SanitizeText(rec.Comments)
	return rec
}

// SanitizeRemarks cleans the remarks of a parameter result.
func SanitizeRemarks(result models.ParameterResult) models.ParameterResult {
	result.Remarks = SanitizeText(result.Remarks)
	return result
}

// SanitizeProductionOutput cleans the free-text fields of a production output. The
// packing rows are copied, never shared with the caller.
func SanitizeProductionOutput(rec models.ProductionOutputRecord) models.ProductionOutputRecord {
	rec.StorageLocationForOutput = SanitizeText(rec.StorageLocationForOutput)
	rec.ProductionNotes = SanitizeText(rec.ProductionNotes)
	rec.OutputQualityRating = SanitizeText(rec.OutputQualityRating)
	rec.OutputHandlingInstructions = SanitizeText(rec.OutputHandlingInstructions)

	rows := make([]models.PackingMaterial, len(rec.PackingMaterials))
	for i, pm := range rec.PackingMaterials {
		pm.Type = SanitizeText(pm.Type)
		rows[i] = pm
	}
	rec.PackingMaterials = rows
	return rec
}
