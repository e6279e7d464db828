package form

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/mamadbah2/mfgconsole/internal/domain/models"
)

// numberPattern is the only accepted numeric input: unsigned decimal, optional fraction.
var numberPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// IsNumber reports whether value matches the decimal-number format.
func IsNumber(value string) bool {
	return numberPattern.MatchString(value)
}

// RowKey namespaces a nested field error by list, row position and field.
func RowKey(list string, index int, field string) string {
	return fmt.Sprintf("%s[%d].%s", list, index, field)
}

// requireField records "<label> is required" when value is blank and reports whether
// the value was present.
func requireField(errs models.ErrorMap, key, label, value string) bool {
	if strings.TrimSpace(value) == "" {
		errs[key] = label + " is required"
		return false
	}
	return true
}

// requireNumber combines the presence check with the decimal-number format. Any
// non-empty value, whitespace included, is judged by the format.
func requireNumber(errs models.ErrorMap, key, label, value string) {
	if value == "" {
		errs[key] = label + " is required"
		return
	}
	if !IsNumber(value) {
		errs[key] = label + " must be a valid number"
	}
}

// validateEnum only checks set values; pair it with requireField when mandatory.
func validateEnum(errs models.ErrorMap, key, label, value string, allowed []string) {
	if value == "" || slices.Contains(allowed, value) {
		return
	}
	errs[key] = fmt.Sprintf("%s must be one of: %s", label, strings.Join(allowed, ", "))
}

func validateDate(errs models.ErrorMap, key, label, value string) {
	if value == "" {
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		errs[key] = label + " must be a valid date (YYYY-MM-DD)"
	}
}
