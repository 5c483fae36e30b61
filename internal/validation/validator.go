package validation

import (
	"fmt"
	"strings"
)

// ValidateClientConfiguration runs every field rule and the cross-field
// warnings against data. It never fails; callers must check Valid before
// saving.
func ValidateClientConfiguration(data ClientConfigData) *ValidationResult {
	return ValidateValues(data.Values())
}

// ValidateValues is ValidateClientConfiguration over a field-name keyed map.
// Missing keys are treated as empty strings.
func ValidateValues(values map[string]string) *ValidationResult {
	result := newResult()

	for i := range clientRules {
		rule := &clientRules[i]
		value := values[rule.Field]

		if f, failed := rule.check(value); failed {
			result.addError(rule.Field, f.sentence, f.short)
			continue
		}
		if msg, warn := rule.warning(value); warn {
			result.addWarning(msg)
		}
	}

	for _, p := range contactPairs {
		if isSet(values[p.nameField]) && !isSet(values[p.emailField]) {
			result.addWarning(p.role + " name is set but email is missing")
		}
	}
	if isSet(values["poType"]) && !isSet(values["poNumber"]) {
		result.addWarning("PO type is set but PO number is missing")
	}

	return result
}

// ValidateField checks a single field for live form feedback. It returns the
// same short message ValidateClientConfiguration would put in FieldErrors for
// that field, and false when the value is acceptable. Fields without rules
// are always acceptable.
func ValidateField(field string, value any) (string, bool) {
	rule, ok := rulesByField[field]
	if !ok {
		return "", false
	}
	f, failed := rule.check(stringify(value))
	if !failed {
		return "", false
	}
	return f.short, true
}

func isSet(s string) bool {
	return strings.TrimSpace(s) != ""
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
