package mapping

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRule(t *testing.T) {
	valid := usRule("r1", "site-1", 1)

	testCases := []struct {
		name      string
		mutate    func(r *MappingRule)
		wantField string
	}{
		{"valid", func(r *MappingRule) {}, ""},
		{"missing client", func(r *MappingRule) { r.ClientID = "" }, "clientId"},
		{"missing site", func(r *MappingRule) { r.SiteID = "" }, "siteId"},
		{"negative priority", func(r *MappingRule) { r.Priority = -1 }, "priority"},
		{"no conditions", func(r *MappingRule) { r.Conditions = nil }, "conditions"},
		{"default without conditions", func(r *MappingRule) { r.Conditions = nil; r.IsDefault = true }, ""},
		{"default with conditions", func(r *MappingRule) { r.IsDefault = true }, "conditions"},
		{"bad field", func(r *MappingRule) { r.Conditions[0].Field = "title" }, "conditions[0].field"},
		{"bad operator", func(r *MappingRule) { r.Conditions[0].Operator = "matches" }, "conditions[0].operator"},
		{"empty value", func(r *MappingRule) { r.Conditions[0].Value = "" }, "conditions[0].value"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := valid
			r.Conditions = append([]Condition(nil), valid.Conditions...)
			tc.mutate(&r)

			err := ValidateRule(r)
			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var ruleErr *RuleError
			require.True(t, errors.As(err, &ruleErr))
			assert.Equal(t, tc.wantField, ruleErr.Field)
		})
	}
}
