// Package mapping assigns employees to sites by evaluating prioritized,
// conditional mapping rules against employee attributes.
package mapping

import "fmt"

// Field is an employee attribute a condition can test.
type Field string

const (
	FieldCountry    Field = "country"
	FieldRegion     Field = "region"
	FieldDepartment Field = "department"
	FieldLocation   Field = "location"
)

// Fields lists every supported attribute.
var Fields = []Field{FieldCountry, FieldRegion, FieldDepartment, FieldLocation}

func (f Field) Valid() bool {
	switch f {
	case FieldCountry, FieldRegion, FieldDepartment, FieldLocation:
		return true
	}
	return false
}

// Operator is the string comparison a condition applies.
type Operator string

const (
	OpEquals     Operator = "equals"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "startsWith"
	OpEndsWith   Operator = "endsWith"
)

// Operators lists every supported comparison.
var Operators = []Operator{OpEquals, OpContains, OpStartsWith, OpEndsWith}

func (o Operator) Valid() bool {
	switch o {
	case OpEquals, OpContains, OpStartsWith, OpEndsWith:
		return true
	}
	return false
}

// Condition is one field/operator/value comparison.
type Condition struct {
	Field    Field    `json:"field" yaml:"field"`
	Operator Operator `json:"operator" yaml:"operator"`
	Value    string   `json:"value" yaml:"value"`
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %q", c.Field, c.Operator, c.Value)
}

// MappingRule assigns matching employees to SiteID. A rule matches when every
// condition matches. Lower Priority values are evaluated first.
type MappingRule struct {
	ID         string      `json:"id,omitempty" yaml:"id,omitempty"`
	ClientID   string      `json:"clientId" yaml:"clientId"`
	SiteID     string      `json:"siteId" yaml:"siteId"`
	Priority   int         `json:"priority" yaml:"priority"`
	Conditions []Condition `json:"conditions" yaml:"conditions"`
	IsActive   bool        `json:"isActive" yaml:"isActive"`

	// IsDefault marks an intentional catch-all rule with no conditions.
	IsDefault bool `json:"isDefault,omitempty" yaml:"isDefault,omitempty"`
}

// RuleError reports the first structural problem found in a rule.
type RuleError struct {
	Field   string
	Message string
}

func (e *RuleError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateRule checks a rule before it is stored. A rule needs at least one
// condition unless it is flagged as the default rule, and a default rule may
// not carry conditions.
func ValidateRule(r MappingRule) error {
	if r.ClientID == "" {
		return &RuleError{Field: "clientId", Message: "clientId is required"}
	}
	if r.SiteID == "" {
		return &RuleError{Field: "siteId", Message: "siteId is required"}
	}
	if r.Priority < 0 {
		return &RuleError{Field: "priority", Message: "priority must not be negative"}
	}

	if r.IsDefault {
		if len(r.Conditions) > 0 {
			return &RuleError{Field: "conditions", Message: "a default rule cannot have conditions"}
		}
		return nil
	}

	if len(r.Conditions) == 0 {
		return &RuleError{Field: "conditions", Message: "at least one condition is required (or mark the rule as default)"}
	}

	for i, c := range r.Conditions {
		if !c.Field.Valid() {
			return &RuleError{
				Field:   fmt.Sprintf("conditions[%d].field", i),
				Message: fmt.Sprintf("invalid field %q (allowed: country, region, department, location)", c.Field),
			}
		}
		if !c.Operator.Valid() {
			return &RuleError{
				Field:   fmt.Sprintf("conditions[%d].operator", i),
				Message: fmt.Sprintf("invalid operator %q (allowed: equals, contains, startsWith, endsWith)", c.Operator),
			}
		}
		if c.Value == "" {
			return &RuleError{
				Field:   fmt.Sprintf("conditions[%d].value", i),
				Message: "value is required",
			}
		}
	}
	return nil
}
