package validation

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Format selects the format check applied to a non-empty value.
type Format int

const (
	FormatNone Format = iota
	FormatClientName
	FormatCode
	FormatEmail
	FormatPhone
	FormatURL
)

func (f Format) String() string {
	switch f {
	case FormatClientName:
		return "client_name"
	case FormatCode:
		return "code"
	case FormatEmail:
		return "email"
	case FormatPhone:
		return "phone"
	case FormatURL:
		return "url"
	default:
		return "none"
	}
}

// MarshalText lets rule descriptors serialize the format by name.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	for c := FormatNone; c <= FormatURL; c++ {
		if c.String() == string(text) {
			*f = c
			return nil
		}
	}
	return fmt.Errorf("unknown format %q", text)
}

// FieldRule describes every check applied to one field. Checks run in the
// order required, min length, max length, format and stop at the first
// failure, so a field contributes at most one error.
type FieldRule struct {
	Field    string `json:"field"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
	MinLen   int    `json:"minLength,omitempty"`
	MaxLen   int    `json:"maxLength,omitempty"`
	Format   Format `json:"format"`

	// AllowList values outside the list produce a warning, never an error.
	AllowList []string `json:"allowList,omitempty"`

	// CountryCode warns when a two character value is not an uppercase pair.
	CountryCode bool `json:"countryCode,omitempty"`
}

var (
	authenticationMethods = []string{"password", "sso", "saml", "oauth", "ldap", "custom"}
	erpSystems            = []string{"SAP", "Oracle", "Microsoft Dynamics", "NetSuite", "Workday", "Infor", "Epicor", "Sage", "Other"}
	ssoProviders          = []string{"Okta", "Azure AD", "Google Workspace", "OneLogin", "Ping Identity", "Auth0", "ADFS", "Other"}
	hrisSystems           = []string{"Workday", "BambooHR", "ADP", "SAP SuccessFactors", "UKG", "Oracle HCM", "Paylocity", "Gusto", "Other"}
)

// AllowLists returns copies of the recognized values for each allow-listed
// option, keyed by the name the console UI uses.
func AllowLists() map[string][]string {
	return map[string][]string{
		"authenticationMethods": slices.Clone(authenticationMethods),
		"erpSystems":            slices.Clone(erpSystems),
		"ssoProviders":          slices.Clone(ssoProviders),
		"hrisSystems":           slices.Clone(hrisSystems),
	}
}

// clientRules is evaluated top to bottom; order determines the order of
// Errors and Warnings in a ValidationResult.
var clientRules = []FieldRule{
	{Field: "clientName", Label: "Client name", Required: true, MinLen: 2, MaxLen: 100, Format: FormatClientName},
	{Field: "clientCode", Label: "Client code", MaxLen: 50, Format: FormatCode},
	{Field: "clientSourceCode", Label: "Client source code", MaxLen: 50, Format: FormatCode},
	{Field: "contactEmail", Label: "Contact email", Format: FormatEmail},
	{Field: "accountManagerEmail", Label: "Account manager email", Format: FormatEmail},
	{Field: "implementationManagerEmail", Label: "Implementation manager email", Format: FormatEmail},
	{Field: "technologyOwnerEmail", Label: "Technology owner email", Format: FormatEmail},
	{Field: "contactPhone", Label: "Contact phone", Format: FormatPhone},
	{Field: "taxId", Label: "Tax ID", MaxLen: 50},
	{Field: "postalCode", Label: "Postal code", MaxLen: 20},
	{Field: "country", Label: "Country", CountryCode: true},
	{Field: "clientUrl", Label: "Client URL", MaxLen: 255, Format: FormatURL},
	{Field: "customUrl", Label: "Custom URL", MaxLen: 255, Format: FormatURL},
	{Field: "authenticationMethod", Label: "Authentication method", AllowList: authenticationMethods},
	{Field: "poNumber", Label: "PO number", MaxLen: 100},
	{Field: "erpSystem", Label: "ERP system", AllowList: erpSystems},
	{Field: "sso", Label: "SSO provider", AllowList: ssoProviders},
	{Field: "hrisSystem", Label: "HRIS system", AllowList: hrisSystems},
	{Field: "description", Label: "Description", MaxLen: 500},
	{Field: "contactName", Label: "Contact name", MaxLen: 100},
	{Field: "addressLine1", Label: "Address line 1", MaxLen: 100},
	{Field: "addressLine2", Label: "Address line 2", MaxLen: 100},
	{Field: "addressLine3", Label: "Address line 3", MaxLen: 100},
	{Field: "city", Label: "City", MaxLen: 100},
	{Field: "countryState", Label: "State/Province", MaxLen: 100},
}

var rulesByField = func() map[string]*FieldRule {
	m := make(map[string]*FieldRule, len(clientRules))
	for i := range clientRules {
		m[clientRules[i].Field] = &clientRules[i]
	}
	return m
}()

// contactPairs drive the "name without email" warnings.
var contactPairs = []struct {
	nameField, emailField, role string
}{
	{"accountManager", "accountManagerEmail", "Account manager"},
	{"implementationManager", "implementationManagerEmail", "Implementation manager"},
	{"technologyOwner", "technologyOwnerEmail", "Technology owner"},
}

// Rules returns a deep copy of the client configuration rule table.
func Rules() []FieldRule {
	out := make([]FieldRule, len(clientRules))
	for i, r := range clientRules {
		out[i] = r.clone()
	}
	return out
}

// RuleFor returns the rule for field, if one exists.
func RuleFor(field string) (FieldRule, bool) {
	r, ok := rulesByField[field]
	if !ok {
		return FieldRule{}, false
	}
	return r.clone(), true
}

func (r FieldRule) clone() FieldRule {
	r.AllowList = slices.Clone(r.AllowList)
	return r
}

type failure struct {
	sentence string
	short    string
}

// check returns the first failing check for value. Values are trimmed first;
// an empty optional value is always accepted.
func (r *FieldRule) check(value string) (failure, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		if r.Required {
			msg := r.Label + " is required"
			return failure{sentence: msg, short: msg}, true
		}
		return failure{}, false
	}

	n := utf8.RuneCountInString(v)
	if r.MinLen > 0 && n < r.MinLen {
		return failure{
			sentence: fmt.Sprintf("%s must be at least %d characters", r.Label, r.MinLen),
			short:    fmt.Sprintf("Must be at least %d characters", r.MinLen),
		}, true
	}
	if r.MaxLen > 0 && n > r.MaxLen {
		return failure{
			sentence: fmt.Sprintf("%s must be %d characters or less", r.Label, r.MaxLen),
			short:    fmt.Sprintf("Must be %d characters or less", r.MaxLen),
		}, true
	}

	switch r.Format {
	case FormatClientName:
		if !isValidClientName(v) {
			return failure{
				sentence: r.Label + " contains invalid characters",
				short:    "Only letters, numbers, spaces, and - _ & . ' are allowed",
			}, true
		}
	case FormatCode:
		if !IsValidCode(v) {
			return failure{
				sentence: r.Label + " can only contain letters, numbers, hyphens, and underscores",
				short:    "Only letters, numbers, hyphens, and underscores are allowed",
			}, true
		}
	case FormatEmail:
		if !IsValidEmail(v) {
			return failure{
				sentence: r.Label + " has an invalid email format",
				short:    "Invalid email format",
			}, true
		}
	case FormatPhone:
		if !IsValidPhone(v) {
			return failure{
				sentence: r.Label + " has an invalid phone number format",
				short:    "Invalid phone number format",
			}, true
		}
	case FormatURL:
		if !IsValidURL(v) {
			return failure{
				sentence: r.Label + " must be a valid URL starting with http:// or https://",
				short:    "Invalid URL format (must start with http:// or https://)",
			}, true
		}
	}
	return failure{}, false
}

// warning returns the advisory message for value, if any.
func (r *FieldRule) warning(value string) (string, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", false
	}
	if r.CountryCode && utf8.RuneCountInString(v) == 2 && !isUppercaseCountryCode(v) {
		return fmt.Sprintf("%s code %q should be two uppercase letters (e.g. US, GB)", r.Label, v), true
	}
	if len(r.AllowList) > 0 && !containsFold(r.AllowList, v) {
		return fmt.Sprintf("%s %q is not in the list of recognized values", r.Label, v), true
	}
	return "", false
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
