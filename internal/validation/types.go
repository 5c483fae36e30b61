// Package validation checks client configuration records against a fixed set
// of per-field rules. Errors block a save; warnings are advisory only.
//
// Everything in this package is pure: no I/O, no shared mutable state, safe
// for concurrent use.
package validation

// ClientConfigData is the flat record edited on the client configuration form.
// Every field except ClientName and IsActive is optional.
type ClientConfigData struct {
	ClientName       string `json:"clientName" yaml:"clientName"`
	ClientCode       string `json:"clientCode,omitempty" yaml:"clientCode,omitempty"`
	ClientSourceCode string `json:"clientSourceCode,omitempty" yaml:"clientSourceCode,omitempty"`
	Description      string `json:"description,omitempty" yaml:"description,omitempty"`
	IsActive         bool   `json:"isActive" yaml:"isActive"`

	ContactName  string `json:"contactName,omitempty" yaml:"contactName,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty" yaml:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty" yaml:"contactPhone,omitempty"`

	TaxID        string `json:"taxId,omitempty" yaml:"taxId,omitempty"`
	AddressLine1 string `json:"addressLine1,omitempty" yaml:"addressLine1,omitempty"`
	AddressLine2 string `json:"addressLine2,omitempty" yaml:"addressLine2,omitempty"`
	AddressLine3 string `json:"addressLine3,omitempty" yaml:"addressLine3,omitempty"`
	City         string `json:"city,omitempty" yaml:"city,omitempty"`
	CountryState string `json:"countryState,omitempty" yaml:"countryState,omitempty"`
	PostalCode   string `json:"postalCode,omitempty" yaml:"postalCode,omitempty"`
	Country      string `json:"country,omitempty" yaml:"country,omitempty"`

	ClientURL string `json:"clientUrl,omitempty" yaml:"clientUrl,omitempty"`
	CustomURL string `json:"customUrl,omitempty" yaml:"customUrl,omitempty"`

	AccountManager             string `json:"accountManager,omitempty" yaml:"accountManager,omitempty"`
	AccountManagerEmail        string `json:"accountManagerEmail,omitempty" yaml:"accountManagerEmail,omitempty"`
	ImplementationManager      string `json:"implementationManager,omitempty" yaml:"implementationManager,omitempty"`
	ImplementationManagerEmail string `json:"implementationManagerEmail,omitempty" yaml:"implementationManagerEmail,omitempty"`
	TechnologyOwner            string `json:"technologyOwner,omitempty" yaml:"technologyOwner,omitempty"`
	TechnologyOwnerEmail       string `json:"technologyOwnerEmail,omitempty" yaml:"technologyOwnerEmail,omitempty"`

	AuthenticationMethod string `json:"authenticationMethod,omitempty" yaml:"authenticationMethod,omitempty"`
	POType               string `json:"poType,omitempty" yaml:"poType,omitempty"`
	PONumber             string `json:"poNumber,omitempty" yaml:"poNumber,omitempty"`
	ERPSystem            string `json:"erpSystem,omitempty" yaml:"erpSystem,omitempty"`
	SSO                  string `json:"sso,omitempty" yaml:"sso,omitempty"`
	HRISSystem           string `json:"hrisSystem,omitempty" yaml:"hrisSystem,omitempty"`
}

// Values returns the string fields keyed by their JSON names.
func (d ClientConfigData) Values() map[string]string {
	return map[string]string{
		"clientName":                 d.ClientName,
		"clientCode":                 d.ClientCode,
		"clientSourceCode":           d.ClientSourceCode,
		"description":                d.Description,
		"contactName":                d.ContactName,
		"contactEmail":               d.ContactEmail,
		"contactPhone":               d.ContactPhone,
		"taxId":                      d.TaxID,
		"addressLine1":               d.AddressLine1,
		"addressLine2":               d.AddressLine2,
		"addressLine3":               d.AddressLine3,
		"city":                       d.City,
		"countryState":               d.CountryState,
		"postalCode":                 d.PostalCode,
		"country":                    d.Country,
		"clientUrl":                  d.ClientURL,
		"customUrl":                  d.CustomURL,
		"accountManager":             d.AccountManager,
		"accountManagerEmail":        d.AccountManagerEmail,
		"implementationManager":      d.ImplementationManager,
		"implementationManagerEmail": d.ImplementationManagerEmail,
		"technologyOwner":            d.TechnologyOwner,
		"technologyOwnerEmail":       d.TechnologyOwnerEmail,
		"authenticationMethod":       d.AuthenticationMethod,
		"poType":                     d.POType,
		"poNumber":                   d.PONumber,
		"erpSystem":                  d.ERPSystem,
		"sso":                        d.SSO,
		"hrisSystem":                 d.HRISSystem,
	}
}

// ValidationResult is the outcome of validating one record.
//
// Valid is true iff Errors is empty. FieldErrors holds at most one short
// message per field. Warnings never affect Valid.
type ValidationResult struct {
	Valid       bool              `json:"valid"`
	Errors      []string          `json:"errors"`
	FieldErrors map[string]string `json:"fieldErrors"`
	Warnings    []string          `json:"warnings"`
}

func newResult() *ValidationResult {
	return &ValidationResult{
		Valid:       true,
		Errors:      []string{},
		FieldErrors: map[string]string{},
		Warnings:    []string{},
	}
}

func (r *ValidationResult) addError(field, sentence, short string) {
	r.Valid = false
	r.Errors = append(r.Errors, sentence)
	r.FieldErrors[field] = short
}

func (r *ValidationResult) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// HasWarnings reports whether any advisory messages were produced.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}
