package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateClientConfiguration_ShortName(t *testing.T) {
	result := ValidateClientConfiguration(ClientConfigData{ClientName: "A", IsActive: true})

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Client name must be at least 2 characters")
	assert.Equal(t, "Must be at least 2 characters", result.FieldErrors["clientName"])
}

func TestValidateClientConfiguration_BadEmail(t *testing.T) {
	result := ValidateClientConfiguration(ClientConfigData{
		ClientName:   "Acme Corp",
		ContactEmail: "bad",
		IsActive:     true,
	})

	assert.False(t, result.Valid)
	assert.Contains(t, result.FieldErrors["contactEmail"], "Invalid email format")
	assert.Equal(t, []string{"Contact email has an invalid email format"}, result.Errors)
}

func TestValidateClientConfiguration_ManagerWithoutEmail(t *testing.T) {
	result := ValidateClientConfiguration(ClientConfigData{
		ClientName:          "Acme",
		AccountManager:      "John",
		AccountManagerEmail: "",
		IsActive:            true,
	})

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Contains(t, result.Warnings, "Account manager name is set but email is missing")
}

func TestValidateClientConfiguration_RequiredName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		result := ValidateClientConfiguration(ClientConfigData{ClientName: name})
		assert.False(t, result.Valid)
		assert.Equal(t, "Client name is required", result.FieldErrors["clientName"])
	}
}

func TestValidateClientConfiguration_Warnings(t *testing.T) {
	result := ValidateClientConfiguration(ClientConfigData{
		ClientName:            "Acme",
		Country:               "us",
		AuthenticationMethod:  "kerberos",
		ERPSystem:             "Acumatica",
		SSO:                   "okta",
		HRISSystem:            "workday",
		ImplementationManager: "Jane",
		TechnologyOwner:       "Sam",
		TechnologyOwnerEmail:  "sam@acme.com",
		POType:                "blanket",
	})

	assert.True(t, result.Valid)
	assert.Equal(t, []string{
		`Country code "us" should be two uppercase letters (e.g. US, GB)`,
		`Authentication method "kerberos" is not in the list of recognized values`,
		`ERP system "Acumatica" is not in the list of recognized values`,
		"Implementation manager name is set but email is missing",
		"PO type is set but PO number is missing",
	}, result.Warnings)
}

func TestValidateClientConfiguration_CountryCodeOnlyWarnsForPairs(t *testing.T) {
	for _, country := range []string{"US", "USA", "United States", "u"} {
		result := ValidateClientConfiguration(ClientConfigData{ClientName: "Acme", Country: country})
		assert.Empty(t, result.Warnings, country)
	}
}

func TestValidateClientConfiguration_AuthenticationMethodCaseInsensitive(t *testing.T) {
	result := ValidateClientConfiguration(ClientConfigData{ClientName: "Acme", AuthenticationMethod: "SAML"})
	assert.Empty(t, result.Warnings)
}

func TestValidateClientConfiguration_ErrorOrderFollowsRuleTable(t *testing.T) {
	result := ValidateClientConfiguration(ClientConfigData{
		ClientName:   "Acme <Corp>",
		ClientCode:   "acme corp",
		ContactPhone: "call me",
		Description:  strings.Repeat("x", 501),
		ClientURL:    "acme.com",
	})

	assert.False(t, result.Valid)
	assert.Equal(t, []string{
		"Client name contains invalid characters",
		"Client code can only contain letters, numbers, hyphens, and underscores",
		"Contact phone has an invalid phone number format",
		"Client URL must be a valid URL starting with http:// or https://",
		"Description must be 500 characters or less",
	}, result.Errors)
	assert.Len(t, result.FieldErrors, 5)
}

func TestValidateClientConfiguration_WhitespaceOptionalFieldsAreValid(t *testing.T) {
	values := map[string]string{"clientName": "Acme"}
	for _, rule := range Rules() {
		if rule.Required {
			continue
		}
		values[rule.Field] = "   "
	}

	result := ValidateValues(values)
	assert.True(t, result.Valid)
	assert.Empty(t, result.FieldErrors)
}

func TestValidateClientConfiguration_OneErrorPerField(t *testing.T) {
	// Too short and an invalid character: only the first failing check reports.
	result := ValidateClientConfiguration(ClientConfigData{ClientName: "!"})

	assert.Equal(t, []string{"Client name must be at least 2 characters"}, result.Errors)
}

func TestValidateField_MatchesComposite(t *testing.T) {
	samples := []string{
		"", "   ", "A", "Acme Corp", "bad", "a@b.co", "acme_01",
		"https://acme.com", "acme.com", "+1 (555) 123-4567", "12-34",
		"us", "US", "SAP", "Acme <Corp>",
		strings.Repeat("x", 21), strings.Repeat("x", 51), strings.Repeat("x", 101),
		strings.Repeat("x", 256), strings.Repeat("x", 501),
		"https://acme.com/" + strings.Repeat("p", 250),
	}

	for _, rule := range Rules() {
		for _, sample := range samples {
			values := map[string]string{"clientName": "Acme Corp"}
			values[rule.Field] = sample

			msg, invalid := ValidateField(rule.Field, sample)
			result := ValidateValues(values)
			fieldMsg, hasFieldErr := result.FieldErrors[rule.Field]

			assert.Equal(t, hasFieldErr, invalid, "field=%s value=%q", rule.Field, sample)
			assert.Equal(t, fieldMsg, msg, "field=%s value=%q", rule.Field, sample)
			assert.Equal(t, len(result.Errors) == 0, result.Valid)
		}
	}
}

func TestValidateField_Values(t *testing.T) {
	msg, invalid := ValidateField("contactEmail", "bad")
	assert.True(t, invalid)
	assert.Equal(t, "Invalid email format", msg)

	_, invalid = ValidateField("contactEmail", nil)
	assert.False(t, invalid)

	_, invalid = ValidateField("unknownField", "anything")
	assert.False(t, invalid)

	msg, invalid = ValidateField("clientName", nil)
	assert.True(t, invalid)
	assert.Equal(t, "Client name is required", msg)

	_, invalid = ValidateField("postalCode", 12345)
	assert.False(t, invalid)
}

func TestRulesReturnsCopy(t *testing.T) {
	rules := Rules()
	rules[0].Required = false

	rule, ok := RuleFor("clientName")
	require.True(t, ok)
	assert.True(t, rule.Required)
}

func TestAllowListsCannotBeChangedByCallers(t *testing.T) {
	rules := Rules()
	for i := range rules {
		if rules[i].Field == "erpSystem" {
			rules[i].AllowList[0] = "Homegrown"
		}
	}
	rule, ok := RuleFor("erpSystem")
	require.True(t, ok)
	rule.AllowList[1] = "Homegrown"

	lists := AllowLists()
	lists["erpSystems"][2] = "Homegrown"

	result := ValidateClientConfiguration(ClientConfigData{ClientName: "Acme", ERPSystem: "Homegrown"})
	assert.Len(t, result.Warnings, 1)

	result = ValidateClientConfiguration(ClientConfigData{ClientName: "Acme", ERPSystem: "SAP"})
	assert.Empty(t, result.Warnings)
	assert.Contains(t, AllowLists()["erpSystems"], "Oracle")
}
