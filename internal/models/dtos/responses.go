package dtos

import (
	"time"

	"wecelebrate/console/internal/mapping"
	"wecelebrate/console/internal/validation"
)

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

type ValidateFieldResponse struct {
	Field string  `json:"field"`
	Valid bool    `json:"valid"`
	Error *string `json:"error"`
}

type ClientResponse struct {
	ID        string                      `json:"id"`
	Config    validation.ClientConfigData `json:"config"`
	Warnings  []string                    `json:"warnings"`
	CreatedAt string                      `json:"createdAt"`
	UpdatedAt string                      `json:"updatedAt"`
}

type SiteResponse struct {
	ID              string `json:"id"`
	ClientID        string `json:"clientId"`
	Name            string `json:"name"`
	URL             string `json:"url,omitempty"`
	IsActive        bool   `json:"isActive"`
	ActiveRuleCount int    `json:"activeRuleCount"`
	CreatedAt       string `json:"createdAt"`
}

type MappingRuleResponse struct {
	mapping.MappingRule
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SelectSiteResponse has a nil SiteID when no active rule matched.
type SelectSiteResponse struct {
	Matched bool    `json:"matched"`
	SiteID  *string `json:"siteId"`
	RuleID  *string `json:"ruleId"`
}

type RuleTestResponse struct {
	SelectSiteResponse
	Trace []mapping.Trace `json:"trace"`
}

type Assignment struct {
	EmployeeID string  `json:"employeeId"`
	Matched    bool    `json:"matched"`
	SiteID     *string `json:"siteId"`
	RuleID     *string `json:"ruleId"`
}

type AssignmentsResponse struct {
	Assignments []Assignment `json:"assignments"`
	Matched     int          `json:"matched"`
	Unmatched   int          `json:"unmatched"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	TokenID   string    `json:"tokenId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
