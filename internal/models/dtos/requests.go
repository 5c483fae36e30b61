package dtos

import "wecelebrate/console/internal/mapping"

type ValidateFieldRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

type SiteRequest struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	IsActive *bool  `json:"isActive"`
}

type MappingRuleRequest struct {
	SiteID     string              `json:"siteId"`
	Priority   int                 `json:"priority"`
	Conditions []mapping.Condition `json:"conditions"`
	IsActive   *bool               `json:"isActive"`
	IsDefault  bool                `json:"isDefault"`
}

// EmployeeAttributesRequest carries the attributes a rule set is tested against.
type EmployeeAttributesRequest struct {
	Attributes map[string]string `json:"attributes"`
}

type EmployeeRecord struct {
	EmployeeID string            `json:"employeeId"`
	Attributes map[string]string `json:"attributes"`
}

type AssignEmployeesRequest struct {
	Employees []EmployeeRecord `json:"employees"`
}

type IssueTokenRequest struct {
	Subject string `json:"subject"`
	TTL     string `json:"ttl,omitempty"`
}
