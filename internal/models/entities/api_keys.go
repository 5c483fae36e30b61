package entities

import "wecelebrate/console/internal/constants"

type ApiKey struct {
	ApiKey string         `db:"id"`
	Name   string         `db:"name"`
	Role   constants.Role `db:"role"`
	Status bool           `db:"status"`
}

// SiteRuleCount is one row of the active-rules-per-site report.
type SiteRuleCount struct {
	SiteID    string `db:"site_id"`
	RuleCount int    `db:"rule_count"`
}
