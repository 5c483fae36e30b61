package constants

// Queries are written with ? placeholders and passed through sqlx Rebind.
const (
	GetAPIKeyByID = `
	SELECT id, name, role, status FROM api_keys WHERE id = ?
	`

	CountActiveMappingRulesBySite = `
	SELECT site_id, COUNT(*) AS rule_count
	FROM mapping_rules
	WHERE client_id = ? AND is_active = ?
	GROUP BY site_id
	`
)
