package constants

type (
	RequestSource string
	APIStatus     string
	CachePrefix   string
)

const (
	RequestSourceAPIKey RequestSource = "API_KEY"
	RequestSourceJWT    RequestSource = "JWT"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixActiveRules  CachePrefix = "MAPPING_RULES_"
	CachePrefixRevokedToken CachePrefix = "REVOKED_TOKEN_"
)
