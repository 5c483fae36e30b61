package constants

import "net/http"

// Service error codes
const (
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeInvalidRule        = "INVALID_RULE"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeClientNotFound     = "CLIENT_NOT_FOUND"
	ErrCodeSiteNotFound       = "SITE_NOT_FOUND"
	ErrCodeRuleNotFound       = "RULE_NOT_FOUND"
	ErrCodeSiteClientMismatch = "SITE_CLIENT_MISMATCH"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
)

// ErrorMessages maps error codes to human-readable messages.
var ErrorMessages = map[string]string{
	ErrCodeValidationFailed:   "The client configuration has validation errors",
	ErrCodeInvalidRule:        "The mapping rule is invalid",
	ErrCodeBadRequest:         "The request is invalid",
	ErrCodeNotFound:           "The requested resource was not found",
	ErrCodeClientNotFound:     "Client not found",
	ErrCodeSiteNotFound:       "Site not found",
	ErrCodeRuleNotFound:       "Mapping rule not found",
	ErrCodeSiteClientMismatch: "The site does not belong to this client",
	ErrCodeConflict:           "A record with the same unique value already exists",
	ErrCodeUnauthorized:       "Authentication is required",
	ErrCodeForbidden:          "You do not have permission to perform this action",
	ErrCodeDatabaseError:      "A database error occurred",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := ErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}

// HTTPStatusForCode maps an error code to the HTTP status a handler returns.
func HTTPStatusForCode(code string) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeInvalidRule, ErrCodeBadRequest, ErrCodeSiteClientMismatch:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeClientNotFound, ErrCodeSiteNotFound, ErrCodeRuleNotFound:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
