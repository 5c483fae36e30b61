package validation

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	codePattern       = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	clientNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-_&.']+$`)
	countryPattern    = regexp.MustCompile(`^[A-Z]{2}$`)
)

const phoneMinDigits = 7

// IsValidEmail reports whether s has the local@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidURL accepts only absolute http and https URLs with a host.
func IsValidURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}
	return u.Host != ""
}

// IsValidPhone allows digits, spaces, hyphens, plus signs, parentheses and
// periods, and requires at least seven digits.
func IsValidPhone(s string) bool {
	digits := 0
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == ' ', c == '-', c == '+', c == '(', c == ')', c == '.':
		default:
			return false
		}
	}
	return digits >= phoneMinDigits
}

// IsValidCode reports whether s is a non-empty run of letters, digits,
// hyphens and underscores.
func IsValidCode(s string) bool {
	return codePattern.MatchString(s)
}

func isValidClientName(s string) bool {
	return clientNamePattern.MatchString(s)
}

func isUppercaseCountryCode(s string) bool {
	return countryPattern.MatchString(s)
}
