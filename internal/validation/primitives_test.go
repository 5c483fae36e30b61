package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.domain.org", true},
		{"a@b.co", true},
		{"", false},
		{"userexample.com", false},
		{"user@", false},
		{"user@domain", false},
		{"@domain.com", false},
		{"user name@example.com", false},
		{"user@@example.com", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidEmail(tc.input))
		})
	}
}

func TestIsValidURL(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"https://example.com", true},
		{"http://localhost:8080/path?q=1", true},
		{"HTTPS://EXAMPLE.COM", true},
		{"", false},
		{"example.com", false},
		{"www.example.com/path", false},
		{"ftp://files.example.com", false},
		{"mailto:someone@example.com", false},
		{"file:///etc/hosts", false},
		{"http://", false},
		{"https://exa mple.com", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidURL(tc.input))
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"+1 (555) 123-4567", true},
		{"555.123.4567", true},
		{"1234567", true},
		{"", false},
		{"123456", false},
		{"555-CALL-NOW", false},
		{"+44 20 7946 0958 ext 2", false},
		{"() - + .", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidPhone(tc.input))
		})
	}
}

func TestIsValidCode(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"ACME", true},
		{"acme_01-east", true},
		{"", false},
		{"acme corp", false},
		{"acme.corp", false},
		{"acme/1", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidCode(tc.input))
		})
	}
}
