package redact_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/studygroup-api/internal/redact"
	"github.com/stretchr/testify/assert"
)

func TestJoinCode(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"", ""},
		{"A", "*"},
		{"AB", "**"},
		{"X7K2QZ", "X7****"},
		{"REACT101", "RE******"},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.expected, redact.JoinCode(tc.code))
		})
	}
}

func TestRedactString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no sensitive data",
			input:    "group created",
			expected: "group created",
		},
		{
			name:     "join code in JSON payload",
			input:    `{"name":"Go","code":"X7K2QZ"}`,
			expected: `{"name":"Go","code":"X7****"}`,
		},
		{
			name:     "join code with spacing",
			input:    `{"code": "REACT101"}`,
			expected: `{"code": "RE******"}`,
		},
		{
			name:     "join code in key value text",
			input:    "lookup failed for code=DATA606",
			expected: "lookup failed for code=DA*****",
		},
		{
			name:     "email address",
			input:    "unknown user gabriela@example.com",
			expected: "unknown user " + redact.RedactedEmail,
		},
		{
			name:     "stack trace",
			input:    "panic: boom\n\tmain.go:12\n\tmain.go:40",
			expected: redact.RedactedStackTrace,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, redact.String(tc.input))
		})
	}
}

func TestRedactError(t *testing.T) {
	assert.Equal(t, "", redact.Error(nil))

	err := fmt.Errorf("join rejected: %w", errors.New("code=ARCH303 mismatch"))
	assert.Equal(t, "join rejected: code=AR***** mismatch", redact.Error(err))
}

func TestRedactLeavesIDsAlone(t *testing.T) {
	in := `{"list_id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","name":"Hooks"}`
	assert.Equal(t, in, redact.String(in))
}
