// Package redact masks values that must not reach logs verbatim. Join codes
// grant membership to anyone holding them, so they are shortened to a
// recognisable prefix; stack traces and e-mail addresses are replaced.
package redact

import (
	"regexp"
	"strings"
)

// Placeholders for redacted values
const (
	RedactionPlaceholder = "[REDACTED]"
	RedactedEmail        = "[REDACTED_EMAIL]"
	RedactedStackTrace   = "[STACK_TRACE_REDACTED]"
)

// visibleCodePrefix is how many leading characters of a join code stay readable.
const visibleCodePrefix = 2

var (
	// "code":"REACT101" in JSON payloads
	jsonCodeRegex = regexp.MustCompile(`("code"\s*:\s*")([^"]*)(")`)

	// code=REACT101 in key/value text
	kvCodeRegex = regexp.MustCompile(`(?i)(\bcode=)([A-Za-z0-9]+)`)

	emailRegex      = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	stackTraceRegex = regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`)
)

// JoinCode masks all but the first characters of code, keeping its length.
func JoinCode(code string) string {
	if len(code) <= visibleCodePrefix {
		return strings.Repeat("*", len(code))
	}
	return code[:visibleCodePrefix] + strings.Repeat("*", len(code)-visibleCodePrefix)
}

// String redacts join codes, e-mail addresses and stack traces from input.
func String(input string) string {
	if input == "" {
		return input
	}

	result := jsonCodeRegex.ReplaceAllStringFunc(input, func(m string) string {
		parts := jsonCodeRegex.FindStringSubmatch(m)
		return parts[1] + JoinCode(parts[2]) + parts[3]
	})
	result = kvCodeRegex.ReplaceAllStringFunc(result, func(m string) string {
		parts := kvCodeRegex.FindStringSubmatch(m)
		return parts[1] + JoinCode(parts[2])
	})
	result = emailRegex.ReplaceAllString(result, RedactedEmail)
	result = stackTraceRegex.ReplaceAllString(result, RedactedStackTrace)

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
