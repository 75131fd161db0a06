package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// JoinCodeLength is the length of generated join codes.
	JoinCodeLength = 6

	// Accepted codes may be longer than generated ones; seeded groups use
	// readable codes such as "REACT101".
	minJoinCodeLength = 4
	maxJoinCodeLength = 16

	joinCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GenerateJoinCode returns a random upper-case base-36 code of JoinCodeLength characters.
// Uniqueness is the registry's concern.
func GenerateJoinCode() (string, error) {
	var b strings.Builder
	b.Grow(JoinCodeLength)

	max := big.NewInt(int64(len(joinCodeAlphabet)))
	for range JoinCodeLength {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate join code: %w", err)
		}
		b.WriteByte(joinCodeAlphabet[n.Int64()])
	}

	return b.String(), nil
}

// NormalizeJoinCode trims and upper-cases user input so lookups are case-insensitive.
func NormalizeJoinCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidJoinCode reports whether code is a normalized alphanumeric code of acceptable length.
func ValidJoinCode(code string) bool {
	if len(code) < minJoinCodeLength || len(code) > maxJoinCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if !strings.ContainsRune(joinCodeAlphabet, rune(code[i])) {
			return false
		}
	}
	return true
}
