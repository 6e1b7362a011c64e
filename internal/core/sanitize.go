// ABOUTME: Query input validation and sanitization
// ABOUTME: Length limits, script/URI scheme rejection, and injection pattern checks
package core

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrEmptyQuery rejects blank input before any processing runs.
	ErrEmptyQuery = errors.New("query cannot be empty")
	// ErrUnsafeQuery rejects input matching script or injection patterns.
	ErrUnsafeQuery = errors.New("query contains potentially unsafe content")
)

var (
	scriptRE      = regexp.MustCompile(`(?i)<script|javascript:|data:|vbscript:`)
	specialCharRE = regexp.MustCompile(`[<>"'(){}\[\];]`)
	sqlPatternREs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(union|select|insert|update|delete|drop|create|alter)\b`),
		regexp.MustCompile(`--|\*/|\*\*`),
		regexp.MustCompile(`(?i)\bor\s+1=1\b|\band\s+1=1\b`),
	}
)

// SanitizeQuery validates raw user input and returns the trimmed query.
func SanitizeQuery(raw string, maxLength int) (string, error) {
	q := strings.TrimSpace(raw)
	if q == "" {
		return "", ErrEmptyQuery
	}
	if len(q) > maxLength {
		return "", fmt.Errorf("query too long (max %d characters)", maxLength)
	}
	if scriptRE.MatchString(q) {
		return "", ErrUnsafeQuery
	}
	// Excessive special characters suggest an injection attempt.
	if len(specialCharRE.FindAllString(q, -1))*10 > len(q)*3 {
		return "", ErrUnsafeQuery
	}
	for _, re := range sqlPatternREs {
		if re.MatchString(q) {
			return "", ErrUnsafeQuery
		}
	}
	return q, nil
}
