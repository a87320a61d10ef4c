package handlers

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation limits.
const (
	MaxEmailLength    = 254
	MaxPasswordLength = 128
)

// validate checks request DTO struct tags before input reaches the domain.
var validate = validator.New()

// SanitizeEmail trims and lowercases email; returns empty if invalid length.
func SanitizeEmail(email string) string {
	s := strings.TrimSpace(strings.ToLower(email))
	if len(s) > MaxEmailLength {
		return ""
	}
	return s
}

// SanitizePassword trims password; returns empty if over max length.
func SanitizePassword(password string) string {
	s := strings.TrimSpace(password)
	if len(s) > MaxPasswordLength {
		return ""
	}
	return s
}
