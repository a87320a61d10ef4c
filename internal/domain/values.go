package domain

import (
	"regexp"
	"strings"

	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
)

var (
	emailPattern     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	moduleKeyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	slugPattern      = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Validation limits.
const (
	MaxEmailLength       = 254
	MaxDisplayNameLength = 100
	MaxModuleKeyLength   = 64
	MaxOrgNameLength     = 255
	MaxSlugLength        = 63
)

// Email is a validated, lowercased email address.
type Email struct {
	value string
}

// NewEmail validates and normalizes raw into an Email.
func NewEmail(raw string) (Email, error) {
	s := strings.TrimSpace(strings.ToLower(raw))
	if s == "" {
		return Email{}, domerrors.NewValidation("email", "must not be empty")
	}
	if len(s) > MaxEmailLength {
		return Email{}, domerrors.NewValidation("email", "exceeds maximum length")
	}
	if !emailPattern.MatchString(s) {
		return Email{}, domerrors.NewValidation("email", "is not a valid address")
	}
	return Email{value: s}, nil
}

// String returns the canonical form.
func (e Email) String() string { return e.value }

// IsZero reports whether the email is unset.
func (e Email) IsZero() bool { return e.value == "" }

// DisplayName is a human-facing name, trimmed and length-bounded.
type DisplayName struct {
	value string
}

// NewDisplayName validates raw into a DisplayName.
func NewDisplayName(raw string) (DisplayName, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return DisplayName{}, domerrors.NewValidation("display_name", "must not be empty")
	}
	if len(s) > MaxDisplayNameLength {
		return DisplayName{}, domerrors.NewValidation("display_name", "exceeds maximum length")
	}
	return DisplayName{value: s}, nil
}

// String returns the display name.
func (n DisplayName) String() string { return n.value }

// IsZero reports whether the name is unset.
func (n DisplayName) IsZero() bool { return n.value == "" }

// ModuleKey is the machine name of a workspace module (snake_case).
type ModuleKey struct {
	value string
}

// NewModuleKey validates raw into a ModuleKey.
func NewModuleKey(raw string) (ModuleKey, error) {
	s := strings.TrimSpace(strings.ToLower(raw))
	if s == "" {
		return ModuleKey{}, domerrors.NewValidation("module_key", "must not be empty")
	}
	if len(s) > MaxModuleKeyLength {
		return ModuleKey{}, domerrors.NewValidation("module_key", "exceeds maximum length")
	}
	if !moduleKeyPattern.MatchString(s) {
		return ModuleKey{}, domerrors.NewValidation("module_key", "must be lowercase snake_case starting with a letter")
	}
	return ModuleKey{value: s}, nil
}

// String returns the key.
func (k ModuleKey) String() string { return k.value }

// IsZero reports whether the key is unset.
func (k ModuleKey) IsZero() bool { return k.value == "" }

// OrganizationName is a validated organization display name.
type OrganizationName struct {
	value string
}

// NewOrganizationName validates raw into an OrganizationName.
func NewOrganizationName(raw string) (OrganizationName, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return OrganizationName{}, domerrors.NewValidation("organization_name", "must not be empty")
	}
	if len(s) > MaxOrgNameLength {
		return OrganizationName{}, domerrors.NewValidation("organization_name", "exceeds maximum length")
	}
	return OrganizationName{value: s}, nil
}

// String returns the name.
func (n OrganizationName) String() string { return n.value }

// IsZero reports whether the name is unset.
func (n OrganizationName) IsZero() bool { return n.value == "" }

// OrganizationSlug is a URL-safe organization handle (kebab-case).
type OrganizationSlug struct {
	value string
}

// NewOrganizationSlug validates raw into an OrganizationSlug.
func NewOrganizationSlug(raw string) (OrganizationSlug, error) {
	s := strings.TrimSpace(strings.ToLower(raw))
	if s == "" {
		return OrganizationSlug{}, domerrors.NewValidation("organization_slug", "must not be empty")
	}
	if len(s) > MaxSlugLength {
		return OrganizationSlug{}, domerrors.NewValidation("organization_slug", "exceeds maximum length")
	}
	if !slugPattern.MatchString(s) {
		return OrganizationSlug{}, domerrors.NewValidation("organization_slug", "must be lowercase kebab-case")
	}
	return OrganizationSlug{value: s}, nil
}

// String returns the slug.
func (s OrganizationSlug) String() string { return s.value }

// IsZero reports whether the slug is unset.
func (s OrganizationSlug) IsZero() bool { return s.value == "" }
