package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
)

func TestNewEmail(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"valid", "alice@example.com", "alice@example.com", false},
		{"uppercased is normalized", "Alice@Example.COM", "alice@example.com", false},
		{"surrounding whitespace trimmed", "  bob@example.com ", "bob@example.com", false},
		{"empty", "", "", true},
		{"missing domain", "alice@", "", true},
		{"missing at sign", "alice.example.com", "", true},
		{"too long", strings.Repeat("a", MaxEmailLength) + "@example.com", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			email, err := NewEmail(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				var ve *domerrors.ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, "email", ve.Field)
				assert.True(t, email.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, email.String())
		})
	}
}

func TestNewDisplayName(t *testing.T) {
	name, err := NewDisplayName("  Ada Lovelace ")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", name.String())

	_, err = NewDisplayName("   ")
	require.Error(t, err)

	_, err = NewDisplayName(strings.Repeat("x", MaxDisplayNameLength+1))
	require.Error(t, err)
}

func TestNewModuleKey(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"valid", "billing", "billing", false},
		{"snake case", "billing_reports_v2", "billing_reports_v2", false},
		{"uppercase is lowered", "Billing", "billing", false},
		{"empty", "", "", true},
		{"leading digit", "2fast", "", true},
		{"hyphenated", "billing-reports", "", true},
		{"too long", strings.Repeat("a", MaxModuleKeyLength+1), "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, err := NewModuleKey(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, key.String())
		})
	}
}

func TestNewOrganizationSlug(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"valid", "acme-corp", "acme-corp", false},
		{"single word", "acme", "acme", false},
		{"uppercase is lowered", "Acme-Corp", "acme-corp", false},
		{"empty", "", "", true},
		{"leading hyphen", "-acme", "", true},
		{"trailing hyphen", "acme-", "", true},
		{"double hyphen", "acme--corp", "", true},
		{"underscore", "acme_corp", "", true},
		{"too long", strings.Repeat("a", MaxSlugLength+1), "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slug, err := NewOrganizationSlug(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, slug.String())
		})
	}
}

func TestNewOrganizationName(t *testing.T) {
	name, err := NewOrganizationName(" Acme Corp ")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", name.String())

	_, err = NewOrganizationName("")
	require.Error(t, err)
}
