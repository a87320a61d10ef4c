// Package identity holds the use cases for the principal directory:
// registration, sign-in, and bot provisioning.
package identity

import (
	"context"
	"time"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
	iddomain "github.com/7Spade/tortoise/internal/domain/identity"
)

const minPasswordLength = 8

// RegisterUserInput carries the raw signup fields. Validation happens in the
// value object constructors.
type RegisterUserInput struct {
	Email       string
	DisplayName string
	Password    string
}

// RegisterUserResult carries the new directory record.
type RegisterUserResult struct {
	User *iddomain.User
}

// RegisterUser creates a user record with an Argon2id password hash.
type RegisterUser struct {
	identities ports.IdentityRepository
	hasher     ports.PasswordHasher
}

// NewRegisterUser builds the use case.
func NewRegisterUser(identities ports.IdentityRepository, hasher ports.PasswordHasher) *RegisterUser {
	return &RegisterUser{identities: identities, hasher: hasher}
}

// Execute validates the input, rejects duplicate emails, and persists the
// new user.
func (uc *RegisterUser) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserResult, error) {
	email, err := domain.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}
	displayName, err := domain.NewDisplayName(input.DisplayName)
	if err != nil {
		return nil, err
	}
	if len(input.Password) < minPasswordLength {
		return nil, domerrors.NewValidation("password", "must be at least 8 characters")
	}

	existing, err := uc.identities.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.NewInvariantViolation("email is already registered")
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user := iddomain.NewUser(email, displayName, hash, time.Now().UTC())
	if err := uc.identities.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return &RegisterUserResult{User: user}, nil
}
