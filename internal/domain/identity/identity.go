// Package identity holds the directory records for authenticatable
// principals: users and bots. These are plain entities, not aggregates — the
// heavy invariants live in the workspace, organization, and membership
// packages.
package identity

import (
	"time"

	"github.com/7Spade/tortoise/internal/domain"
)

// User is a directory record for a human principal.
type User struct {
	ID           domain.UserID
	Email        domain.Email
	DisplayName  domain.DisplayName
	PasswordHash string
	Status       domain.IdentityStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates an active user record stamped with now.
func NewUser(email domain.Email, displayName domain.DisplayName, passwordHash string, now time.Time) *User {
	return &User{
		ID:           domain.NewUserID(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		Status:       domain.IdentityActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsActive reports whether the user may authenticate.
func (u *User) IsActive() bool { return u.Status == domain.IdentityActive }

// Bot is a directory record for a machine principal owned by a user.
type Bot struct {
	ID          domain.BotID
	OwnerUserID domain.UserID
	DisplayName domain.DisplayName
	Status      domain.IdentityStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBot creates an active bot record stamped with now.
func NewBot(owner domain.UserID, displayName domain.DisplayName, now time.Time) *Bot {
	return &Bot{
		ID:          domain.NewBotID(),
		OwnerUserID: owner,
		DisplayName: displayName,
		Status:      domain.IdentityActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsActive reports whether the bot may act.
func (b *Bot) IsActive() bool { return b.Status == domain.IdentityActive }
