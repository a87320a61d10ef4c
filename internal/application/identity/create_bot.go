package identity

import (
	"context"
	"time"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
	iddomain "github.com/7Spade/tortoise/internal/domain/identity"
)

// CreateBotInput names the owning user and the bot's display name.
type CreateBotInput struct {
	OwnerUserID domain.UserID
	DisplayName string
}

// CreateBotResult carries the new bot record.
type CreateBotResult struct {
	Bot *iddomain.Bot
}

// CreateBot provisions a machine principal owned by an existing active user.
type CreateBot struct {
	identities ports.IdentityRepository
}

// NewCreateBot builds the use case.
func NewCreateBot(identities ports.IdentityRepository) *CreateBot {
	return &CreateBot{identities: identities}
}

// Execute creates and persists the bot.
func (uc *CreateBot) Execute(ctx context.Context, input CreateBotInput) (*CreateBotResult, error) {
	displayName, err := domain.NewDisplayName(input.DisplayName)
	if err != nil {
		return nil, err
	}
	owner, err := uc.identities.FindUserByID(ctx, input.OwnerUserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domerrors.NewNotFound("user", input.OwnerUserID.String())
	}
	if !owner.IsActive() {
		return nil, domerrors.NewAuthorization("owner account is disabled")
	}
	bot := iddomain.NewBot(owner.ID, displayName, time.Now().UTC())
	if err := uc.identities.SaveBot(ctx, bot); err != nil {
		return nil, err
	}
	return &CreateBotResult{Bot: bot}, nil
}
