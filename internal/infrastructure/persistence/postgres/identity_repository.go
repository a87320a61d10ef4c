package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	"github.com/7Spade/tortoise/internal/domain/identity"
)

const (
	listUsersSQL = `SELECT id, email, display_name, password_hash, status, created_at, updated_at
FROM users ORDER BY created_at`

	getUserByIDSQL = `SELECT id, email, display_name, password_hash, status, created_at, updated_at
FROM users WHERE id = $1`

	getUserByEmailSQL = `SELECT id, email, display_name, password_hash, status, created_at, updated_at
FROM users WHERE email = $1`

	upsertUserSQL = `INSERT INTO users (id, email, display_name, password_hash, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE
SET email = EXCLUDED.email,
    display_name = EXCLUDED.display_name,
    password_hash = EXCLUDED.password_hash,
    status = EXCLUDED.status,
    updated_at = EXCLUDED.updated_at`

	deleteUserSQL = `DELETE FROM users WHERE id = $1`

	listBotsSQL = `SELECT id, owner_user_id, display_name, status, created_at, updated_at
FROM bots ORDER BY created_at`

	getBotByIDSQL = `SELECT id, owner_user_id, display_name, status, created_at, updated_at
FROM bots WHERE id = $1`

	upsertBotSQL = `INSERT INTO bots (id, owner_user_id, display_name, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE
SET display_name = EXCLUDED.display_name,
    status = EXCLUDED.status,
    updated_at = EXCLUDED.updated_at`

	deleteBotSQL = `DELETE FROM bots WHERE id = $1`
)

// IdentityRepository persists the principal directory: users, organizations,
// and bots. Organization persistence lives in organization_repository.go.
type IdentityRepository struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository builds the repository.
func NewIdentityRepository(pool *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{pool: pool}
}

// FindUsers lists every user record.
func (r *IdentityRepository) FindUsers(ctx context.Context) ([]*identity.User, error) {
	rows, err := r.pool.Query(ctx, listUsersSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*identity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// FindUserByID returns the user or nil when absent.
func (r *IdentityRepository) FindUserByID(ctx context.Context, id domain.UserID) (*identity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, getUserByIDSQL, id.UUID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// FindUserByEmail returns the user or nil when absent.
func (r *IdentityRepository) FindUserByEmail(ctx context.Context, email domain.Email) (*identity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, getUserByEmailSQL, email.String()))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// SaveUser upserts a user record.
func (r *IdentityRepository) SaveUser(ctx context.Context, user *identity.User) error {
	_, err := r.pool.Exec(ctx, upsertUserSQL,
		user.ID.UUID,
		user.Email.String(),
		user.DisplayName.String(),
		user.PasswordHash,
		user.Status.String(),
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

// DeleteUser removes a user record.
func (r *IdentityRepository) DeleteUser(ctx context.Context, id domain.UserID) error {
	_, err := r.pool.Exec(ctx, deleteUserSQL, id.UUID)
	return err
}

// FindBots lists every bot record.
func (r *IdentityRepository) FindBots(ctx context.Context) ([]*identity.Bot, error) {
	rows, err := r.pool.Query(ctx, listBotsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*identity.Bot
	for rows.Next() {
		b, err := scanBot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// FindBotByID returns the bot or nil when absent.
func (r *IdentityRepository) FindBotByID(ctx context.Context, id domain.BotID) (*identity.Bot, error) {
	b, err := scanBot(r.pool.QueryRow(ctx, getBotByIDSQL, id.UUID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// SaveBot upserts a bot record.
func (r *IdentityRepository) SaveBot(ctx context.Context, bot *identity.Bot) error {
	_, err := r.pool.Exec(ctx, upsertBotSQL,
		bot.ID.UUID,
		bot.OwnerUserID.UUID,
		bot.DisplayName.String(),
		bot.Status.String(),
		bot.CreatedAt,
		bot.UpdatedAt,
	)
	return err
}

// DeleteBot removes a bot record.
func (r *IdentityRepository) DeleteBot(ctx context.Context, id domain.BotID) error {
	_, err := r.pool.Exec(ctx, deleteBotSQL, id.UUID)
	return err
}

func scanUser(row pgx.Row) (*identity.User, error) {
	var (
		id           uuid.UUID
		rawEmail     string
		rawName      string
		passwordHash string
		status       string
		createdAt    time.Time
		updatedAt    time.Time
	)
	if err := row.Scan(&id, &rawEmail, &rawName, &passwordHash, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	userID, err := domain.ParseUserID(id.String())
	if err != nil {
		return nil, err
	}
	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}
	name, err := domain.NewDisplayName(rawName)
	if err != nil {
		return nil, err
	}
	return &identity.User{
		ID:           userID,
		Email:        email,
		DisplayName:  name,
		PasswordHash: passwordHash,
		Status:       domain.IdentityStatus(status),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func scanBot(row pgx.Row) (*identity.Bot, error) {
	var (
		id        uuid.UUID
		ownerID   uuid.UUID
		rawName   string
		status    string
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&id, &ownerID, &rawName, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	botID, err := domain.ParseBotID(id.String())
	if err != nil {
		return nil, err
	}
	userID, err := domain.ParseUserID(ownerID.String())
	if err != nil {
		return nil, err
	}
	name, err := domain.NewDisplayName(rawName)
	if err != nil {
		return nil, err
	}
	return &identity.Bot{
		ID:          botID,
		OwnerUserID: userID,
		DisplayName: name,
		Status:      domain.IdentityStatus(status),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// Ensure IdentityRepository implements ports.IdentityRepository.
var _ ports.IdentityRepository = (*IdentityRepository)(nil)
