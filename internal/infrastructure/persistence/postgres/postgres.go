// Package postgres implements the repository ports on pgx. Aggregates are
// stored as snapshot rows with a version column; every save is a
// compare-and-swap that fails with ConcurrentModificationError when the
// stored version has moved on.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/7Spade/tortoise/internal/domain"
)

// NewPool opens a pgx connection pool and verifies connectivity.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnLifetime = time.Hour
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func userIDsToStrings(ids []domain.UserID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func stringsToUserIDs(raw []string) ([]domain.UserID, error) {
	out := make([]domain.UserID, 0, len(raw))
	for _, s := range raw {
		id, err := domain.ParseUserID(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func moduleIDsToStrings(ids []domain.ModuleID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func stringsToModuleIDs(raw []string) ([]domain.ModuleID, error) {
	out := make([]domain.ModuleID, 0, len(raw))
	for _, s := range raw {
		id, err := domain.ParseModuleID(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
