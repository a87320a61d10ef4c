package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	domerrors "github.com/7Spade/tortoise/internal/domain/errors"
	"github.com/7Spade/tortoise/internal/domain/workspace"
)

const (
	getWorkspaceSQL = `SELECT id, owner_type, owner_id, status, max_modules, max_storage, module_ids, version
FROM workspaces WHERE id = $1`

	listWorkspacesByOwnerSQL = `SELECT id, owner_type, owner_id, status, max_modules, max_storage, module_ids, version
FROM workspaces WHERE owner_type = $1 AND owner_id = $2 ORDER BY id`

	upsertWorkspaceSQL = `INSERT INTO workspaces (id, owner_type, owner_id, status, max_modules, max_storage, module_ids, version)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE
SET status = EXCLUDED.status,
    max_modules = EXCLUDED.max_modules,
    max_storage = EXCLUDED.max_storage,
    module_ids = EXCLUDED.module_ids,
    version = EXCLUDED.version
WHERE workspaces.version < EXCLUDED.version`

	deleteWorkspaceSQL = `DELETE FROM workspaces WHERE id = $1`

	listModulesSQL = `SELECT id, workspace_id, module_key, config, enabled
FROM workspace_modules WHERE workspace_id = $1 ORDER BY id`

	upsertModuleSQL = `INSERT INTO workspace_modules (id, workspace_id, module_key, config, enabled)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET module_key = EXCLUDED.module_key,
    config = EXCLUDED.config,
    enabled = EXCLUDED.enabled`
)

// WorkspaceRepository persists workspace snapshots and their module entities.
type WorkspaceRepository struct {
	pool *pgxpool.Pool
}

// NewWorkspaceRepository builds the repository.
func NewWorkspaceRepository(pool *pgxpool.Pool) *WorkspaceRepository {
	return &WorkspaceRepository{pool: pool}
}

// FindByID returns the workspace or nil when absent.
func (r *WorkspaceRepository) FindByID(ctx context.Context, id domain.WorkspaceID) (*workspace.Workspace, error) {
	row := r.pool.QueryRow(ctx, getWorkspaceSQL, id.UUID)
	w, err := scanWorkspace(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

// FindByOwner lists all workspaces held by the owner.
func (r *WorkspaceRepository) FindByOwner(ctx context.Context, owner workspace.Owner) ([]*workspace.Workspace, error) {
	rows, err := r.pool.Query(ctx, listWorkspacesByOwnerSQL, owner.Type().String(), owner.ID())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*workspace.Workspace
	for rows.Next() {
		w, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Save upserts the snapshot. A stale version loses the compare-and-swap and
// returns ConcurrentModificationError.
func (r *WorkspaceRepository) Save(ctx context.Context, snapshot workspace.Snapshot) error {
	tag, err := r.pool.Exec(ctx, upsertWorkspaceSQL,
		snapshot.ID.UUID,
		snapshot.OwnerType.String(),
		snapshot.OwnerID,
		snapshot.Status.String(),
		snapshot.MaxModules,
		snapshot.MaxStorage,
		moduleIDsToStrings(snapshot.ModuleIDs),
		snapshot.Version,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.NewConcurrentModification("workspace", snapshot.ID.String(), snapshot.Version)
	}
	return nil
}

// Delete removes the workspace row. Module rows cascade.
func (r *WorkspaceRepository) Delete(ctx context.Context, id domain.WorkspaceID) error {
	_, err := r.pool.Exec(ctx, deleteWorkspaceSQL, id.UUID)
	return err
}

// FindModules lists the module entities attached to a workspace.
func (r *WorkspaceRepository) FindModules(ctx context.Context, id domain.WorkspaceID) ([]*workspace.Module, error) {
	rows, err := r.pool.Query(ctx, listModulesSQL, id.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*workspace.Module
	for rows.Next() {
		m, err := scanModule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SaveModule upserts a module entity row.
func (r *WorkspaceRepository) SaveModule(ctx context.Context, module *workspace.Module) error {
	config, err := json.Marshal(module.Config().Snapshot())
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, upsertModuleSQL,
		module.ID().UUID,
		module.WorkspaceID().UUID,
		module.Key().String(),
		config,
		module.Enabled(),
	)
	return err
}

func scanWorkspace(row pgx.Row) (*workspace.Workspace, error) {
	var (
		id         uuid.UUID
		ownerType  string
		ownerID    string
		status     string
		maxModules int64
		maxStorage int64
		moduleIDs  []string
		version    int64
	)
	if err := row.Scan(&id, &ownerType, &ownerID, &status, &maxModules, &maxStorage, &moduleIDs, &version); err != nil {
		return nil, err
	}
	ids, err := stringsToModuleIDs(moduleIDs)
	if err != nil {
		return nil, err
	}
	wsID, err := domain.ParseWorkspaceID(id.String())
	if err != nil {
		return nil, err
	}
	factory := workspace.NewFactory()
	return factory.Reconstitute(workspace.Snapshot{
		ID:         wsID,
		OwnerType:  domain.OwnerType(ownerType),
		OwnerID:    ownerID,
		Status:     domain.WorkspaceStatus(status),
		MaxModules: maxModules,
		MaxStorage: maxStorage,
		ModuleIDs:  ids,
		Version:    version,
	})
}

func scanModule(row pgx.Row) (*workspace.Module, error) {
	var (
		id          uuid.UUID
		workspaceID uuid.UUID
		moduleKey   string
		configRaw   []byte
		enabled     bool
	)
	if err := row.Scan(&id, &workspaceID, &moduleKey, &configRaw, &enabled); err != nil {
		return nil, err
	}
	var configValues map[string]string
	if len(configRaw) > 0 {
		if err := json.Unmarshal(configRaw, &configValues); err != nil {
			return nil, err
		}
	}
	moduleID, err := domain.ParseModuleID(id.String())
	if err != nil {
		return nil, err
	}
	wsID, err := domain.ParseWorkspaceID(workspaceID.String())
	if err != nil {
		return nil, err
	}
	key, err := domain.NewModuleKey(moduleKey)
	if err != nil {
		return nil, err
	}
	return workspace.ReconstituteModule(moduleID, wsID, key, domain.NewModuleConfig(configValues), enabled)
}

// Ensure WorkspaceRepository implements ports.WorkspaceRepository.
var _ ports.WorkspaceRepository = (*WorkspaceRepository)(nil)
