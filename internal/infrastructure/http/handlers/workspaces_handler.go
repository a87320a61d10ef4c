package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/7Spade/tortoise/internal/application/ports"
	appworkspace "github.com/7Spade/tortoise/internal/application/workspace"
	"github.com/7Spade/tortoise/internal/domain"
	wsdomain "github.com/7Spade/tortoise/internal/domain/workspace"
	"github.com/7Spade/tortoise/internal/infrastructure/http/middleware"
)

// WorkspacesHandler serves the workspace lifecycle and module endpoints.
type WorkspacesHandler struct {
	create     *appworkspace.CreateWorkspace
	archive    *appworkspace.ArchiveWorkspace
	activate   *appworkspace.ActivateWorkspace
	delete     *appworkspace.DeleteWorkspace
	addModule  *appworkspace.AddModule
	dropModule *appworkspace.RemoveModule
	workspaces ports.WorkspaceRepository
	// defaultQuota applies when a create request names no quota; nil means
	// unlimited.
	defaultQuota *domain.WorkspaceQuota
	log          zerolog.Logger
}

func NewWorkspacesHandler(
	create *appworkspace.CreateWorkspace,
	archive *appworkspace.ArchiveWorkspace,
	activate *appworkspace.ActivateWorkspace,
	del *appworkspace.DeleteWorkspace,
	addModule *appworkspace.AddModule,
	dropModule *appworkspace.RemoveModule,
	workspaces ports.WorkspaceRepository,
	defaultQuota *domain.WorkspaceQuota,
	log zerolog.Logger,
) *WorkspacesHandler {
	return &WorkspacesHandler{
		create:       create,
		archive:      archive,
		activate:     activate,
		delete:       del,
		addModule:    addModule,
		dropModule:   dropModule,
		workspaces:   workspaces,
		defaultQuota: defaultQuota,
		log:          log,
	}
}

type workspaceResponse struct {
	ID         string   `json:"id"`
	OwnerType  string   `json:"owner_type"`
	OwnerID    string   `json:"owner_id"`
	Status     string   `json:"status"`
	MaxModules int64    `json:"max_modules"`
	MaxStorage int64    `json:"max_storage"`
	ModuleIDs  []string `json:"module_ids"`
	Version    int64    `json:"version"`
}

func toWorkspaceResponse(ws *wsdomain.Workspace) workspaceResponse {
	snapshot := ws.Snapshot()
	moduleIDs := make([]string, len(snapshot.ModuleIDs))
	for i, id := range snapshot.ModuleIDs {
		moduleIDs[i] = id.String()
	}
	return workspaceResponse{
		ID:         snapshot.ID.String(),
		OwnerType:  snapshot.OwnerType.String(),
		OwnerID:    snapshot.OwnerID,
		Status:     snapshot.Status.String(),
		MaxModules: snapshot.MaxModules,
		MaxStorage: snapshot.MaxStorage,
		ModuleIDs:  moduleIDs,
		Version:    snapshot.Version,
	}
}

// Create provisions a workspace. The owner defaults to the caller; an
// org-scoped token owns the workspace as the organization.
func (h *WorkspacesHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope := middleware.AuthFromContext(r.Context())
	var body struct {
		MaxModules *int64 `json:"max_modules" validate:"omitempty,min=0"`
		MaxStorage *int64 `json:"max_storage" validate:"omitempty,min=0"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	owner, err := ownerFromScope(scope)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	quota := h.defaultQuota
	if body.MaxModules != nil || body.MaxStorage != nil {
		maxModules := int64(domain.UnlimitedQuota)
		maxStorage := int64(domain.UnlimitedQuota)
		if body.MaxModules != nil {
			maxModules = *body.MaxModules
		}
		if body.MaxStorage != nil {
			maxStorage = *body.MaxStorage
		}
		q, err := domain.NewWorkspaceQuota(maxModules, maxStorage)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		quota = &q
	}
	result, err := h.create.Execute(r.Context(), appworkspace.CreateWorkspaceInput{Owner: owner, Quota: quota})
	if err != nil {
		middleware.RecordDomainOperation("workspace", "create", false)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordDomainOperation("workspace", "create", true)
	writeJSON(w, http.StatusCreated, toWorkspaceResponse(result.Workspace))
}

// Get returns a workspace by ID.
func (h *WorkspacesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseWorkspaceID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	ws, err := h.workspaces.FindByID(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Msg("find workspace failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	if ws == nil {
		writeErr(w, http.StatusNotFound, "", "workspace not found")
		return
	}
	writeJSON(w, http.StatusOK, toWorkspaceResponse(ws))
}

// List returns the caller's workspaces.
func (h *WorkspacesHandler) List(w http.ResponseWriter, r *http.Request) {
	scope := middleware.AuthFromContext(r.Context())
	owner, err := ownerFromScope(scope)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	list, err := h.workspaces.FindByOwner(r.Context(), owner)
	if err != nil {
		h.log.Error().Err(err).Msg("list workspaces failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	out := make([]workspaceResponse, 0, len(list))
	for _, ws := range list {
		out = append(out, toWorkspaceResponse(ws))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"workspaces": out})
}

// Archive moves the workspace to the archived state.
func (h *WorkspacesHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "archive", h.archive.Execute)
}

// Activate moves the workspace back to the active state.
func (h *WorkspacesHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "activate", h.activate.Execute)
}

// Delete logically deletes the workspace.
func (h *WorkspacesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "delete", h.delete.Execute)
}

func (h *WorkspacesHandler) lifecycle(w http.ResponseWriter, r *http.Request, op string, exec func(ctx context.Context, id domain.WorkspaceID) error) {
	id, err := domain.ParseWorkspaceID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	if err := exec(r.Context(), id); err != nil {
		middleware.RecordDomainOperation("workspace", op, false)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordDomainOperation("workspace", op, true)
	w.WriteHeader(http.StatusNoContent)
}

// AddModule provisions a module in the workspace.
func (h *WorkspacesHandler) AddModule(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseWorkspaceID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	var body struct {
		ModuleKey string `json:"module_key" validate:"required,max=64"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	key, err := domain.NewModuleKey(body.ModuleKey)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	result, err := h.addModule.Execute(r.Context(), appworkspace.AddModuleInput{WorkspaceID: id, ModuleKey: key})
	if err != nil {
		middleware.RecordDomainOperation("workspace", "add_module", false)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordDomainOperation("workspace", "add_module", true)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":         result.Module.ID().String(),
		"module_key": result.Module.Key().String(),
		"enabled":    result.Module.Enabled(),
	})
}

// RemoveModule detaches a module from the workspace.
func (h *WorkspacesHandler) RemoveModule(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseWorkspaceID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	moduleID, err := domain.ParseModuleID(chi.URLParam(r, "moduleID"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	if err := h.dropModule.Execute(r.Context(), appworkspace.RemoveModuleInput{WorkspaceID: id, ModuleID: moduleID}); err != nil {
		middleware.RecordDomainOperation("workspace", "remove_module", false)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordDomainOperation("workspace", "remove_module", true)
	w.WriteHeader(http.StatusNoContent)
}

// ListModules returns the workspace's module entities.
func (h *WorkspacesHandler) ListModules(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseWorkspaceID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	modules, err := h.workspaces.FindModules(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Msg("list modules failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	out := make([]map[string]interface{}, 0, len(modules))
	for _, m := range modules {
		out = append(out, map[string]interface{}{
			"id":         m.ID().String(),
			"module_key": m.Key().String(),
			"config":     m.Config().Snapshot(),
			"enabled":    m.Enabled(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"modules": out})
}

func ownerFromScope(scope middleware.AuthScope) (wsdomain.Owner, error) {
	if scope.OrgID != "" {
		return wsdomain.ParseOwner(domain.OwnerTypeOrganization, scope.OrgID)
	}
	return wsdomain.ParseOwner(domain.OwnerTypeUser, scope.UserID)
}
