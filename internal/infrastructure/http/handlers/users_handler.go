package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	appidentity "github.com/7Spade/tortoise/internal/application/identity"
	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	iddomain "github.com/7Spade/tortoise/internal/domain/identity"
	"github.com/7Spade/tortoise/internal/infrastructure/http/middleware"
)

// UsersHandler handles /users/* (e.g. GET /users/me). Requires JWT auth.
type UsersHandler struct {
	identities ports.IdentityRepository
	auth       ports.AuthRepository
	createBot  *appidentity.CreateBot
	log        zerolog.Logger
}

// NewUsersHandler creates a handler for user resource endpoints.
func NewUsersHandler(identities ports.IdentityRepository, auth ports.AuthRepository, createBot *appidentity.CreateBot, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{identities: identities, auth: auth, createBot: createBot, log: log}
}

// userResponse is the JSON shape for a user record (no password hash).
type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toUserResponse(u *iddomain.User) userResponse {
	return userResponse{
		ID:          u.ID.String(),
		Email:       u.Email.String(),
		DisplayName: u.DisplayName.String(),
		Status:      u.Status.String(),
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.Format(time.RFC3339),
	}
}

type botResponse struct {
	ID          string `json:"id"`
	OwnerUserID string `json:"owner_user_id"`
	DisplayName string `json:"display_name"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

func toBotResponse(b *iddomain.Bot) botResponse {
	return botResponse{
		ID:          b.ID.String(),
		OwnerUserID: b.OwnerUserID.String(),
		DisplayName: b.DisplayName.String(),
		Status:      b.Status.String(),
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
}

// Me returns the current user from the JWT. Requires AuthValidator middleware.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	scope := middleware.AuthFromContext(r.Context())
	if scope.UserID == "" {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	userID, err := domain.ParseUserID(scope.UserID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	user, err := h.identities.FindUserByID(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("load user failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	if user == nil {
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateMe applies profile changes for the current user.
func (h *UsersHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	scope := middleware.AuthFromContext(r.Context())
	if scope.UserID == "" {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	userID, err := domain.ParseUserID(scope.UserID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	var body struct {
		DisplayName string `json:"display_name" validate:"required,max=100"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	displayName, err := domain.NewDisplayName(body.DisplayName)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	updated, err := h.auth.UpdateProfile(r.Context(), userID, ports.ProfileUpdate{DisplayName: displayName})
	if err != nil {
		middleware.RecordDomainOperation("identity", "update_profile", false)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordDomainOperation("identity", "update_profile", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":           updated.UserID.String(),
		"email":        updated.Email.String(),
		"display_name": updated.DisplayName.String(),
	})
}

// List returns every user in the directory.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.identities.FindUsers(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list users failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	items := make([]userResponse, 0, len(users))
	for _, u := range users {
		items = append(items, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": items})
}

// CreateBot provisions a machine principal owned by the caller.
func (h *UsersHandler) CreateBot(w http.ResponseWriter, r *http.Request) {
	scope := middleware.AuthFromContext(r.Context())
	if scope.UserID == "" {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	ownerID, err := domain.ParseUserID(scope.UserID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	var body struct {
		DisplayName string `json:"display_name" validate:"required,max=100"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.createBot.Execute(r.Context(), appidentity.CreateBotInput{
		OwnerUserID: ownerID,
		DisplayName: body.DisplayName,
	})
	if err != nil {
		middleware.RecordDomainOperation("identity", "create_bot", false)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordDomainOperation("identity", "create_bot", true)
	writeJSON(w, http.StatusCreated, toBotResponse(result.Bot))
}

// ListBots returns every bot in the directory.
func (h *UsersHandler) ListBots(w http.ResponseWriter, r *http.Request) {
	bots, err := h.identities.FindBots(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list bots failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	items := make([]botResponse, 0, len(bots))
	for _, b := range bots {
		items = append(items, toBotResponse(b))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bots": items})
}
