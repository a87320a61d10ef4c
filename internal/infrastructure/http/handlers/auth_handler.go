package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	appidentity "github.com/7Spade/tortoise/internal/application/identity"
	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	"github.com/7Spade/tortoise/internal/infrastructure/http/middleware"
)

// AuthHandler serves signup, login, and organization token exchange.
type AuthHandler struct {
	register  *appidentity.RegisterUser
	signIn    *appidentity.SignIn
	assumeOrg *appidentity.AssumeOrganization
	auth      ports.AuthRepository
	log       zerolog.Logger
}

func NewAuthHandler(register *appidentity.RegisterUser, signIn *appidentity.SignIn, assumeOrg *appidentity.AssumeOrganization, auth ports.AuthRepository, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{register: register, signIn: signIn, assumeOrg: assumeOrg, auth: auth, log: log}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email       string `json:"email" validate:"required,email,max=254"`
		DisplayName string `json:"display_name" validate:"required,max=100"`
		Password    string `json:"password" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid email or password length")
		return
	}
	result, err := h.register.Execute(r.Context(), appidentity.RegisterUserInput{
		Email:       email,
		DisplayName: body.DisplayName,
		Password:    password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.signup", "", false, err.Error())
		middleware.RecordDomainOperation("identity", "signup", false)
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "user.signup", result.User.ID.String(), true, "")
	middleware.RecordDomainOperation("identity", "signup", true)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":           result.User.ID.String(),
		"email":        result.User.Email.String(),
		"display_name": result.User.DisplayName.String(),
		"created_at":   result.User.CreatedAt,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid email or password length")
		return
	}
	result, err := h.signIn.Execute(r.Context(), appidentity.SignInInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.login", "", false, err.Error())
		middleware.RecordDomainOperation("identity", "login", false)
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "user.login", result.User.ID.String(), true, "")
	middleware.RecordDomainOperation("identity", "login", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": result.AccessToken,
		"expires_in":   result.ExpiresIn,
		"user": map[string]interface{}{
			"id":           result.User.ID.String(),
			"email":        result.User.Email.String(),
			"display_name": result.User.DisplayName.String(),
		},
	})
}

// AssumeOrg exchanges the caller's user token for an organization-scoped one.
func (h *AuthHandler) AssumeOrg(w http.ResponseWriter, r *http.Request) {
	scope := middleware.AuthFromContext(r.Context())
	if scope.UserID == "" {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	var body struct {
		OrganizationID string `json:"organization_id" validate:"required,uuid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	userID, err := domain.ParseUserID(scope.UserID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	orgID, err := domain.ParseOrganizationID(body.OrganizationID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	result, err := h.assumeOrg.Execute(r.Context(), appidentity.AssumeOrganizationInput{
		UserID:         userID,
		OrganizationID: orgID,
	})
	if err != nil {
		AuditLog(h.log, r, "org.assume", scope.UserID, false, err.Error())
		middleware.RecordDomainOperation("identity", "assume_org", false)
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "org.assume", scope.UserID, true, "")
	middleware.RecordDomainOperation("identity", "assume_org", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": result.AccessToken,
		"expires_in":   result.ExpiresIn,
		"role":         result.Role.String(),
	})
}

// ForgotPassword kicks off a password reset. The response never reveals
// whether the email exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,email,max=254"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email, err := domain.NewEmail(SanitizeEmail(body.Email))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	if err := h.auth.SendPasswordReset(r.Context(), email); err != nil {
		h.log.Error().Err(err).Msg("send password reset failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"message": "if the email is registered, a reset link is on its way",
	})
}
