package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	appmembership "github.com/7Spade/tortoise/internal/application/membership"
	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	memdomain "github.com/7Spade/tortoise/internal/domain/membership"
	"github.com/7Spade/tortoise/internal/infrastructure/http/middleware"
)

// MembershipsHandler serves the membership state machine endpoints.
type MembershipsHandler struct {
	create      *appmembership.CreateMembership
	activate    *appmembership.ActivateMembership
	suspend     *appmembership.SuspendMembership
	changeRole  *appmembership.ChangeRole
	transfer    *appmembership.TransferOwnership
	memberships ports.MembershipRepository
	log         zerolog.Logger
}

func NewMembershipsHandler(
	create *appmembership.CreateMembership,
	activate *appmembership.ActivateMembership,
	suspend *appmembership.SuspendMembership,
	changeRole *appmembership.ChangeRole,
	transfer *appmembership.TransferOwnership,
	memberships ports.MembershipRepository,
	log zerolog.Logger,
) *MembershipsHandler {
	return &MembershipsHandler{
		create:      create,
		activate:    activate,
		suspend:     suspend,
		changeRole:  changeRole,
		transfer:    transfer,
		memberships: memberships,
		log:         log,
	}
}

type membershipResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	UserID         string `json:"user_id"`
	Role           string `json:"role"`
	Status         string `json:"status"`
	Version        int64  `json:"version"`
}

func toMembershipResponse(m *memdomain.Membership) membershipResponse {
	return membershipResponse{
		ID:             m.ID().String(),
		OrganizationID: m.OrganizationID().String(),
		UserID:         m.UserID().String(),
		Role:           m.Role().String(),
		Status:         m.Status().String(),
		Version:        m.Version(),
	}
}

// Create enrolls a user into an organization.
func (h *MembershipsHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, err := domain.ParseOrganizationID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	var body struct {
		UserID string `json:"user_id" validate:"required,uuid"`
		Role   string `json:"role" validate:"omitempty,oneof=owner admin member"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	userID, err := domain.ParseUserID(body.UserID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	result, err := h.create.Execute(r.Context(), appmembership.CreateMembershipInput{
		OrganizationID: orgID,
		UserID:         userID,
		Role:           domain.OrganizationRole(body.Role),
	})
	if err != nil {
		middleware.RecordDomainOperation("membership", "create", false)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordDomainOperation("membership", "create", true)
	writeJSON(w, http.StatusCreated, toMembershipResponse(result.Membership))
}

// List returns every membership in the organization.
func (h *MembershipsHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID, err := domain.ParseOrganizationID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	list, err := h.memberships.GetOrganizationMemberships(r.Context(), orgID)
	if err != nil {
		h.log.Error().Err(err).Msg("list memberships failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	out := make([]membershipResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMembershipResponse(m))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"memberships": out})
}

// Activate reinstates a suspended membership.
func (h *MembershipsHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseMembershipID(chi.URLParam(r, "membershipID"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	m, err := h.activate.Execute(r.Context(), id)
	if err != nil {
		middleware.RecordDomainOperation("membership", "activate", false)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordDomainOperation("membership", "activate", true)
	writeJSON(w, http.StatusOK, toMembershipResponse(m))
}

// Suspend suspends an active membership.
func (h *MembershipsHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseMembershipID(chi.URLParam(r, "membershipID"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	m, err := h.suspend.Execute(r.Context(), id)
	if err != nil {
		middleware.RecordDomainOperation("membership", "suspend", false)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordDomainOperation("membership", "suspend", true)
	writeJSON(w, http.StatusOK, toMembershipResponse(m))
}

// ChangeRole reassigns a member's role (owner roles excluded).
func (h *MembershipsHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseMembershipID(chi.URLParam(r, "membershipID"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	var body struct {
		Role string `json:"role" validate:"required,oneof=owner admin member"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	m, err := h.changeRole.Execute(r.Context(), appmembership.ChangeRoleInput{
		MembershipID: id,
		NewRole:      domain.OrganizationRole(body.Role),
	})
	if err != nil {
		middleware.RecordDomainOperation("membership", "change_role", false)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordDomainOperation("membership", "change_role", true)
	writeJSON(w, http.StatusOK, toMembershipResponse(m))
}

// TransferOwnership promotes a member to owner and demotes the current owner.
func (h *MembershipsHandler) TransferOwnership(w http.ResponseWriter, r *http.Request) {
	orgID, err := domain.ParseOrganizationID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	var body struct {
		CurrentOwnerMembershipID string `json:"current_owner_membership_id" validate:"required,uuid"`
		NewOwnerUserID           string `json:"new_owner_user_id" validate:"required,uuid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	currentID, err := domain.ParseMembershipID(body.CurrentOwnerMembershipID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	newOwnerID, err := domain.ParseUserID(body.NewOwnerUserID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	result, err := h.transfer.Execute(r.Context(), appmembership.TransferOwnershipInput{
		OrganizationID: orgID,
		CurrentOwnerID: currentID,
		NewOwnerUserID: newOwnerID,
	})
	if err != nil {
		middleware.RecordDomainOperation("membership", "transfer_ownership", false)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordDomainOperation("membership", "transfer_ownership", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"new_owner":      toMembershipResponse(result.NewOwner),
		"previous_owner": toMembershipResponse(result.PreviousOwner),
	})
}
