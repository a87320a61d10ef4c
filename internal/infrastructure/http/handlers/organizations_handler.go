package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	apporg "github.com/7Spade/tortoise/internal/application/organization"
	"github.com/7Spade/tortoise/internal/application/ports"
	"github.com/7Spade/tortoise/internal/domain"
	orgdomain "github.com/7Spade/tortoise/internal/domain/organization"
	"github.com/7Spade/tortoise/internal/infrastructure/http/middleware"
)

// OrganizationsHandler serves /organizations/*: creation, membership, teams,
// and partner groups. Requires JWT.
type OrganizationsHandler struct {
	create           *apporg.CreateOrganization
	addMember        *apporg.AddMember
	addTeam          *apporg.AddTeam
	addPartner       *apporg.AddPartner
	addTeamMember    *apporg.AddTeamMember
	addPartnerMember *apporg.AddPartnerMember
	identities       ports.IdentityRepository
	log              zerolog.Logger
}

func NewOrganizationsHandler(
	create *apporg.CreateOrganization,
	addMember *apporg.AddMember,
	addTeam *apporg.AddTeam,
	addPartner *apporg.AddPartner,
	addTeamMember *apporg.AddTeamMember,
	addPartnerMember *apporg.AddPartnerMember,
	identities ports.IdentityRepository,
	log zerolog.Logger,
) *OrganizationsHandler {
	return &OrganizationsHandler{
		create:           create,
		addMember:        addMember,
		addTeam:          addTeam,
		addPartner:       addPartner,
		addTeamMember:    addTeamMember,
		addPartnerMember: addPartnerMember,
		identities:       identities,
		log:              log,
	}
}

type organizationResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Slug    string   `json:"slug"`
	Members []string `json:"members"`
	Version int64    `json:"version"`
}

func toOrganizationResponse(org orgdomain.Organization) organizationResponse {
	members := org.Members()
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.String()
	}
	return organizationResponse{
		ID:      org.ID().String(),
		Name:    org.Name().String(),
		Slug:    org.Slug().String(),
		Members: out,
		Version: org.Version(),
	}
}

// Create provisions an organization with the caller as its first member.
func (h *OrganizationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope := middleware.AuthFromContext(r.Context())
	var body struct {
		Name string `json:"name" validate:"required,max=100"`
		Slug string `json:"slug" validate:"required,max=63"`
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
	result, err := h.create.Execute(r.Context(), apporg.CreateOrganizationInput{
		Name:            body.Name,
		Slug:            body.Slug,
		InitialMemberID: userID,
	})
	if err != nil {
		middleware.RecordDomainOperation("organization", "create", false)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordDomainOperation("organization", "create", true)
	writeJSON(w, http.StatusCreated, toOrganizationResponse(result.Organization))
}

// Get returns an organization with its teams and partner groups.
func (h *OrganizationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseOrganizationID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	org, err := h.identities.FindOrganizationByID(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Msg("find organization failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	if org == nil {
		writeErr(w, http.StatusNotFound, "", "organization not found")
		return
	}
	snapshot := org.Snapshot()
	teams := make([]map[string]interface{}, 0, len(snapshot.Teams))
	for _, t := range snapshot.Teams {
		teams = append(teams, map[string]interface{}{
			"id":      t.ID.String(),
			"name":    t.Name.String(),
			"members": userIDStrings(t.MemberIDs),
		})
	}
	partners := make([]map[string]interface{}, 0, len(snapshot.Partners))
	for _, p := range snapshot.Partners {
		partners = append(partners, map[string]interface{}{
			"id":           p.ID.String(),
			"name":         p.Name.String(),
			"access_level": p.AccessLevel.String(),
			"members":      userIDStrings(p.MemberIDs),
		})
	}
	resp := toOrganizationResponse(*org)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       resp.ID,
		"name":     resp.Name,
		"slug":     resp.Slug,
		"members":  resp.Members,
		"teams":    teams,
		"partners": partners,
		"version":  resp.Version,
	})
}

// AddMember enrolls a user as an organization member.
func (h *OrganizationsHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	orgID, err := domain.ParseOrganizationID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	var body struct {
		UserID string `json:"user_id" validate:"required,uuid"`
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
	result, err := h.addMember.Execute(r.Context(), apporg.AddMemberInput{OrganizationID: orgID, MemberID: userID})
	if err != nil {
		middleware.RecordDomainOperation("organization", "add_member", false)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordDomainOperation("organization", "add_member", true)
	writeJSON(w, http.StatusOK, toOrganizationResponse(result.Organization))
}

// AddTeam creates a team inside the organization.
func (h *OrganizationsHandler) AddTeam(w http.ResponseWriter, r *http.Request) {
	orgID, err := domain.ParseOrganizationID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	var body struct {
		Name      string   `json:"name" validate:"required,max=100"`
		MemberIDs []string `json:"member_ids" validate:"omitempty,dive,uuid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	name, err := domain.NewDisplayName(body.Name)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	members, err := parseUserIDs(body.MemberIDs)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	result, err := h.addTeam.Execute(r.Context(), apporg.AddTeamInput{
		OrganizationID:   orgID,
		TeamName:         name,
		InitialMemberIDs: members,
	})
	if err != nil {
		middleware.RecordDomainOperation("organization", "add_team", false)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordDomainOperation("organization", "add_team", true)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"team_id":      result.TeamID.String(),
		"organization": toOrganizationResponse(result.Organization),
	})
}

// AddPartner registers an external partner group.
func (h *OrganizationsHandler) AddPartner(w http.ResponseWriter, r *http.Request) {
	orgID, err := domain.ParseOrganizationID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	var body struct {
		Name        string   `json:"name" validate:"required,max=100"`
		AccessLevel string   `json:"access_level" validate:"required"`
		MemberIDs   []string `json:"member_ids" validate:"omitempty,dive,uuid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	name, err := domain.NewDisplayName(body.Name)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	members, err := parseUserIDs(body.MemberIDs)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	result, err := h.addPartner.Execute(r.Context(), apporg.AddPartnerInput{
		OrganizationID:   orgID,
		PartnerName:      name,
		AccessLevel:      domain.PartnerAccessLevel(body.AccessLevel),
		InitialMemberIDs: members,
	})
	if err != nil {
		middleware.RecordDomainOperation("organization", "add_partner", false)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordDomainOperation("organization", "add_partner", true)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"partner_id":   result.PartnerID.String(),
		"organization": toOrganizationResponse(result.Organization),
	})
}

// AddTeamMember places an organization member on a team.
func (h *OrganizationsHandler) AddTeamMember(w http.ResponseWriter, r *http.Request) {
	orgID, err := domain.ParseOrganizationID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	teamID, err := domain.ParseTeamID(chi.URLParam(r, "teamID"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	userID, err := memberIDFromBody(w, r)
	if err != nil {
		return
	}
	result, err := h.addTeamMember.Execute(r.Context(), apporg.AddTeamMemberInput{
		OrganizationID: orgID,
		TeamID:         teamID,
		MemberID:       userID,
	})
	if err != nil {
		middleware.RecordDomainOperation("organization", "add_team_member", false)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordDomainOperation("organization", "add_team_member", true)
	writeJSON(w, http.StatusOK, toOrganizationResponse(result.Organization))
}

// AddPartnerMember adds an external user to a partner group.
func (h *OrganizationsHandler) AddPartnerMember(w http.ResponseWriter, r *http.Request) {
	orgID, err := domain.ParseOrganizationID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	partnerID, err := domain.ParsePartnerID(chi.URLParam(r, "partnerID"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	userID, err := memberIDFromBody(w, r)
	if err != nil {
		return
	}
	result, err := h.addPartnerMember.Execute(r.Context(), apporg.AddPartnerMemberInput{
		OrganizationID: orgID,
		PartnerID:      partnerID,
		MemberID:       userID,
	})
	if err != nil {
		middleware.RecordDomainOperation("organization", "add_partner_member", false)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordDomainOperation("organization", "add_partner_member", true)
	writeJSON(w, http.StatusOK, toOrganizationResponse(result.Organization))
}

// memberIDFromBody decodes { "user_id": ... } and writes the error response
// itself on failure.
func memberIDFromBody(w http.ResponseWriter, r *http.Request) (domain.UserID, error) {
	var body struct {
		UserID string `json:"user_id" validate:"required,uuid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return domain.UserID{}, err
	}
	if err := validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return domain.UserID{}, err
	}
	userID, err := domain.ParseUserID(body.UserID)
	if err != nil {
		writeDomainErr(w, err)
		return domain.UserID{}, err
	}
	return userID, nil
}

func parseUserIDs(raw []string) ([]domain.UserID, error) {
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

func userIDStrings(ids []domain.UserID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
