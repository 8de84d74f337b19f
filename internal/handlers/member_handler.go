package handlers

import (
	"context"
	"net/http"

	"gotera/internal/models"
	"gotera/internal/pagination"
	"gotera/internal/repository"
	"gotera/internal/security"
	"gotera/internal/service"
)

var memberFilterKeys = []string{"status_id", "family_id", "profession_id", "location_id", "ministry_id"}

// MemberHandler handles the admin member pages
type MemberHandler struct {
	base
	members       *repository.MemberRepository
	memberService *service.MemberService
	lookups       *lookupSource
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(b base, members *repository.MemberRepository, memberService *service.MemberService, lookups *lookupSource) *MemberHandler {
	return &MemberHandler{base: b, members: members, memberService: memberService, lookups: lookups}
}

// List renders the filtered, server-paginated member table
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st := pagination.FromQuery(r.URL.Query(), h.pageSize, memberFilterKeys...)
	filter := models.MemberFilter{
		Search:       st.Search,
		StatusID:     st.Filter("status_id"),
		FamilyID:     st.Filter("family_id"),
		ProfessionID: st.Filter("profession_id"),
		LocationID:   st.Filter("location_id"),
		MinistryID:   st.Filter("ministry_id"),
	}

	res := fetch(ctx, "members", one(func(ctx context.Context) (*models.MemberPage, error) {
		return h.members.List(ctx, filter, models.PageRequest{Page: st.Page, Limit: st.PageSize})
	}))

	data := MemberListViewData{
		PageData: h.render.Base(r, "Members"),
		Path:     "/members",
		Filter:   filter,
		Error:    errorMessage(res.Err),
	}
	if res.Data != nil {
		data.Result = pagination.FromServer(res.Data.Items, res.Data.Total, res.Data.TotalPages, st)
	} else {
		data.Result = pagination.FromServer[models.Member](nil, 0, 0, st)
	}
	opts := h.lookups.load(ctx)
	data.Statuses, data.Families, data.Professions = opts.Statuses, opts.Families, opts.Professions
	data.Locations, data.Ministries = opts.Locations, opts.Ministries

	h.render.Page(w, r, "members.tmpl", "member-table", data)
}

// New renders an empty member form
func (h *MemberHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "", models.MemberInput{}, nil)
}

// Edit renders the form seeded from the stored member
func (h *MemberHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	res := fetch(r.Context(), "member", one(func(ctx context.Context) (*models.Member, error) {
		return h.members.Get(ctx, id)
	}))
	if res.Data == nil {
		h.missing(w, r, res.Err)
		return
	}
	h.renderForm(w, r, http.StatusOK, id, models.MemberInputFrom(*res.Data), nil)
}

// Create saves a new member
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

// Update saves changes to an existing member
func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, r.PathValue("id"))
}

func (h *MemberHandler) save(w http.ResponseWriter, r *http.Request, id string) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, r, http.StatusBadRequest, ErrInvalidFormData, err)
		return
	}
	in := memberInputFromForm(r)

	success := "Member created"
	if id != "" {
		success = "Member updated"
	}
	save := mutation(&h.base, r, func(ctx context.Context, in models.MemberInput) (*models.Member, error) {
		return h.memberService.Save(ctx, id, in)
	}, success)

	member, err := save.Run(r.Context(), in)
	if err != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, id, in, err)
		return
	}
	redirect(w, r, "/members/"+member.ID)
}

func (h *MemberHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, id string, in models.MemberInput, err error) {
	title, action := "New member", "/members"
	if id != "" {
		title, action = "Edit member", "/members/"+id
	}
	data := MemberFormViewData{
		PageData: h.render.Base(r, title),
		MemberID: id,
		Action:   action,
		Input:    in,
	}
	if err != nil {
		data.FieldErrors, data.Error = formError(err)
	}
	opts := h.lookups.load(r.Context())
	data.Statuses, data.Families, data.Professions = opts.Statuses, opts.Families, opts.Professions
	data.Locations, data.Ministries = opts.Locations, opts.Ministries

	h.render.HTML(w, r, status, "member_form.tmpl", data)
}

// Show renders the member detail page with the account actions
func (h *MemberHandler) Show(w http.ResponseWriter, r *http.Request) {
	member, ok := h.load(w, r)
	if !ok {
		return
	}
	h.renderDetail(w, r, http.StatusOK, MemberDetailViewData{Member: *member})
}

// Promote grants the member a login role and shows the one-time password
func (h *MemberHandler) Promote(w http.ResponseWriter, r *http.Request) {
	member, ok := h.load(w, r)
	if !ok {
		return
	}
	role := security.ParseRole(formValue(r, "role"))
	ministryID := formValue(r, "ministry_id")

	promote := mutation(&h.base, r, func(ctx context.Context, m models.Member) (*service.CredentialsResult, error) {
		return h.memberService.Promote(ctx, m, role, ministryID)
	}, "Member promoted to "+role.Label(), inline(service.ErrMinistryRequired, service.ErrInvalidRole))

	creds, err := promote.Run(r.Context(), *member)
	data := MemberDetailViewData{PromoteRole: string(role)}
	if err != nil {
		data.PromoteError = errorMessage(err)
		data.Member = *member
		h.renderDetail(w, r, http.StatusUnprocessableEntity, data)
		return
	}
	data.Credentials = creds
	data.Member = h.reload(r, member)
	h.renderDetail(w, r, http.StatusOK, data)
}

// ResetPassword issues a new one-time password for the member's login
func (h *MemberHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	member, ok := h.load(w, r)
	if !ok {
		return
	}
	reset := mutation(&h.base, r, h.memberService.ResetPassword, "Password reset", inline(service.ErrNoLogin))

	creds, err := reset.Run(r.Context(), *member)
	data := MemberDetailViewData{Member: *member}
	if err != nil {
		data.ResetError = errorMessage(err)
		h.renderDetail(w, r, http.StatusUnprocessableEntity, data)
		return
	}
	data.Credentials = creds
	h.renderDetail(w, r, http.StatusOK, data)
}

// Transfer moves the member to another family
func (h *MemberHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	member, ok := h.load(w, r)
	if !ok {
		return
	}
	transfer := mutation(&h.base, r, func(ctx context.Context, familyID string) (*models.Member, error) {
		return h.memberService.Transfer(ctx, member.ID, familyID)
	}, "Member transferred")

	if _, err := transfer.Run(r.Context(), formValue(r, "family_id")); err != nil {
		fieldErrs, msg := formError(err)
		if msg == "" {
			msg = fieldErrs["family_id"]
		}
		h.renderDetail(w, r, http.StatusUnprocessableEntity, MemberDetailViewData{Member: *member, TransferError: msg})
		return
	}
	redirect(w, r, "/members/"+member.ID)
}

// ConfirmDelete asks before deleting the member
func (h *MemberHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	member, ok := h.load(w, r)
	if !ok {
		return
	}
	h.render.Page(w, r, "confirm_delete.tmpl", "confirm-delete", ConfirmDeleteViewData{
		PageData:  h.render.Base(r, "Delete member"),
		Entity:    "member",
		Name:      member.FullName,
		Action:    "/members/" + member.ID + "/delete",
		CancelURL: "/members/" + member.ID,
	})
}

// Delete removes the member once confirmed
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !confirmed(r) {
		redirect(w, r, "/members/"+id)
		return
	}
	del := mutation(&h.base, r, func(ctx context.Context, id string) (struct{}, error) {
		return struct{}{}, h.members.Delete(ctx, id)
	}, "Member deleted")
	if _, err := del.Run(r.Context(), id); err != nil {
		redirect(w, r, "/members/"+id)
		return
	}
	redirect(w, r, "/members")
}

// load fetches the member named in the path, redirecting when it is gone.
func (h *MemberHandler) load(w http.ResponseWriter, r *http.Request) (*models.Member, bool) {
	res := fetch(r.Context(), "member", one(func(ctx context.Context) (*models.Member, error) {
		return h.members.Get(ctx, r.PathValue("id"))
	}))
	if res.Data == nil {
		h.missing(w, r, res.Err)
		return nil, false
	}
	return res.Data, true
}

// reload fetches member again after a write, keeping the old copy on error.
func (h *MemberHandler) reload(r *http.Request, member *models.Member) models.Member {
	res := fetch(r.Context(), "member", one(func(ctx context.Context) (*models.Member, error) {
		return h.members.Get(ctx, member.ID)
	}))
	if res.Data == nil {
		return *member
	}
	return *res.Data
}

func (h *MemberHandler) missing(w http.ResponseWriter, r *http.Request, err error) {
	if isNotFound(err) {
		notFound(w, r)
		return
	}
	h.render.HTML(w, r, http.StatusBadGateway, "message.tmpl", MessageViewData{
		PageData:  h.render.Base(r, "Members"),
		Heading:   "Could not load member",
		Message:   errorMessage(err),
		Link:      "/members",
		LinkLabel: "Back to members",
	})
}

func (h *MemberHandler) renderDetail(w http.ResponseWriter, r *http.Request, status int, data MemberDetailViewData) {
	data.PageData = h.render.Base(r, data.Member.FullName)
	for _, role := range security.Roles {
		data.Roles = append(data.Roles, RoleOption{Value: string(role), Label: role.Label()})
	}
	opts := h.lookups.load(r.Context())
	data.Ministries, data.Families = opts.Ministries, opts.Families
	h.render.HTML(w, r, status, "member_detail.tmpl", data)
}

func memberInputFromForm(r *http.Request) models.MemberInput {
	return models.MemberInput{
		FullName:       formValue(r, "full_name"),
		Phone:          formValue(r, "phone"),
		Email:          formValue(r, "email"),
		Gender:         formValue(r, "gender"),
		FamilyID:       formValue(r, "family_id"),
		StatusID:       formValue(r, "status_id"),
		ProfessionID:   formValue(r, "profession_id"),
		LocationID:     formValue(r, "location_id"),
		ProfessionName: formValue(r, "profession_name"),
		LocationName:   formValue(r, "location_name"),
		MinistryIDs:    r.Form["ministry_ids"],
	}
}
