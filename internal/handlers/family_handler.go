package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gotera/internal/models"
	"gotera/internal/pagination"
	"gotera/internal/repository"
	"gotera/internal/service"
)

const (
	myFamilyPath      = "/families/my-family"
	leaderOptionLimit = 500
)

var errNoFamily = errors.New("you are not assigned to a family")

// FamilyHandler handles the family pages for admins and family leaders
type FamilyHandler struct {
	base
	families   *repository.FamilyRepository
	members    *repository.MemberRepository
	meetups    *repository.MeetupRepository
	attendance *service.AttendanceService
	now        func() time.Time
}

// NewFamilyHandler creates a new family handler
func NewFamilyHandler(b base, families *repository.FamilyRepository, members *repository.MemberRepository,
	meetups *repository.MeetupRepository, attendance *service.AttendanceService) *FamilyHandler {
	return &FamilyHandler{
		base:       b,
		families:   families,
		members:    members,
		meetups:    meetups,
		attendance: attendance,
		now:        time.Now,
	}
}

// List renders the family summaries with client-side search and paging
func (h *FamilyHandler) List(w http.ResponseWriter, r *http.Request) {
	st := pagination.FromQuery(r.URL.Query(), h.pageSize)
	res := fetch(r.Context(), "families", h.families.Summaries)

	var items []models.FamilySummary
	if res.Data != nil {
		items = *res.Data
	}
	data := FamilyListViewData{
		PageData: h.render.Base(r, "Families"),
		Path:     "/families",
		Error:    errorMessage(res.Err),
		Result: pagination.Paginate(items, st, func(f models.FamilySummary) string {
			return f.Name + " " + f.LeaderName
		}),
	}
	h.render.Page(w, r, "families.tmpl", "family-table", data)
}

// New renders an empty family form
func (h *FamilyHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "", models.FamilyInput{}, nil)
}

// Edit renders the form seeded from the stored family
func (h *FamilyHandler) Edit(w http.ResponseWriter, r *http.Request) {
	family, ok := h.load(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	in := models.FamilyInput{Name: family.Name, Description: family.Description}
	if family.LeaderID != nil {
		in.LeaderID = *family.LeaderID
	}
	h.renderForm(w, r, http.StatusOK, family.ID, in, nil)
}

// Create saves a new family
func (h *FamilyHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

// Update saves changes to a family
func (h *FamilyHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, r.PathValue("id"))
}

func (h *FamilyHandler) save(w http.ResponseWriter, r *http.Request, id string) {
	in := models.FamilyInput{
		Name:        formValue(r, "name"),
		Description: formValue(r, "description"),
		LeaderID:    formValue(r, "leader_id"),
	}

	success := "Family created"
	if id != "" {
		success = "Family updated"
	}
	save := mutation(&h.base, r, func(ctx context.Context, in models.FamilyInput) (*models.Family, error) {
		if err := h.validator.Struct(in); err != nil {
			return nil, err
		}
		if id == "" {
			return h.families.Create(ctx, in)
		}
		return h.families.Update(ctx, id, in)
	}, success)

	family, err := save.Run(r.Context(), in)
	if err != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, id, in, err)
		return
	}
	redirect(w, r, "/families/"+family.ID)
}

func (h *FamilyHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, id string, in models.FamilyInput, err error) {
	title, action := "New family", "/families"
	if id != "" {
		title, action = "Edit family", "/families/"+id
	}
	data := FamilyFormViewData{
		PageData: h.render.Base(r, title),
		FamilyID: id,
		Action:   action,
		Input:    in,
	}
	if err != nil {
		data.FieldErrors, data.Error = formError(err)
	}
	leaders := fetch(r.Context(), "leader options", one(func(ctx context.Context) (*models.MemberPage, error) {
		return h.members.List(ctx, models.MemberFilter{}, models.PageRequest{Page: 1, Limit: leaderOptionLimit})
	}))
	if leaders.Data != nil {
		data.Leaders = service.Options(leaders.Data.Items,
			func(m models.Member) string { return m.ID },
			func(m models.Member) string { return m.FullName })
	}
	h.render.HTML(w, r, status, "family_form.tmpl", data)
}

// Show renders a family with its members and meetups
func (h *FamilyHandler) Show(w http.ResponseWriter, r *http.Request) {
	family, ok := h.load(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	h.renderDetail(w, r, family, false)
}

// MyFamily renders the signed-in family leader's family
func (h *FamilyHandler) MyFamily(w http.ResponseWriter, r *http.Request) {
	familyID, err := h.myFamilyID(r)
	if err != nil {
		h.noFamily(w, r, err)
		return
	}
	family, ok := h.load(w, r, familyID)
	if !ok {
		return
	}
	h.renderDetail(w, r, family, true)
}

func (h *FamilyHandler) renderDetail(w http.ResponseWriter, r *http.Request, family *models.Family, mine bool) {
	st := pagination.FromQuery(r.URL.Query(), h.pageSize)
	path := "/families/" + family.ID
	if mine {
		path = myFamilyPath
	}

	data := FamilyDetailViewData{
		PageData: h.render.Base(r, family.Name),
		Path:     path,
		Family:   *family,
		IsMine:   mine,
		Members: pagination.Paginate(family.Members, st, func(m models.Member) string {
			return m.FullName + " " + m.Phone + " " + m.Email
		}),
	}

	meetups := fetch(r.Context(), "meetups", func(ctx context.Context) ([]models.FamilyMeetup, error) {
		return h.meetups.ListByFamily(ctx, family.ID)
	})
	data.Error = errorMessage(meetups.Err)
	if meetups.Data != nil {
		data.Past, data.Upcoming = service.ClassifyMeetups(*meetups.Data, h.now())
		data.LastRate, data.HasRate = service.LastAttendanceRate(data.Past)
	}

	h.render.Page(w, r, "family_detail.tmpl", "family-members", data)
}

// ConfirmDelete asks before deleting a family
func (h *FamilyHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	family, ok := h.load(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	h.render.Page(w, r, "confirm_delete.tmpl", "confirm-delete", ConfirmDeleteViewData{
		PageData:  h.render.Base(r, "Delete family"),
		Entity:    "family",
		Name:      family.Name,
		Action:    "/families/" + family.ID + "/delete",
		CancelURL: "/families/" + family.ID,
	})
}

// Delete removes a family once confirmed
func (h *FamilyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !confirmed(r) {
		redirect(w, r, "/families/"+id)
		return
	}
	del := mutation(&h.base, r, func(ctx context.Context, id string) (struct{}, error) {
		return struct{}{}, h.families.Delete(ctx, id)
	}, "Family deleted")
	if _, err := del.Run(r.Context(), id); err != nil {
		redirect(w, r, "/families/"+id)
		return
	}
	redirect(w, r, "/families")
}

// myFamilyID resolves the family of the signed-in user's member record.
func (h *FamilyHandler) myFamilyID(r *http.Request) (string, error) {
	user := GetUserFromContext(r.Context())
	if user == nil || user.Member == nil || user.Member.ID == "" {
		return "", errNoFamily
	}
	if id := user.Member.FamilyID; id != nil && *id != "" {
		return *id, nil
	}
	member, err := h.members.Get(r.Context(), user.Member.ID)
	if err != nil {
		return "", err
	}
	if member.FamilyID == nil || *member.FamilyID == "" {
		return "", errNoFamily
	}
	return *member.FamilyID, nil
}

func (h *FamilyHandler) load(w http.ResponseWriter, r *http.Request, id string) (*models.Family, bool) {
	res := fetch(r.Context(), "family", one(func(ctx context.Context) (*models.Family, error) {
		return h.families.Get(ctx, id)
	}))
	if res.Data == nil {
		if isNotFound(res.Err) {
			notFound(w, r)
			return nil, false
		}
		h.render.HTML(w, r, http.StatusBadGateway, "message.tmpl", MessageViewData{
			PageData: h.render.Base(r, "Families"),
			Heading:  "Could not load family",
			Message:  errorMessage(res.Err),
		})
		return nil, false
	}
	return res.Data, true
}

func (h *FamilyHandler) noFamily(w http.ResponseWriter, r *http.Request, err error) {
	msg := errorMessage(err)
	if errors.Is(err, errNoFamily) || isNotFound(err) {
		msg = "You are not assigned to a family yet. Ask an administrator to add you to one."
	}
	h.render.HTML(w, r, http.StatusOK, "message.tmpl", MessageViewData{
		PageData: h.render.Base(r, "My family"),
		Heading:  "My family",
		Message:  msg,
	})
}
