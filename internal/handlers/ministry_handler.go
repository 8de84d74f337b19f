package handlers

import (
	"context"
	"errors"
	"net/http"

	"gotera/internal/models"
	"gotera/internal/pagination"
	"gotera/internal/repository"
)

const myMinistryPath = "/ministries/my-ministry"

var errNoMinistry = errors.New("you are not assigned to a ministry")

// MinistryHandler handles the ministry pages for admins and ministry leaders
type MinistryHandler struct {
	base
	ministries *repository.MinistryRepository
	members    *repository.MemberRepository
}

// NewMinistryHandler creates a new ministry handler
func NewMinistryHandler(b base, ministries *repository.MinistryRepository, members *repository.MemberRepository) *MinistryHandler {
	return &MinistryHandler{base: b, ministries: ministries, members: members}
}

// List renders the ministries with client-side search and paging
func (h *MinistryHandler) List(w http.ResponseWriter, r *http.Request) {
	st := pagination.FromQuery(r.URL.Query(), h.pageSize)
	res := fetch(r.Context(), "ministries", h.ministries.List)

	var items []models.Ministry
	if res.Data != nil {
		items = *res.Data
	}
	data := MinistryListViewData{
		PageData: h.render.Base(r, "Ministries"),
		Path:     "/ministries",
		Error:    errorMessage(res.Err),
		Result: pagination.Paginate(items, st, func(m models.Ministry) string {
			return m.Name + " " + m.Description
		}),
	}
	h.render.Page(w, r, "ministries.tmpl", "ministry-table", data)
}

// New renders an empty ministry form
func (h *MinistryHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "", models.MinistryInput{}, nil)
}

// Edit renders the form seeded from the stored ministry
func (h *MinistryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	ministry, ok := h.load(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	h.renderForm(w, r, http.StatusOK, ministry.ID, models.MinistryInput{Name: ministry.Name, Description: ministry.Description}, nil)
}

// Create saves a new ministry
func (h *MinistryHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

// Update saves changes to a ministry
func (h *MinistryHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, r.PathValue("id"))
}

func (h *MinistryHandler) save(w http.ResponseWriter, r *http.Request, id string) {
	in := models.MinistryInput{
		Name:        formValue(r, "name"),
		Description: formValue(r, "description"),
	}

	success := "Ministry created"
	if id != "" {
		success = "Ministry updated"
	}
	save := mutation(&h.base, r, func(ctx context.Context, in models.MinistryInput) (*models.Ministry, error) {
		if err := h.validator.Struct(in); err != nil {
			return nil, err
		}
		if id == "" {
			return h.ministries.Create(ctx, in)
		}
		return h.ministries.Update(ctx, id, in)
	}, success)

	ministry, err := save.Run(r.Context(), in)
	if err != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, id, in, err)
		return
	}
	redirect(w, r, "/ministries/"+ministry.ID)
}

func (h *MinistryHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, id string, in models.MinistryInput, err error) {
	title, action := "New ministry", "/ministries"
	if id != "" {
		title, action = "Edit ministry", "/ministries/"+id
	}
	data := MinistryFormViewData{
		PageData:   h.render.Base(r, title),
		MinistryID: id,
		Action:     action,
		Input:      in,
	}
	if err != nil {
		data.FieldErrors, data.Error = formError(err)
	}
	h.render.HTML(w, r, status, "ministry_form.tmpl", data)
}

// Show renders a ministry with its leaders and members
func (h *MinistryHandler) Show(w http.ResponseWriter, r *http.Request) {
	ministry, ok := h.load(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	h.renderDetail(w, r, ministry, false)
}

// MyMinistry renders the ministry the signed-in ministry leader manages
func (h *MinistryHandler) MyMinistry(w http.ResponseWriter, r *http.Request) {
	id, err := h.myMinistryID(r)
	if err != nil {
		msg := errorMessage(err)
		if errors.Is(err, errNoMinistry) || isNotFound(err) {
			msg = "You are not assigned to a ministry yet. Ask an administrator to add you to one."
		}
		h.render.HTML(w, r, http.StatusOK, "message.tmpl", MessageViewData{
			PageData: h.render.Base(r, "My ministry"),
			Heading:  "My ministry",
			Message:  msg,
		})
		return
	}
	ministry, ok := h.load(w, r, id)
	if !ok {
		return
	}
	h.renderDetail(w, r, ministry, true)
}

func (h *MinistryHandler) renderDetail(w http.ResponseWriter, r *http.Request, ministry *models.Ministry, mine bool) {
	st := pagination.FromQuery(r.URL.Query(), h.pageSize)
	path := "/ministries/" + ministry.ID
	if mine {
		path = myMinistryPath
	}
	data := MinistryDetailViewData{
		PageData: h.render.Base(r, ministry.Name),
		Path:     path,
		Ministry: *ministry,
		IsMine:   mine,
		Members: pagination.Paginate(ministry.Members, st, func(m models.Member) string {
			return m.FullName + " " + m.Phone + " " + m.Email
		}),
	}
	h.render.Page(w, r, "ministry_detail.tmpl", "ministry-members", data)
}

// ConfirmDelete asks before deleting a ministry
func (h *MinistryHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	ministry, ok := h.load(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	h.render.Page(w, r, "confirm_delete.tmpl", "confirm-delete", ConfirmDeleteViewData{
		PageData:  h.render.Base(r, "Delete ministry"),
		Entity:    "ministry",
		Name:      ministry.Name,
		Action:    "/ministries/" + ministry.ID + "/delete",
		CancelURL: "/ministries/" + ministry.ID,
	})
}

// Delete removes a ministry once confirmed
func (h *MinistryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !confirmed(r) {
		redirect(w, r, "/ministries/"+id)
		return
	}
	del := mutation(&h.base, r, func(ctx context.Context, id string) (struct{}, error) {
		return struct{}{}, h.ministries.Delete(ctx, id)
	}, "Ministry deleted")
	if _, err := del.Run(r.Context(), id); err != nil {
		redirect(w, r, "/ministries/"+id)
		return
	}
	redirect(w, r, "/ministries")
}

// myMinistryID resolves the ministry through the signed-in user's member
// record: the first led ministry, then the first joined one.
func (h *MinistryHandler) myMinistryID(r *http.Request) (string, error) {
	user := GetUserFromContext(r.Context())
	if user == nil || user.Member == nil || user.Member.ID == "" {
		return "", errNoMinistry
	}
	member, err := h.members.Get(r.Context(), user.Member.ID)
	if err != nil {
		return "", err
	}
	ministry, ok := member.MyMinistry()
	if !ok {
		return "", errNoMinistry
	}
	return ministry.ID, nil
}

func (h *MinistryHandler) load(w http.ResponseWriter, r *http.Request, id string) (*models.Ministry, bool) {
	res := fetch(r.Context(), "ministry", one(func(ctx context.Context) (*models.Ministry, error) {
		return h.ministries.Get(ctx, id)
	}))
	if res.Data == nil {
		if isNotFound(res.Err) {
			notFound(w, r)
			return nil, false
		}
		h.render.HTML(w, r, http.StatusBadGateway, "message.tmpl", MessageViewData{
			PageData: h.render.Base(r, "Ministries"),
			Heading:  "Could not load ministry",
			Message:  errorMessage(res.Err),
		})
		return nil, false
	}
	return res.Data, true
}
