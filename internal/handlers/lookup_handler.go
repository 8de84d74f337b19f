package handlers

import (
	"context"
	"net/http"

	"gotera/internal/models"
	"gotera/internal/pagination"
	"gotera/internal/repository"
	"gotera/internal/resource"
)

// lookupKind names one of the name-only lookup lists.
type lookupKind struct {
	Singular string
	Plural   string
	Path     string
}

var (
	professionKind = lookupKind{Singular: "Profession", Plural: "Professions", Path: "/professions"}
	locationKind   = lookupKind{Singular: "Location", Plural: "Locations", Path: "/locations"}
)

// LookupHandler manages a name-only lookup list on a single page: the table
// and an inline create or edit form.
type LookupHandler[T any] struct {
	base
	kind  lookupKind
	repo  *repository.NamedRepository[T]
	toRow func(T) LookupRow
}

// NewProfessionHandler creates the professions page handler
func NewProfessionHandler(b base, repo *repository.NamedRepository[models.Profession]) *LookupHandler[models.Profession] {
	return &LookupHandler[models.Profession]{
		base: b,
		kind: professionKind,
		repo: repo,
		toRow: func(p models.Profession) LookupRow {
			return LookupRow{ID: p.ID, Name: p.Name, MemberCount: len(p.Members)}
		},
	}
}

// NewLocationHandler creates the locations page handler
func NewLocationHandler(b base, repo *repository.NamedRepository[models.Location]) *LookupHandler[models.Location] {
	return &LookupHandler[models.Location]{
		base: b,
		kind: locationKind,
		repo: repo,
		toRow: func(l models.Location) LookupRow {
			return LookupRow{ID: l.ID, Name: l.Name, MemberCount: len(l.Members)}
		},
	}
}

// List renders the table with an empty create form
func (h *LookupHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	list := h.list()
	h.renderPage(w, r, http.StatusOK, list.Fetch(r.Context()), "", models.NamedInput{}, nil)
}

// Edit renders the table with the edit form for one entry
func (h *LookupHandler[T]) Edit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	item := fetch(r.Context(), h.kind.Singular, one(func(ctx context.Context) (*T, error) {
		return h.repo.Get(ctx, id)
	}))
	if item.Data == nil {
		if isNotFound(item.Err) {
			notFound(w, r)
			return
		}
		redirect(w, r, h.kind.Path)
		return
	}
	row := h.toRow(*item.Data)
	list := h.list()
	h.renderPage(w, r, http.StatusOK, list.Fetch(r.Context()), id, models.NamedInput{Name: row.Name}, nil)
}

// Create adds an entry
func (h *LookupHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

// Update renames an entry
func (h *LookupHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, r.PathValue("id"))
}

func (h *LookupHandler[T]) save(w http.ResponseWriter, r *http.Request, id string) {
	in := models.NamedInput{Name: formValue(r, "name")}
	list := h.list()

	success := h.kind.Singular + " created"
	if id != "" {
		success = h.kind.Singular + " updated"
	}
	save := mutation(&h.base, r, func(ctx context.Context, in models.NamedInput) (*T, error) {
		if err := h.validator.Struct(in); err != nil {
			return nil, err
		}
		if id == "" {
			return h.repo.Create(ctx, in)
		}
		return h.repo.Update(ctx, id, in)
	}, success, resource.WithRefetch(list))

	if _, err := save.Run(r.Context(), in); err != nil {
		h.renderPage(w, r, http.StatusUnprocessableEntity, list.Fetch(r.Context()), id, in, err)
		return
	}
	h.afterWrite(w, r, list)
}

// ConfirmDelete asks before deleting an entry
func (h *LookupHandler[T]) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	item := fetch(r.Context(), h.kind.Singular, one(func(ctx context.Context) (*T, error) {
		return h.repo.Get(ctx, id)
	}))
	if item.Data == nil {
		notFound(w, r)
		return
	}
	h.render.Page(w, r, "confirm_delete.tmpl", "confirm-delete", ConfirmDeleteViewData{
		PageData:  h.render.Base(r, "Delete "+h.kind.Singular),
		Entity:    h.kind.Singular,
		Name:      h.toRow(*item.Data).Name,
		Action:    h.kind.Path + "/" + id + "/delete",
		CancelURL: h.kind.Path,
	})
}

// Delete removes an entry once confirmed
func (h *LookupHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		redirect(w, r, h.kind.Path)
		return
	}
	list := h.list()
	del := mutation(&h.base, r, func(ctx context.Context, id string) (struct{}, error) {
		return struct{}{}, h.repo.Delete(ctx, id)
	}, h.kind.Singular+" deleted", resource.WithRefetch(list))
	if _, err := del.Run(r.Context(), r.PathValue("id")); err != nil {
		list.Fetch(r.Context())
	}
	h.afterWrite(w, r, list)
}

// afterWrite swaps the refreshed panel in for HTMX requests and redirects
// otherwise.
func (h *LookupHandler[T]) afterWrite(w http.ResponseWriter, r *http.Request, list *resource.Query[[]T]) {
	if !isHTMX(r) {
		redirect(w, r, h.kind.Path)
		return
	}
	h.renderPage(w, r, http.StatusOK, list.State(), "", models.NamedInput{}, nil)
}

func (h *LookupHandler[T]) list() *resource.Query[[]T] {
	return resource.NewQuery(h.repo.List)
}

func (h *LookupHandler[T]) renderPage(w http.ResponseWriter, r *http.Request, status int, st resource.State[[]T], editID string, in models.NamedInput, err error) {
	rows := []LookupRow{}
	if st.Data != nil {
		for _, item := range *st.Data {
			rows = append(rows, h.toRow(item))
		}
	}
	data := LookupListViewData{
		PageData: h.render.Base(r, h.kind.Plural),
		Kind:     h.kind,
		Path:     h.kind.Path,
		Error:    errorMessage(st.Err),
		EditID:   editID,
		Input:    in,
		Result: pagination.Paginate(rows, pagination.FromQuery(r.URL.Query(), h.pageSize), func(row LookupRow) string {
			return row.Name
		}),
	}
	if err != nil {
		data.FieldErrors, data.FormError = formError(err)
	}

	if isHTMX(r) {
		// htmx only swaps 2xx responses.
		h.render.HTML(w, r, http.StatusOK, "lookup-panel", data)
		return
	}
	h.render.HTML(w, r, status, "lookups.tmpl", data)
}
