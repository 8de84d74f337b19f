package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"gotera/internal/models"
	"gotera/internal/pagination"
	"gotera/internal/security"
	"gotera/internal/service"
)

// Renderer executes the page templates.
type Renderer struct {
	templates  *template.Template
	middleware *Middleware
}

// NewRenderer creates a renderer. middleware supplies CSRF tokens.
func NewRenderer(templates *template.Template, middleware *Middleware) *Renderer {
	return &Renderer{templates: templates, middleware: middleware}
}

// Base builds the data every page layout needs. Reading it pops the
// session's queued notices.
func (rd *Renderer) Base(r *http.Request, title string) PageData {
	data := PageData{
		Title:       title + " - Gotera Youth",
		CSRFToken:   rd.middleware.CSRFToken(r),
		CurrentPath: r.URL.Path,
	}
	if store := GetSessionFromContext(r.Context()); store != nil {
		st := store.State()
		data.User = st.User
		data.Role = security.ParseRole(st.Role())
		data.Flashes = store.Flashes(r.Context())
	}
	data.Nav = navFor(data.Role, r.URL.Path)
	return data
}

// HTML renders a named template with status. Output is buffered so a failing
// template never sends a partial page.
func (rd *Renderer) HTML(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := rd.templates.ExecuteTemplate(&buf, name, data); err != nil {
		respondWithError(w, r, http.StatusInternalServerError, ErrInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// Page renders a full page or, for HTMX requests, the fragment template
// named partial when it is not empty.
func (rd *Renderer) Page(w http.ResponseWriter, r *http.Request, name, partial string, data any) {
	if partial != "" && isHTMX(r) {
		rd.HTML(w, r, http.StatusOK, partial, data)
		return
	}
	rd.HTML(w, r, http.StatusOK, name, data)
}

func navFor(role security.Role, path string) []NavItem {
	var items []NavItem
	add := func(cap security.Capability, label, href string) {
		if security.Can(role, cap) {
			items = append(items, NavItem{Label: label, Path: href, Active: path == href})
		}
	}
	add(security.CapManageMembers, "Dashboard", "/dashboard")
	add(security.CapManageMembers, "Members", "/members")
	add(security.CapManageFamilies, "Families", "/families")
	add(security.CapManageMinistries, "Ministries", "/ministries")
	add(security.CapManageLookups, "Professions", "/professions")
	add(security.CapManageLookups, "Locations", "/locations")
	add(security.CapViewActivity, "Activity", "/activity")
	add(security.CapViewMyFamily, "My Family", "/families/my-family")
	add(security.CapViewMyMinistry, "My Ministry", "/ministries/my-ministry")
	return items
}

// TemplateFuncs are the helpers available to every template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"can": func(role security.Role, capability string) bool {
			return security.Can(role, security.Capability(capability))
		},
		"roleLabel": func(role string) string {
			return security.ParseRole(role).Label()
		},
		"formatDate": func(raw string) string {
			t, ok := models.ParseTimestamp(raw)
			if !ok {
				return raw
			}
			return t.Format("Jan 2, 2006 3:04 PM")
		},
		"inputDate": func(raw string) string {
			t, ok := models.ParseTimestamp(raw)
			if !ok {
				return raw
			}
			return t.Format("2006-01-02T15:04")
		},
		"percent": func(v float64) string {
			return fmt.Sprintf("%.0f%%", v)
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"contains": func(items []string, v string) bool {
			for _, item := range items {
				if item == v {
					return true
				}
			}
			return false
		},
		"pageURL": func(st pagination.State, path string, page int) string {
			return st.WithPage(page).URL(path)
		},
		"pageSizes": func() []int {
			return pagination.PageSizes
		},
		"pager":          newPager,
		"attendanceRate": service.AttendanceRate,
		"meetupRows": func(meetups []models.FamilyMeetup, mine bool) MeetupRows {
			return MeetupRows{Meetups: meetups, Mine: mine}
		},
		"loadError": func(msg, retryURL string) Panel {
			return Panel{Message: msg, ActionLabel: "Retry", ActionURL: retryURL}
		},
		"emptyState": func(msg, label, url string) Panel {
			return Panel{Message: msg, ActionLabel: label, ActionURL: url}
		},
	}
}

// Panel is a list's error or empty state with its one action.
type Panel struct {
	Message     string
	ActionLabel string
	ActionURL   string
}

// MeetupRows feeds the meetup table partial.
type MeetupRows struct {
	Meetups []models.FamilyMeetup
	Mine    bool
}

const pagerWidth = 5

// Pager is what the pagination partial renders.
type Pager struct {
	Path       string
	Page       int
	PageSize   int
	Total      int
	TotalPages int
	Prev       string
	Next       string
	Links      []PagerLink
	Sizes      []PagerLink
}

type PagerLink struct {
	Label  int
	URL    string
	Active bool
}

func newPager(path string, st pagination.State, total, totalPages int) Pager {
	res := pagination.Result[struct{}]{State: st, Total: total, TotalPages: totalPages}
	p := Pager{Path: path, Page: st.Page, PageSize: st.PageSize, Total: total, TotalPages: totalPages}
	if res.HasPrev() {
		p.Prev = st.WithPage(st.Page - 1).URL(path)
	}
	if res.HasNext() {
		p.Next = st.WithPage(st.Page + 1).URL(path)
	}
	for _, n := range res.Pages(pagerWidth) {
		p.Links = append(p.Links, PagerLink{Label: n, URL: st.WithPage(n).URL(path), Active: n == st.Page})
	}
	for _, size := range pagination.PageSizes {
		p.Sizes = append(p.Sizes, PagerLink{Label: size, URL: st.WithPageSize(size).URL(path), Active: size == st.PageSize})
	}
	return p
}
