package handlers

import (
	"io/fs"
	"net/http"

	"gotera/internal/models"
	"gotera/internal/repository"
	"gotera/internal/security"
	"gotera/internal/service"
	"gotera/internal/validation"
)

// Deps are the collaborators the page handlers are built from.
type Deps struct {
	Renderer   *Renderer
	Middleware *Middleware
	Validator  *validation.Validator
	PageSize   int

	AuthService       *service.AuthService
	MemberService     *service.MemberService
	AttendanceService *service.AttendanceService

	Members     *repository.MemberRepository
	Families    *repository.FamilyRepository
	Ministries  *repository.MinistryRepository
	Meetups     *repository.MeetupRepository
	Professions *repository.NamedRepository[models.Profession]
	Locations   *repository.NamedRepository[models.Location]
	Lookups     *repository.LookupRepository
	Activity    *repository.ActivityRepository
}

// Handlers groups every page handler.
type Handlers struct {
	middleware  *Middleware
	Auth        *AuthHandler
	Dashboard   *DashboardHandler
	Members     *MemberHandler
	Families    *FamilyHandler
	Ministries  *MinistryHandler
	Professions *LookupHandler[models.Profession]
	Locations   *LookupHandler[models.Location]
	Activity    *ActivityHandler
}

// NewHandlers wires the page handlers.
func NewHandlers(d Deps) *Handlers {
	b := newBase(d.Renderer, d.Validator, d.PageSize)
	lookups := newLookupSource(d.Lookups, d.Families, d.Ministries, d.Professions, d.Locations)
	return &Handlers{
		middleware:  d.Middleware,
		Auth:        NewAuthHandler(b, d.AuthService),
		Dashboard:   NewDashboardHandler(b, d.Members, d.Families, d.Ministries, d.Professions, d.Locations, d.Activity),
		Members:     NewMemberHandler(b, d.Members, d.MemberService, lookups),
		Families:    NewFamilyHandler(b, d.Families, d.Members, d.Meetups, d.AttendanceService),
		Ministries:  NewMinistryHandler(b, d.Ministries, d.Members),
		Professions: NewProfessionHandler(b, d.Professions),
		Locations:   NewLocationHandler(b, d.Locations),
		Activity:    NewActivityHandler(b, d.Activity),
	}
}

// Route is one page of the dashboard. Public routes skip the role guard;
// every POST is CSRF protected.
type Route struct {
	Method      string
	Pattern     string
	Role        security.Role
	Public      bool
	RateLimited bool
	Handler     http.HandlerFunc
}

// Routes is the route table.
func (h *Handlers) Routes() []Route {
	admin := security.RoleAdmin
	fl := security.RoleFamilyLeader
	ml := security.RoleMinistryLeader

	routes := []Route{
		{Method: http.MethodGet, Pattern: "/auth/login", Public: true, Handler: h.Auth.ShowLogin},
		{Method: http.MethodPost, Pattern: "/auth/login", Public: true, RateLimited: true, Handler: h.Auth.Login},
		{Method: http.MethodPost, Pattern: "/auth/logout", Public: true, Handler: h.Auth.Logout},
		{Method: http.MethodGet, Pattern: security.PathUnauthorized, Public: true, Handler: h.Auth.Unauthorized},
		{Method: http.MethodGet, Pattern: security.PathNotFound, Public: true, Handler: h.Auth.NotFound},
		{Method: http.MethodGet, Pattern: "/{$}", Handler: h.Auth.Home},

		{Method: http.MethodGet, Pattern: "/dashboard", Role: admin, Handler: h.Dashboard.Show},
		{Method: http.MethodGet, Pattern: "/activity", Role: admin, Handler: h.Activity.List},

		{Method: http.MethodGet, Pattern: "/members", Role: admin, Handler: h.Members.List},
		{Method: http.MethodGet, Pattern: "/members/new", Role: admin, Handler: h.Members.New},
		{Method: http.MethodPost, Pattern: "/members", Role: admin, Handler: h.Members.Create},
		{Method: http.MethodGet, Pattern: "/members/{id}", Role: admin, Handler: h.Members.Show},
		{Method: http.MethodGet, Pattern: "/members/{id}/edit", Role: admin, Handler: h.Members.Edit},
		{Method: http.MethodPost, Pattern: "/members/{id}", Role: admin, Handler: h.Members.Update},
		{Method: http.MethodGet, Pattern: "/members/{id}/delete", Role: admin, Handler: h.Members.ConfirmDelete},
		{Method: http.MethodPost, Pattern: "/members/{id}/delete", Role: admin, Handler: h.Members.Delete},
		{Method: http.MethodPost, Pattern: "/members/{id}/promote", Role: admin, Handler: h.Members.Promote},
		{Method: http.MethodPost, Pattern: "/members/{id}/reset-password", Role: admin, Handler: h.Members.ResetPassword},
		{Method: http.MethodPost, Pattern: "/members/{id}/transfer", Role: admin, Handler: h.Members.Transfer},

		{Method: http.MethodGet, Pattern: "/families", Role: admin, Handler: h.Families.List},
		{Method: http.MethodGet, Pattern: "/families/new", Role: admin, Handler: h.Families.New},
		{Method: http.MethodPost, Pattern: "/families", Role: admin, Handler: h.Families.Create},
		{Method: http.MethodGet, Pattern: "/families/{id}", Role: admin, Handler: h.Families.Show},
		{Method: http.MethodGet, Pattern: "/families/{id}/edit", Role: admin, Handler: h.Families.Edit},
		{Method: http.MethodPost, Pattern: "/families/{id}", Role: admin, Handler: h.Families.Update},
		{Method: http.MethodGet, Pattern: "/families/{id}/delete", Role: admin, Handler: h.Families.ConfirmDelete},
		{Method: http.MethodPost, Pattern: "/families/{id}/delete", Role: admin, Handler: h.Families.Delete},

		{Method: http.MethodGet, Pattern: myFamilyPath, Role: fl, Handler: h.Families.MyFamily},
		{Method: http.MethodGet, Pattern: myFamilyPath + "/meetups/new", Role: fl, Handler: h.Families.NewMeetup},
		{Method: http.MethodPost, Pattern: myFamilyPath + "/meetups", Role: fl, Handler: h.Families.CreateMeetup},
		{Method: http.MethodGet, Pattern: myFamilyPath + "/meetups/{meetupID}/edit", Role: fl, Handler: h.Families.EditMeetup},
		{Method: http.MethodPost, Pattern: myFamilyPath + "/meetups/{meetupID}", Role: fl, Handler: h.Families.UpdateMeetup},
		{Method: http.MethodGet, Pattern: myFamilyPath + "/meetups/{meetupID}/delete", Role: fl, Handler: h.Families.ConfirmDeleteMeetup},
		{Method: http.MethodPost, Pattern: myFamilyPath + "/meetups/{meetupID}/delete", Role: fl, Handler: h.Families.DeleteMeetup},
		{Method: http.MethodGet, Pattern: myFamilyPath + "/meetups/{meetupID}/attendance", Role: fl, Handler: h.Families.Attendance},
		{Method: http.MethodPost, Pattern: myFamilyPath + "/meetups/{meetupID}/attendance", Role: fl, Handler: h.Families.SaveAttendance},

		{Method: http.MethodGet, Pattern: "/ministries", Role: admin, Handler: h.Ministries.List},
		{Method: http.MethodGet, Pattern: "/ministries/new", Role: admin, Handler: h.Ministries.New},
		{Method: http.MethodPost, Pattern: "/ministries", Role: admin, Handler: h.Ministries.Create},
		{Method: http.MethodGet, Pattern: "/ministries/{id}", Role: admin, Handler: h.Ministries.Show},
		{Method: http.MethodGet, Pattern: "/ministries/{id}/edit", Role: admin, Handler: h.Ministries.Edit},
		{Method: http.MethodPost, Pattern: "/ministries/{id}", Role: admin, Handler: h.Ministries.Update},
		{Method: http.MethodGet, Pattern: "/ministries/{id}/delete", Role: admin, Handler: h.Ministries.ConfirmDelete},
		{Method: http.MethodPost, Pattern: "/ministries/{id}/delete", Role: admin, Handler: h.Ministries.Delete},
		{Method: http.MethodGet, Pattern: myMinistryPath, Role: ml, Handler: h.Ministries.MyMinistry},
	}
	routes = append(routes, lookupRoutes(professionKind.Path, h.Professions)...)
	routes = append(routes, lookupRoutes(locationKind.Path, h.Locations)...)
	return routes
}

func lookupRoutes[T any](path string, h *LookupHandler[T]) []Route {
	admin := security.RoleAdmin
	return []Route{
		{Method: http.MethodGet, Pattern: path, Role: admin, Handler: h.List},
		{Method: http.MethodPost, Pattern: path, Role: admin, Handler: h.Create},
		{Method: http.MethodGet, Pattern: path + "/{id}/edit", Role: admin, Handler: h.Edit},
		{Method: http.MethodPost, Pattern: path + "/{id}", Role: admin, Handler: h.Update},
		{Method: http.MethodGet, Pattern: path + "/{id}/delete", Role: admin, Handler: h.ConfirmDelete},
		{Method: http.MethodPost, Pattern: path + "/{id}/delete", Role: admin, Handler: h.Delete},
	}
}

// Register mounts every route on mux. Unmatched paths go to the not-found
// page.
func (h *Handlers) Register(mux *http.ServeMux) {
	for _, rt := range h.Routes() {
		mux.HandleFunc(rt.Method+" "+rt.Pattern, labelRoute(h.wrap(rt)))
	}
	mux.HandleFunc("/", labelRoute(h.Auth.Fallback))
}

func (h *Handlers) wrap(rt Route) http.HandlerFunc {
	next := rt.Handler
	if rt.Method == http.MethodPost {
		next = h.middleware.CSRFProtect(next)
	}
	if rt.RateLimited {
		next = h.middleware.RateLimit(next)
	}
	switch {
	case rt.Public:
	case rt.Role == security.RoleUnknown:
		next = h.middleware.RequireAuth(next)
	default:
		next = h.middleware.RequireRole(rt.Role, next)
	}
	return next
}

// Mount builds the root handler. Static assets, health and metrics are served
// without a session; every page goes through the session middleware.
func (h *Handlers) Mount(static fs.FS, metrics http.Handler) http.Handler {
	root := http.NewServeMux()
	root.HandleFunc("GET /static/", labelRoute(http.StripPrefix("/static/", http.FileServerFS(static)).ServeHTTP))
	root.HandleFunc("GET /metrics", labelRoute(metrics.ServeHTTP))
	root.HandleFunc("GET /healthz", labelRoute(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	}))

	pages := http.NewServeMux()
	h.Register(pages)
	root.Handle("/", h.middleware.Session(pages))
	return root
}
