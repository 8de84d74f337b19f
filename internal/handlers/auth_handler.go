package handlers

import (
	"errors"
	"net/http"

	"gotera/internal/graphql"
	"gotera/internal/security"
	"gotera/internal/service"
)

// AuthHandler handles sign-in, sign-out and the auth status pages
type AuthHandler struct {
	base
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(b base, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{base: b, authService: authService}
}

// Home sends a signed-in user to their landing page
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, security.LandingPath(currentRole(r)))
}

// ShowLogin displays the login page
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if store := GetSessionFromContext(r.Context()); store != nil && store.State().Authenticated {
		redirect(w, r, security.LandingPath(currentRole(r)))
		return
	}
	h.render.HTML(w, r, http.StatusOK, "login.tmpl", LoginViewData{PageData: h.render.Base(r, "Sign in")})
}

// Login handles the login form
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, r, http.StatusBadRequest, ErrInvalidFormData, err)
		return
	}

	in := service.LoginInput{
		Phone:    formValue(r, "phone"),
		Password: r.FormValue("password"),
	}
	store, err := h.authService.Login(w, r, in)
	if err != nil {
		data := LoginViewData{PageData: h.render.Base(r, "Sign in"), Phone: in.Phone}
		data.FieldErrors, data.Error = formError(err)
		var serverErr *graphql.ServerError
		if data.Error != "" && !errors.As(err, &serverErr) {
			data.Error = "Unable to reach the server. Please try again."
		}
		h.render.HTML(w, r, http.StatusUnprocessableEntity, "login.tmpl", data)
		return
	}

	redirect(w, r, security.LandingPath(security.ParseRole(store.State().Role())))
}

// Logout ends the session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if store := GetSessionFromContext(r.Context()); store != nil {
		if err := h.authService.Logout(w, r, store); err != nil {
			respondWithError(w, r, http.StatusInternalServerError, ErrInternalServerError, err)
			return
		}
	}
	redirect(w, r, security.PathLogin)
}

// Unauthorized explains that the user's role has no page here
func (h *AuthHandler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	h.render.HTML(w, r, http.StatusForbidden, "message.tmpl", MessageViewData{
		PageData:  h.render.Base(r, "Not authorized"),
		Heading:   "Not authorized",
		Message:   "Your account does not have access to this page.",
		Link:      security.PathLogin,
		LinkLabel: "Back to sign in",
	})
}

// NotFound renders the not-found page
func (h *AuthHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render.HTML(w, r, http.StatusNotFound, "message.tmpl", MessageViewData{
		PageData:  h.render.Base(r, "Page not found"),
		Heading:   "Page not found",
		Message:   "The page you are looking for does not exist.",
		Link:      "/",
		LinkLabel: "Go home",
	})
}

// Fallback redirects any unmatched path to the not-found page
func (h *AuthHandler) Fallback(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, security.PathNotFound)
}
