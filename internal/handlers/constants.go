package handlers

const (
	ErrInvalidFormData     = "Invalid form data"
	ErrInvalidCSRFToken    = "Invalid or missing CSRF token"
	ErrTooManyRequests     = "Too many requests. Please try again later."
	ErrInternalServerError = "Internal server error"

	// Set by HTMX on partial requests; answered with fragments and HX-Redirect.
	hxRequestHeader  = "HX-Request"
	hxRedirectHeader = "HX-Redirect"

	// Delete forms post confirm=yes; anything else is a cancel.
	confirmField = "confirm"
	confirmYes   = "yes"
)
