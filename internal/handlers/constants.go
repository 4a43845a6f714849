package handlers

const (
	CSRFFieldName   = "csrf_token"
	RequestIDHeader = "X-Request-ID"

	ErrInvalidFormData      = "Invalid form data"
	ErrInvalidID            = "Invalid ID"
	ErrInvalidCSRFToken     = "Invalid CSRF token"
	ErrInternalServerError  = "Internal server error"
	ErrDatabaseUnavailable  = "Database unavailable"
	ErrInvalidCredentialMsg = "Invalid username or password"
)
