package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"quizzy/internal/security"
	"quizzy/internal/service"
	"quizzy/internal/validation"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	sessions  *security.SessionManager
	templates *template.Template
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *security.SessionManager, templates *template.Template) *AuthHandler {
	return &AuthHandler{
		sessions:  sessions,
		templates: templates,
	}
}

// Home renders the landing page, greeting the user when signed in
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := HomeViewData{
		Title: "Quizzy",
		User:  GetUserFromContext(r.Context()),
	}
	render(w, h.templates, "home.tmpl", data)
}

// ShowLogin renders the login page
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	render(w, h.templates, "login.tmpl", LoginViewData{Title: "Login - Quizzy"})
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	password := r.FormValue("password")
	remember := r.FormValue("remember_me") != ""

	// Input that cannot match any account is turned away before a
	// connection is borrowed
	if err := validateLoginInput(name, password); err != nil {
		h.renderLoginError(w, name, err.Message)
		return
	}

	conn, ok := acquire(w, r)
	if !ok {
		return
	}

	user, err := service.NewAuthService(conn).Login(r.Context(), name, password)
	if err != nil {
		var validationErr validation.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.renderLoginError(w, name, validationErr.Message)
		case errors.Is(err, service.ErrInvalidCredentials):
			h.renderLoginError(w, name, ErrInvalidCredentialMsg)
		default:
			respondStorageError(w, r, "Error logging in", err)
		}
		return
	}

	if err := h.sessions.Login(w, r, user.Name, remember); err != nil {
		respondWithError(w, r, http.StatusInternalServerError, ErrInternalServerError, "Error saving session", err)
		return
	}

	log.Printf("User %s logged in (remember=%t)", user.Name, remember)
	render(w, h.templates, "home.tmpl", HomeViewData{
		Title:   "Quizzy",
		User:    user,
		Success: "Logged in as " + user.Name,
	})
}

func validateLoginInput(name, password string) *validation.ValidationError {
	var validationErr validation.ValidationError
	if err := validation.ValidateUsername(name); errors.As(err, &validationErr) {
		return &validationErr
	}
	if err := validation.ValidatePassword(password); errors.As(err, &validationErr) {
		return &validationErr
	}
	return nil
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, name, msg string) {
	render(w, h.templates, "login.tmpl", LoginViewData{
		Title: "Login - Quizzy",
		Error: msg,
		Name:  name,
	})
}

// ShowRegister renders the registration page
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	render(w, h.templates, "register.tmpl", RegisterViewData{Title: "Register - Quizzy"})
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	password := r.FormValue("password")
	remember := r.FormValue("remember_me") != ""

	conn, ok := acquire(w, r)
	if !ok {
		return
	}

	user, err := service.NewAuthService(conn).Register(r.Context(), name, password)
	if err != nil {
		var validationErr validation.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.renderRegisterError(w, name, validationErr.Message)
		case errors.Is(err, service.ErrUsernameTaken):
			h.renderRegisterError(w, name, err.Error())
		default:
			respondStorageError(w, r, "Error registering user", err)
		}
		return
	}

	if err := h.sessions.Login(w, r, user.Name, remember); err != nil {
		respondWithError(w, r, http.StatusInternalServerError, ErrInternalServerError, "Error saving session", err)
		return
	}

	log.Printf("Registered user %s (id %d)", user.Name, user.ID)
	render(w, h.templates, "home.tmpl", HomeViewData{
		Title:   "Quizzy",
		User:    user,
		Success: "Welcome to Quizzy, " + user.Name,
	})
}

func (h *AuthHandler) renderRegisterError(w http.ResponseWriter, name, msg string) {
	render(w, h.templates, "register.tmpl", RegisterViewData{
		Title: "Register - Quizzy",
		Error: msg,
		Name:  name,
	})
}

// Logout clears the session and returns to the home page
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		log.Printf("Error clearing session: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
