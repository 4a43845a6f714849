package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"quizzy/internal/service"
)

// UserHandler handles user listing, profiles and promotion
type UserHandler struct {
	middleware *Middleware
	templates  *template.Template
}

// NewUserHandler creates a new user handler
func NewUserHandler(middleware *Middleware, templates *template.Template) *UserHandler {
	return &UserHandler{
		middleware: middleware,
		templates:  templates,
	}
}

// AllUsers lists every registered user
func (h *UserHandler) AllUsers(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	conn, ok := acquire(w, r)
	if !ok {
		return
	}

	users, err := service.NewUserService(conn).ListUsers(r.Context())
	if err != nil {
		respondStorageError(w, r, "Error listing users", err)
		return
	}

	render(w, h.templates, "allusers.tmpl", AllUsersViewData{
		Title:     "All Users - Quizzy",
		User:      user,
		Users:     users,
		CSRFToken: h.middleware.CSRFToken(r),
	})
}

// ShowPromote renders the confirmation form for promoting a user to teacher
func (h *UserHandler) ShowPromote(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	conn, ok := acquire(w, r)
	if !ok {
		return
	}

	target, err := service.NewUserService(conn).GetProfile(r.Context(), id)
	if errors.Is(err, service.ErrUserNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		respondStorageError(w, r, "Error loading user", err)
		return
	}

	render(w, h.templates, "promote.tmpl", PromoteViewData{
		Title:     "Promote " + target.Name + " - Quizzy",
		User:      user,
		Target:    target,
		CSRFToken: h.middleware.CSRFToken(r),
	})
}

// Promote marks the user as a teacher. Any signed-in user may do this.
func (h *UserHandler) Promote(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	conn, ok := acquire(w, r)
	if !ok {
		return
	}

	err := service.NewUserService(conn).Promote(r.Context(), id)
	if errors.Is(err, service.ErrUserNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		respondStorageError(w, r, "Error promoting user", err)
		return
	}

	log.Printf("User %s promoted user %d to teacher", user.Name, id)
	http.Redirect(w, r, fmt.Sprintf("/userprofile/%d", id), http.StatusSeeOther)
}

// Profile shows one user's profile
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	conn, ok := acquire(w, r)
	if !ok {
		return
	}

	profile, err := service.NewUserService(conn).GetProfile(r.Context(), id)
	if errors.Is(err, service.ErrUserNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		respondStorageError(w, r, "Error loading profile", err)
		return
	}

	render(w, h.templates, "profile.tmpl", ProfileViewData{
		Title:   profile.Name + " - Quizzy",
		User:    GetUserFromContext(r.Context()),
		Profile: profile,
	})
}
