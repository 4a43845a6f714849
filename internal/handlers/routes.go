package handlers

import (
	"html/template"
	"net/http"
)

// NewRouter registers every route and wraps the mux with request logging and
// the per-request connection provider
func NewRouter(m *Middleware, templates *template.Template) http.Handler {
	authHandler := NewAuthHandler(m.sessions, templates)
	userHandler := NewUserHandler(m, templates)
	questionHandler := NewQuestionHandler(m, templates)
	healthHandler := NewHealthHandler()

	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /{$}", m.LoadUser(authHandler.Home))
	mux.HandleFunc("GET /login", authHandler.ShowLogin)
	mux.HandleFunc("POST /login", m.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /register", authHandler.ShowRegister)
	mux.HandleFunc("POST /register", m.RateLimit(authHandler.Register))
	mux.HandleFunc("GET /logout", authHandler.Logout)
	mux.HandleFunc("GET /healthz", healthHandler.Health)

	// Users
	mux.HandleFunc("GET /allusers", m.RequireAuth(userHandler.AllUsers))
	mux.HandleFunc("POST /allusers", m.RequireAuth(m.CSRFProtect(userHandler.AllUsers)))
	mux.HandleFunc("GET /promote/{id}", m.RequireAuth(userHandler.ShowPromote))
	mux.HandleFunc("POST /promote/{id}", m.RequireAuth(m.CSRFProtect(userHandler.Promote)))
	mux.HandleFunc("GET /userprofile/{id}", m.RequireAuth(userHandler.Profile))

	// Questions
	mux.HandleFunc("GET /askquestions", m.RequireAuth(questionHandler.ShowAsk))
	mux.HandleFunc("POST /askquestions", m.RequireAuth(m.CSRFProtect(questionHandler.Ask)))
	mux.HandleFunc("GET /answer/{id}", m.RequireAuth(questionHandler.ShowAnswer))
	mux.HandleFunc("POST /answer/{id}", m.RequireAuth(m.CSRFProtect(questionHandler.Answer)))
	mux.HandleFunc("GET /unansweredquestions", m.RequireAuth(questionHandler.Unanswered))
	mux.HandleFunc("GET /answeredquestions", m.RequireAuth(questionHandler.Answered))
	mux.HandleFunc("GET /teacheransweredquestions", m.RequireAuth(questionHandler.TeacherAnswered))
	mux.HandleFunc("GET /pendingquestions", m.RequireAuth(questionHandler.Pending))

	return Logging(m.WithConnection(mux))
}
