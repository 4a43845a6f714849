package security

import (
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const csrfKeyLength = 16

const (
	// SessionCookieName is the cookie carrying the signed session
	SessionCookieName = "quizzy_session"

	sessionNameKey     = "name"
	sessionRememberKey = "remember"
	sessionCSRFKey     = "csrf"
)

// SessionManager stores the logged-in username in a signed cookie.
// A remembered session persists for the configured duration; otherwise the
// cookie lasts until the browser session ends.
type SessionManager struct {
	store       *sessions.CookieStore
	rememberFor time.Duration
}

// NewSessionManager creates a session manager signing cookies with secret
func NewSessionManager(secret []byte, rememberFor time.Duration) *SessionManager {
	store := sessions.NewCookieStore(secret)
	store.MaxAge(int(rememberFor.Seconds()))
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode

	return &SessionManager{store: store, rememberFor: rememberFor}
}

// Username returns the name stored in the request's session, or "" when the
// cookie is missing or fails verification
func (m *SessionManager) Username(r *http.Request) string {
	session, err := m.store.Get(r, SessionCookieName)
	if err != nil {
		return ""
	}
	name, _ := session.Values[sessionNameKey].(string)
	return name
}

// Login stores name in the session along with a fresh CSRF key, so tokens
// issued to an earlier session stop working
func (m *SessionManager) Login(w http.ResponseWriter, r *http.Request, name string, remember bool) error {
	key := securecookie.GenerateRandomKey(csrfKeyLength)
	if key == nil {
		return errors.New("failed to generate session CSRF key")
	}

	// A cookie that fails to decode still yields a fresh session
	session, _ := m.store.Get(r, SessionCookieName)
	session.Values[sessionNameKey] = name
	session.Values[sessionRememberKey] = remember
	session.Values[sessionCSRFKey] = hex.EncodeToString(key)
	m.applyOptions(r, session, remember)
	return session.Save(r, w)
}

// CSRFKey returns the per-session key CSRF tokens are derived from, or ""
// when the request has no valid session
func (m *SessionManager) CSRFKey(r *http.Request) string {
	session, err := m.store.Get(r, SessionCookieName)
	if err != nil {
		return ""
	}
	key, _ := session.Values[sessionCSRFKey].(string)
	return key
}

// Refresh rewrites the stored name when it differs from name, keeping the
// remember-me choice
func (m *SessionManager) Refresh(w http.ResponseWriter, r *http.Request, name string) error {
	session, err := m.store.Get(r, SessionCookieName)
	if err != nil {
		return nil
	}
	if current, _ := session.Values[sessionNameKey].(string); current == name {
		return nil
	}

	remember, _ := session.Values[sessionRememberKey].(bool)
	session.Values[sessionNameKey] = name
	m.applyOptions(r, session, remember)
	return session.Save(r, w)
}

// Clear removes the session cookie
func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, SessionCookieName)
	session.Values = make(map[interface{}]interface{})
	m.applyOptions(r, session, false)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

func (m *SessionManager) applyOptions(r *http.Request, session *sessions.Session, remember bool) {
	opts := *m.store.Options
	opts.Secure = IsSecureRequest(r)
	if !remember {
		opts.MaxAge = 0
	}
	session.Options = &opts
}

// IsSecureRequest determines if the request is over HTTPS
// Checks TLS connection, X-Forwarded-Proto header (for reverse proxies), and URL scheme
func IsSecureRequest(r *http.Request) bool {
	// Direct TLS connection
	if r.TLS != nil {
		return true
	}

	// Behind reverse proxy (nginx, Caddy, load balancer, etc.)
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" {
		return true
	}

	// Explicit HTTPS scheme
	if r.URL.Scheme == "https" {
		return true
	}

	return false
}

// SecretOrRandom returns secret as bytes, or a random 32-byte key when it is
// empty. Random keys invalidate every session on restart.
func SecretOrRandom(secret, name string) []byte {
	if secret != "" {
		return []byte(secret)
	}
	log.Printf("Warning: %s not set, using a random key; sessions will not survive a restart", name)
	return securecookie.GenerateRandomKey(32)
}
