package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// carryCookies copies the cookies set on rec onto a new request
func carryCookies(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatalf("response did not set %s", SessionCookieName)
	return nil
}

func TestSessionLoginAndUsername(t *testing.T) {
	m := NewSessionManager([]byte("0123456789abcdef0123456789abcdef"), 30*24*time.Hour)

	if got := m.Username(httptest.NewRequest(http.MethodGet, "/", nil)); got != "" {
		t.Errorf("Username() without cookie = %q, want empty", got)
	}

	rec := httptest.NewRecorder()
	if err := m.Login(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "alice", false); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if got := m.Username(carryCookies(rec)); got != "alice" {
		t.Errorf("Username() = %q, want %q", got, "alice")
	}
}

func TestSessionRememberMeSetsExpiry(t *testing.T) {
	m := NewSessionManager([]byte("0123456789abcdef0123456789abcdef"), 30*24*time.Hour)

	remembered := httptest.NewRecorder()
	m.Login(remembered, httptest.NewRequest(http.MethodPost, "/login", nil), "alice", true)
	if c := sessionCookie(t, remembered); c.MaxAge != 30*24*60*60 {
		t.Errorf("remembered cookie MaxAge = %d, want 30 days", c.MaxAge)
	}

	browser := httptest.NewRecorder()
	m.Login(browser, httptest.NewRequest(http.MethodPost, "/login", nil), "alice", false)
	if c := sessionCookie(t, browser); c.MaxAge != 0 || !c.Expires.IsZero() {
		t.Errorf("browser-session cookie should carry no expiry, got MaxAge=%d Expires=%v", c.MaxAge, c.Expires)
	}
}

func TestSessionRejectsForeignSignature(t *testing.T) {
	m := NewSessionManager([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	other := NewSessionManager([]byte("fedcba9876543210fedcba9876543210"), time.Hour)

	rec := httptest.NewRecorder()
	other.Login(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "mallory", false)

	if got := m.Username(carryCookies(rec)); got != "" {
		t.Errorf("Username() with foreign cookie = %q, want empty", got)
	}
}

func TestSessionRefreshAndClear(t *testing.T) {
	m := NewSessionManager([]byte("0123456789abcdef0123456789abcdef"), time.Hour)

	login := httptest.NewRecorder()
	m.Login(login, httptest.NewRequest(http.MethodPost, "/login", nil), "Alice", true)

	unchanged := httptest.NewRecorder()
	if err := m.Refresh(unchanged, carryCookies(login), "Alice"); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(unchanged.Result().Cookies()) != 0 {
		t.Error("Refresh() with the same name should not rewrite the cookie")
	}

	renamed := httptest.NewRecorder()
	if err := m.Refresh(renamed, carryCookies(login), "alice"); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if got := m.Username(carryCookies(renamed)); got != "alice" {
		t.Errorf("Username() after Refresh() = %q, want %q", got, "alice")
	}
	if c := sessionCookie(t, renamed); c.MaxAge <= 0 {
		t.Error("Refresh() should keep the remember-me expiry")
	}

	cleared := httptest.NewRecorder()
	if err := m.Clear(cleared, carryCookies(renamed)); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if c := sessionCookie(t, cleared); c.MaxAge >= 0 {
		t.Errorf("Clear() cookie MaxAge = %d, want negative", c.MaxAge)
	}
}

func TestSessionCSRFKeyFollowsLogin(t *testing.T) {
	m := NewSessionManager([]byte("0123456789abcdef0123456789abcdef"), time.Hour)

	if got := m.CSRFKey(httptest.NewRequest(http.MethodGet, "/", nil)); got != "" {
		t.Errorf("CSRFKey() without cookie = %q, want empty", got)
	}

	first := httptest.NewRecorder()
	if err := m.Login(first, httptest.NewRequest(http.MethodPost, "/login", nil), "alice", false); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	firstKey := m.CSRFKey(carryCookies(first))
	if firstKey == "" {
		t.Fatal("CSRFKey() after Login() is empty")
	}

	second := httptest.NewRecorder()
	m.Login(second, httptest.NewRequest(http.MethodPost, "/login", nil), "alice", false)
	if m.CSRFKey(carryCookies(second)) == firstKey {
		t.Error("two logins of the same user share a CSRF key")
	}

	renamed := httptest.NewRecorder()
	m.Refresh(renamed, carryCookies(first), "Alice")
	if got := m.CSRFKey(carryCookies(renamed)); got != firstKey {
		t.Errorf("CSRFKey() after Refresh() = %q, want %q", got, firstKey)
	}

	cleared := httptest.NewRecorder()
	m.Clear(cleared, carryCookies(first))
	if got := m.CSRFKey(carryCookies(cleared)); got != "" {
		t.Errorf("CSRFKey() after Clear() = %q, want empty", got)
	}
}
