package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func sessionRequest(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie to be set")
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestSessionCreateAndValidate(t *testing.T) {
	store := NewSessionStore(testDB(t))

	w := httptest.NewRecorder()
	if err := store.Create(w, "user@example.com"); err != nil {
		t.Fatalf("create: %v", err)
	}

	cookie := w.Result().Cookies()[0]
	if cookie.Name != cookieName {
		t.Errorf("cookie name = %q, want %q", cookie.Name, cookieName)
	}
	if !cookie.HttpOnly {
		t.Error("cookie should be http-only")
	}

	email, err := store.Validate(sessionRequest(t, w))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if email != "user@example.com" {
		t.Errorf("email = %q, want %q", email, "user@example.com")
	}
}

func TestSessionValidateRejectsMissingCookie(t *testing.T) {
	store := NewSessionStore(testDB(t))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := store.Validate(r); err == nil {
		t.Error("expected error without cookie")
	}
}

func TestSessionValidateRejectsUnknownSession(t *testing.T) {
	store := NewSessionStore(testDB(t))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: cookieName, Value: "forged"})
	if _, err := store.Validate(r); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestSessionDestroy(t *testing.T) {
	store := NewSessionStore(testDB(t))

	w := httptest.NewRecorder()
	if err := store.Create(w, "user@example.com"); err != nil {
		t.Fatalf("create: %v", err)
	}
	r := sessionRequest(t, w)

	w2 := httptest.NewRecorder()
	if err := store.Destroy(w2, r); err != nil {
		t.Fatalf("destroy: %v", err)
	}

	if _, err := store.Validate(r); err == nil {
		t.Error("expected error after destroy")
	}

	// clearing cookie on the response
	cleared := w2.Result().Cookies()
	if len(cleared) == 0 || cleared[0].MaxAge != -1 {
		t.Error("expected cookie to be cleared")
	}
}

func TestSessionCleanup(t *testing.T) {
	conn := testDB(t)
	store := NewSessionStore(conn)

	if _, err := conn.Exec(
		"INSERT INTO sessions (id, email, expires_at) VALUES (?, ?, ?)",
		"expired", "user@example.com", time.Now().Add(-time.Hour),
	); err != nil {
		t.Fatalf("insert expired session: %v", err)
	}

	if err := store.Cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("got %d sessions, want 0", n)
	}
}
