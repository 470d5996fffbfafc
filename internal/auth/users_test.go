package auth

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/satish051/RealEstateApp/internal/db"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestRegisterAndAuthenticate(t *testing.T) {
	store := NewUserStore(testDB(t))

	u, err := store.Register("User@Example.com", "Test User", "correct-horse", false)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	// emails are normalized to lowercase
	if u.Email != "user@example.com" {
		t.Errorf("email = %q, want %q", u.Email, "user@example.com")
	}
	if u.IsAdmin {
		t.Error("expected non-admin account")
	}

	got, err := store.Authenticate("user@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("id = %d, want %d", got.ID, u.ID)
	}
}

func TestAuthenticateFailures(t *testing.T) {
	store := NewUserStore(testDB(t))

	if _, err := store.Register("user@example.com", "Test User", "correct-horse", false); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPass := store.Authenticate("user@example.com", "wrong-horse")
	_, unknownUser := store.Authenticate("nobody@example.com", "correct-horse")

	if wrongPass == nil || unknownUser == nil {
		t.Fatal("expected both authentications to fail")
	}
	// same error for both, so failures don't reveal which part was wrong
	if wrongPass.Error() != unknownUser.Error() {
		t.Errorf("errors differ: %q vs %q", wrongPass, unknownUser)
	}
}

func TestRegisterValidation(t *testing.T) {
	store := NewUserStore(testDB(t))

	if _, err := store.Register("", "X", "long-enough", false); err == nil {
		t.Error("expected error for missing email")
	}
	if _, err := store.Register("a@example.com", "X", "short", false); err == nil {
		t.Error("expected error for short password")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	store := NewUserStore(testDB(t))

	if _, err := store.Register("user@example.com", "First", "correct-horse", false); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := store.Register("user@example.com", "Second", "correct-horse", false)
	if err == nil {
		t.Fatal("expected error for duplicate email")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error = %q, want already exists", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	store := NewUserStore(testDB(t))

	// empty password is a no-op
	if err := store.EnsureAdmin("admin@realestate.com", ""); err != nil {
		t.Fatalf("ensure admin without password: %v", err)
	}
	if _, err := store.GetByEmail("admin@realestate.com"); err == nil {
		t.Fatal("admin should not exist yet")
	}

	if err := store.EnsureAdmin("admin@realestate.com", "admin-secret"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}

	u, err := store.Authenticate("admin@realestate.com", "admin-secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if !u.IsAdmin {
		t.Error("expected admin account")
	}

	// idempotent
	if err := store.EnsureAdmin("admin@realestate.com", "different"); err != nil {
		t.Fatalf("ensure admin twice: %v", err)
	}
	if _, err := store.Authenticate("admin@realestate.com", "admin-secret"); err != nil {
		t.Error("original password should still work")
	}
}

func TestIsAdmin(t *testing.T) {
	store := NewUserStore(testDB(t))

	if _, err := store.Register("user@example.com", "User", "correct-horse", false); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := store.Register("boss@example.com", "Boss", "correct-horse", true); err != nil {
		t.Fatalf("register: %v", err)
	}

	if store.IsAdmin("user@example.com") {
		t.Error("regular user should not be admin")
	}
	if !store.IsAdmin("boss@example.com") {
		t.Error("expected admin")
	}
	if store.IsAdmin("nobody@example.com") {
		t.Error("unknown user should not be admin")
	}
}
