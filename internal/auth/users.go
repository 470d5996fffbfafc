package auth

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents a registered account.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// UserStore manages accounts in SQLite.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a user store.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *UserStore) Register(email, name, password string, isAdmin bool) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	admin := 0
	if isAdmin {
		admin = 1
	}

	result, err := s.db.Exec(
		"INSERT INTO users (email, name, password_hash, is_admin) VALUES (?, ?, ?, ?)",
		email, name, string(hash), admin,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, fmt.Errorf("user already exists: %s", email)
		}
		return nil, fmt.Errorf("adding user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return s.GetByID(id)
}

// Authenticate checks credentials and returns the matching user.
// The error is deliberately the same for unknown email and wrong
// password.
func (s *UserStore) Authenticate(email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u User
	var hash string
	var admin int
	err := s.db.QueryRow(
		"SELECT id, email, name, password_hash, is_admin, created_at FROM users WHERE email = ?",
		email,
	).Scan(&u.ID, &u.Email, &u.Name, &hash, &admin, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	u.IsAdmin = admin != 0
	return &u, nil
}

// GetByEmail returns a user by email.
func (s *UserStore) GetByEmail(email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u User
	var admin int
	err := s.db.QueryRow(
		"SELECT id, email, name, is_admin, created_at FROM users WHERE email = ?", email,
	).Scan(&u.ID, &u.Email, &u.Name, &admin, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	u.IsAdmin = admin != 0
	return &u, nil
}

// GetByID returns a user by ID.
func (s *UserStore) GetByID(id int64) (*User, error) {
	var u User
	var admin int
	err := s.db.QueryRow(
		"SELECT id, email, name, is_admin, created_at FROM users WHERE id = ?", id,
	).Scan(&u.ID, &u.Email, &u.Name, &admin, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	u.IsAdmin = admin != 0
	return &u, nil
}

// IsAdmin checks whether the email belongs to an admin account.
func (s *UserStore) IsAdmin(email string) bool {
	u, err := s.GetByEmail(email)
	return err == nil && u.IsAdmin
}

// EnsureAdmin seeds the admin account if it doesn't exist yet.
// Does nothing when password is empty or the account already exists.
func (s *UserStore) EnsureAdmin(email, password string) error {
	if password == "" {
		return nil
	}

	if _, err := s.GetByEmail(email); err == nil {
		return nil
	}

	if _, err := s.Register(email, "Administrator", password, true); err != nil {
		return fmt.Errorf("seeding admin account: %w", err)
	}
	return nil
}
