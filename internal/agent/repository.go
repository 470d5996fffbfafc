// Package agent provides the agent roster model and data access.
package agent

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// DefaultAvatar is the fallback avatar filename for agents without an
// uploaded photo. It is never deleted from disk.
const DefaultAvatar = "default-avatar.png"

// Agent represents a member of the agent roster.
type Agent struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Avatar    string    `json:"avatar"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository provides CRUD operations for agents.
type Repository struct {
	db *sql.DB
}

// NewRepository creates an agent repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert adds a new agent and returns it with its generated ID.
func (r *Repository) Insert(a *Agent) (*Agent, error) {
	a.FullName = strings.TrimSpace(a.FullName)
	a.Email = strings.TrimSpace(a.Email)
	if a.FullName == "" {
		return nil, fmt.Errorf("full name is required")
	}
	if a.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if a.Avatar == "" {
		a.Avatar = DefaultAvatar
	}

	result, err := r.db.Exec(
		"INSERT INTO agents (full_name, email, phone, avatar, bio) VALUES (?, ?, ?, ?, ?)",
		a.FullName, a.Email, a.Phone, a.Avatar, a.Bio,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting agent: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting agent id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns an agent by ID.
func (r *Repository) GetByID(id int64) (*Agent, error) {
	var a Agent
	err := r.db.QueryRow(
		"SELECT id, full_name, email, phone, avatar, bio, created_at FROM agents WHERE id = ?", id,
	).Scan(&a.ID, &a.FullName, &a.Email, &a.Phone, &a.Avatar, &a.Bio, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("agent %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying agent %d: %w", id, err)
	}
	return &a, nil
}

// List returns the full roster ordered by name.
func (r *Repository) List() ([]*Agent, error) {
	rows, err := r.db.Query(
		"SELECT id, full_name, email, phone, avatar, bio, created_at FROM agents ORDER BY full_name",
	)
	if err != nil {
		return nil, fmt.Errorf("listing agents: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	var agents []*Agent
	for rows.Next() {
		var a Agent
		if err := rows.Scan(&a.ID, &a.FullName, &a.Email, &a.Phone, &a.Avatar, &a.Bio, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning agent: %w", err)
		}
		agents = append(agents, &a)
	}

	return agents, rows.Err()
}

// Update saves changes to an existing agent.
func (r *Repository) Update(a *Agent) error {
	result, err := r.db.Exec(
		"UPDATE agents SET full_name = ?, email = ?, phone = ?, avatar = ?, bio = ? WHERE id = ?",
		a.FullName, a.Email, a.Phone, a.Avatar, a.Bio, a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating agent: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("agent %d not found", a.ID)
	}

	return nil
}

// Delete removes an agent by ID.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM agents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting agent: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("agent %d not found", id)
	}

	return nil
}

// Count returns the number of agents on the roster.
func (r *Repository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM agents").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting agents: %w", err)
	}
	return n, nil
}
