// Package inquiry provides property inquiries: messages a visitor
// sends to the agent behind a listing.
package inquiry

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Inquiry is a message sent about a property.
// Property fields are joined in for display and export; a deleted
// property leaves them at their zero values.
type Inquiry struct {
	ID            int64     `json:"id"`
	PropertyID    int64     `json:"property_id"`
	UserEmail     string    `json:"user_email"`
	Message       string    `json:"message"`
	Archived      bool      `json:"archived"`
	CreatedAt     time.Time `json:"created_at"`
	PropertyTitle string    `json:"property_title,omitempty"`
	PropertyPrice int64     `json:"property_price,omitempty"`
	AgentName     string    `json:"agent_name,omitempty"`
}

// Repository provides inquiry persistence.
type Repository struct {
	db *sql.DB
}

// NewRepository creates an inquiry repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new inquiry.
func (r *Repository) Create(propertyID int64, userEmail, message string) (*Inquiry, error) {
	userEmail = strings.TrimSpace(userEmail)
	message = strings.TrimSpace(message)
	if userEmail == "" {
		return nil, fmt.Errorf("email is required")
	}
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}

	result, err := r.db.Exec(
		"INSERT INTO inquiries (property_id, user_email, message) VALUES (?, ?, ?)",
		propertyID, userEmail, message,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting inquiry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting inquiry id: %w", err)
	}

	return r.GetByID(id)
}

const selectJoined = `SELECT i.id, i.property_id, i.user_email, i.message, i.archived, i.created_at,
	COALESCE(p.title, ''), COALESCE(p.price, 0), COALESCE(p.agent_name, '')
	FROM inquiries i LEFT JOIN properties p ON p.id = i.property_id`

func scanInquiry(row interface{ Scan(...interface{}) error }) (*Inquiry, error) {
	var q Inquiry
	var archived int
	err := row.Scan(
		&q.ID, &q.PropertyID, &q.UserEmail, &q.Message, &archived, &q.CreatedAt,
		&q.PropertyTitle, &q.PropertyPrice, &q.AgentName,
	)
	if err != nil {
		return nil, err
	}
	q.Archived = archived != 0
	return &q, nil
}

// GetByID returns an inquiry by ID.
func (r *Repository) GetByID(id int64) (*Inquiry, error) {
	row := r.db.QueryRow(selectJoined+" WHERE i.id = ?", id)
	q, err := scanInquiry(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("inquiry %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying inquiry %d: %w", id, err)
	}
	return q, nil
}

// ListActive returns all non-archived inquiries, newest first.
func (r *Repository) ListActive() ([]*Inquiry, error) {
	return r.list(selectJoined + " WHERE i.archived = 0 ORDER BY i.created_at DESC, i.id DESC")
}

// ListByUser returns a user's own non-archived inquiries, newest first.
func (r *Repository) ListByUser(email string) ([]*Inquiry, error) {
	return r.list(
		selectJoined+" WHERE i.user_email = ? AND i.archived = 0 ORDER BY i.created_at DESC, i.id DESC",
		email,
	)
}

func (r *Repository) list(query string, args ...interface{}) ([]*Inquiry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing inquiries: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	var inquiries []*Inquiry
	for rows.Next() {
		q, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning inquiry: %w", err)
		}
		inquiries = append(inquiries, q)
	}

	return inquiries, rows.Err()
}

// Archive hides an inquiry from the active list without deleting it.
func (r *Repository) Archive(id int64) error {
	result, err := r.db.Exec("UPDATE inquiries SET archived = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("archiving inquiry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("inquiry %d not found", id)
	}

	return nil
}

// Delete removes an inquiry. Ownership is checked by the caller.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM inquiries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting inquiry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("inquiry %d not found", id)
	}

	return nil
}

// CountActive returns the number of non-archived inquiries.
func (r *Repository) CountActive() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM inquiries WHERE archived = 0").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting inquiries: %w", err)
	}
	return n, nil
}
