// Package saved tracks the listings a user has saved.
package saved

import (
	"database/sql"
	"fmt"
	"time"
)

// SavedProperty pairs a user with a saved listing, with enough of the
// property joined in for the favorites page.
type SavedProperty struct {
	ID            int64     `json:"id"`
	UserEmail     string    `json:"user_email"`
	PropertyID    int64     `json:"property_id"`
	CreatedAt     time.Time `json:"created_at"`
	PropertyTitle string    `json:"property_title,omitempty"`
	PropertyPrice int64     `json:"property_price,omitempty"`
	CoverImage    string    `json:"cover_image,omitempty"`
}

// Repository provides saved-property persistence.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a saved-property repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Toggle saves the property for the user if it isn't saved, or
// un-saves it if it is. Returns the new state.
func (r *Repository) Toggle(userEmail string, propertyID int64) (bool, error) {
	saved, err := r.IsSaved(userEmail, propertyID)
	if err != nil {
		return false, err
	}

	if saved {
		if _, err := r.db.Exec(
			"DELETE FROM saved_properties WHERE user_email = ? AND property_id = ?",
			userEmail, propertyID,
		); err != nil {
			return false, fmt.Errorf("removing saved property: %w", err)
		}
		return false, nil
	}

	if _, err := r.db.Exec(
		"INSERT INTO saved_properties (user_email, property_id) VALUES (?, ?)",
		userEmail, propertyID,
	); err != nil {
		return false, fmt.Errorf("saving property: %w", err)
	}
	return true, nil
}

// IsSaved reports whether the user has saved the property.
func (r *Repository) IsSaved(userEmail string, propertyID int64) (bool, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM saved_properties WHERE user_email = ? AND property_id = ?",
		userEmail, propertyID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking saved property: %w", err)
	}
	return count > 0, nil
}

// ListByUser returns the user's saved listings, most recent first.
// Listings whose property was deleted are dropped by the join.
func (r *Repository) ListByUser(userEmail string) ([]*SavedProperty, error) {
	rows, err := r.db.Query(
		`SELECT s.id, s.user_email, s.property_id, s.created_at, p.title, p.price, p.cover_image
		FROM saved_properties s JOIN properties p ON p.id = s.property_id
		WHERE s.user_email = ? ORDER BY s.created_at DESC, s.id DESC`,
		userEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("listing saved properties: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	var list []*SavedProperty
	for rows.Next() {
		var s SavedProperty
		if err := rows.Scan(&s.ID, &s.UserEmail, &s.PropertyID, &s.CreatedAt, &s.PropertyTitle, &s.PropertyPrice, &s.CoverImage); err != nil {
			return nil, fmt.Errorf("scanning saved property: %w", err)
		}
		list = append(list, &s)
	}

	return list, rows.Err()
}
