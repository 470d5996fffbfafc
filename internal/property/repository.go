package property

import (
	"database/sql"
	"fmt"
)

// Repository provides CRUD operations for properties and their images.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a property repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, title, description, address, price, bedrooms, bathrooms, listing_type, cover_image, agent_name, agent_email, agent_phone, created_at, updated_at`

// scanProperty scans a property from a database row.
func scanProperty(row interface{ Scan(...interface{}) error }) (*Property, error) {
	var p Property
	var listingType string
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Address,
		&p.Price, &p.Bedrooms, &p.Bathrooms, &listingType,
		&p.CoverImage, &p.AgentName, &p.AgentEmail, &p.AgentPhone,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ListingType = ListingType(listingType)
	return &p, nil
}

// Insert adds a new property and returns it with its generated ID.
func (r *Repository) Insert(p *Property) (*Property, error) {
	if !ValidListingType(string(p.ListingType)) {
		return nil, fmt.Errorf("invalid listing type: %s", p.ListingType)
	}
	if p.Price < 0 {
		return nil, fmt.Errorf("price must be non-negative, got %d", p.Price)
	}

	result, err := r.db.Exec(
		`INSERT INTO properties
		(title, description, address, price, bedrooms, bathrooms, listing_type, cover_image, agent_name, agent_email, agent_phone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.Address, p.Price, p.Bedrooms, p.Bathrooms,
		string(p.ListingType), p.CoverImage, p.AgentName, p.AgentEmail, p.AgentPhone,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting property: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a property by its ID, including its gallery images.
func (r *Repository) GetByID(id int64) (*Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = ?", selectColumns)
	row := r.db.QueryRow(query, id)

	p, err := scanProperty(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("property %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying property %d: %w", id, err)
	}

	images, err := r.ListImages(id)
	if err != nil {
		return nil, err
	}
	p.Images = images

	return p, nil
}

// List returns the full catalog in insertion order.
// This is the snapshot handed to the catalog filter and recommender;
// any further narrowing or ordering happens there or in rendering.
func (r *Repository) List() ([]*Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties ORDER BY id", selectColumns)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	var properties []*Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		properties = append(properties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating properties: %w", err)
	}

	return properties, nil
}

// Update saves changes to an existing property.
func (r *Repository) Update(p *Property) error {
	if !ValidListingType(string(p.ListingType)) {
		return fmt.Errorf("invalid listing type: %s", p.ListingType)
	}

	result, err := r.db.Exec(
		`UPDATE properties SET title = ?, description = ?, address = ?, price = ?,
		bedrooms = ?, bathrooms = ?, listing_type = ?, cover_image = ?,
		agent_name = ?, agent_email = ?, agent_phone = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		p.Title, p.Description, p.Address, p.Price, p.Bedrooms, p.Bathrooms,
		string(p.ListingType), p.CoverImage, p.AgentName, p.AgentEmail, p.AgentPhone,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("property %d not found", p.ID)
	}

	return nil
}

// Delete removes a property by ID. Images cascade.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM properties WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("property %d not found", id)
	}

	return nil
}

// AddImage attaches a gallery image to a property.
// The first image attached becomes the cover image.
func (r *Repository) AddImage(propertyID int64, filename string) (*Image, error) {
	result, err := r.db.Exec(
		"INSERT INTO property_images (property_id, filename) VALUES (?, ?)",
		propertyID, filename,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting image: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting image id: %w", err)
	}

	if _, err := r.db.Exec(
		"UPDATE properties SET cover_image = ? WHERE id = ? AND cover_image = ''",
		filename, propertyID,
	); err != nil {
		return nil, fmt.Errorf("setting cover image: %w", err)
	}

	return &Image{ID: id, PropertyID: propertyID, Filename: filename}, nil
}

// GetImage returns an image by its ID.
func (r *Repository) GetImage(id int64) (*Image, error) {
	var img Image
	err := r.db.QueryRow(
		"SELECT id, property_id, filename FROM property_images WHERE id = ?", id,
	).Scan(&img.ID, &img.PropertyID, &img.Filename)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("image %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying image %d: %w", id, err)
	}
	return &img, nil
}

// ListImages returns all gallery images for a property.
func (r *Repository) ListImages(propertyID int64) ([]*Image, error) {
	rows, err := r.db.Query(
		"SELECT id, property_id, filename FROM property_images WHERE property_id = ? ORDER BY id",
		propertyID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	var images []*Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.PropertyID, &img.Filename); err != nil {
			return nil, fmt.Errorf("scanning image: %w", err)
		}
		images = append(images, &img)
	}

	return images, rows.Err()
}

// DeleteImage removes a gallery image record.
func (r *Repository) DeleteImage(id int64) error {
	result, err := r.db.Exec("DELETE FROM property_images WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("image %d not found", id)
	}

	return nil
}

// Count returns the number of properties in the catalog.
func (r *Repository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM properties").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting properties: %w", err)
	}
	return n, nil
}

// TotalValue returns the summed price of all properties, in cents.
func (r *Repository) TotalValue() (int64, error) {
	var total int64
	if err := r.db.QueryRow("SELECT COALESCE(SUM(price), 0) FROM properties").Scan(&total); err != nil {
		return 0, fmt.Errorf("summing prices: %w", err)
	}
	return total, nil
}
