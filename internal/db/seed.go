package db

import (
	"database/sql"
	"fmt"
)

// SeedDemo inserts a small demo catalog and agent roster so a fresh
// install has something to browse. Running it twice is a no-op.
func SeedDemo(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM properties").Scan(&count); err != nil {
		return fmt.Errorf("checking catalog: %w", err)
	}
	if count > 0 {
		return nil
	}

	properties := []struct {
		title, description, address string
		price                       int64
		bedrooms, bathrooms         int
		listingType                 string
		agentName, agentEmail       string
	}{
		{"Sunny Family Bungalow", "Bright three-bedroom bungalow with a fenced garden.", "12 Oak Street", 24500000, 3, 2, "for_sale", "Maya Shrestha", "maya@realestate.com"},
		{"Downtown Loft", "Open-plan loft above the market square.", "88 Main Avenue", 31900000, 2, 1, "for_sale", "Maya Shrestha", "maya@realestate.com"},
		{"Lakeview Apartment", "Fifth-floor apartment overlooking the lake.", "5 Lakeview Drive", 115000, 2, 1, "for_rent", "Prakash Karki", "prakash@realestate.com"},
		{"Hilltop Villa", "Five-bedroom villa with panoramic valley views.", "1 Summit Road", 89000000, 5, 4, "for_sale", "Prakash Karki", "prakash@realestate.com"},
		{"Garden Studio", "Compact studio with private patio.", "44 Rose Lane", 78000, 1, 1, "for_rent", "Maya Shrestha", "maya@realestate.com"},
		{"Riverside Cottage", "Two-bedroom cottage a short walk from the river path.", "7 Mill Bank", 26900000, 2, 1, "for_sale", "Prakash Karki", "prakash@realestate.com"},
	}

	for _, p := range properties {
		if _, err := db.Exec(
			`INSERT INTO properties (title, description, address, price, bedrooms, bathrooms, listing_type, agent_name, agent_email)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.title, p.description, p.address, p.price, p.bedrooms, p.bathrooms, p.listingType, p.agentName, p.agentEmail,
		); err != nil {
			return fmt.Errorf("seeding property %q: %w", p.title, err)
		}
	}

	agents := []struct {
		name, email, phone, bio string
	}{
		{"Maya Shrestha", "maya@realestate.com", "+977 9800000001", "Senior consultant, residential sales."},
		{"Prakash Karki", "prakash@realestate.com", "+977 9800000002", "Rentals and lettings."},
	}

	for _, a := range agents {
		if _, err := db.Exec(
			"INSERT INTO agents (full_name, email, phone, bio) VALUES (?, ?, ?, ?)",
			a.name, a.email, a.phone, a.bio,
		); err != nil {
			return fmt.Errorf("seeding agent %q: %w", a.name, err)
		}
	}

	return nil
}
