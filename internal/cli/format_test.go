package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/satish051/RealEstateApp/internal/inquiry"
	"github.com/satish051/RealEstateApp/internal/property"
)

func TestPrintProperties(t *testing.T) {
	props := []*property.Property{
		{ID: 1, Title: "Sunny Bungalow", Address: "12 Oak St", Price: 24500000, ListingType: property.ForSale, Bedrooms: 3, Bathrooms: 2},
		{ID: 2, Title: "Garden Studio", Address: "44 Rose Lane", Price: 78050, ListingType: property.ForRent, Bedrooms: 1, Bathrooms: 1},
	}

	var buf bytes.Buffer
	printProperties(&buf, props)
	out := buf.String()

	for _, want := range []string{"Sunny Bungalow", "12 Oak St", "$245000", "sale", "Garden Studio", "$780.50", "rent"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintPropertiesEmpty(t *testing.T) {
	var buf bytes.Buffer
	printProperties(&buf, nil)
	if !strings.Contains(buf.String(), "No properties") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrintProperty(t *testing.T) {
	p := &property.Property{
		ID:          7,
		Title:       "Sunny Bungalow",
		Address:     "12 Oak St",
		Price:       24500000,
		ListingType: property.ForSale,
		Bedrooms:    3,
		Bathrooms:   2,
		AgentName:   "Maya Shrestha",
		AgentEmail:  "maya@realestate.com",
		Description: "Bright corner lot.",
	}

	var buf bytes.Buffer
	printProperty(&buf, p)
	out := buf.String()

	for _, want := range []string{"Sunny Bungalow (#7)", "12 Oak St", "$245000", "Maya Shrestha", "Bright corner lot."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintInquiriesTruncatesMessage(t *testing.T) {
	long := strings.Repeat("x", 100)
	inquiries := []*inquiry.Inquiry{
		{ID: 1, UserEmail: "a@example.com", Message: long, CreatedAt: time.Now(), PropertyTitle: "Sunny Bungalow"},
		{ID: 2, UserEmail: "b@example.com", Message: "short", CreatedAt: time.Now()},
	}

	var buf bytes.Buffer
	printInquiries(&buf, inquiries)
	out := buf.String()

	if strings.Contains(out, long) {
		t.Error("long message should be truncated")
	}
	if !strings.Contains(out, "...") {
		t.Error("expected ellipsis on truncated message")
	}
	// deleted property placeholder
	if !strings.Contains(out, "(deleted)") {
		t.Error("expected placeholder for deleted property")
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{24500000, "$245000"},
		{78050, "$780.50"},
		{0, "$0"},
		{5, "$0.05"},
	}
	for _, tt := range tests {
		if got := formatPrice(tt.cents); got != tt.want {
			t.Errorf("formatPrice(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
