package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/satish051/RealEstateApp/internal/inquiry"
	"github.com/satish051/RealEstateApp/internal/property"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printProperties writes a property table.
func printProperties(w io.Writer, props []*property.Property) {
	if len(props) == 0 {
		fmt.Fprintln(w, "No properties found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tADDRESS\tPRICE\tTYPE\tBD\tBA")
	for _, p := range props {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%d\n",
			p.ID, p.Title, p.Address, formatPrice(p.Price), listingLabel(p.ListingType), p.Bedrooms, p.Bathrooms)
	}
	tw.Flush()
}

// printProperty writes the detail view of a single property.
func printProperty(w io.Writer, p *property.Property) {
	fmt.Fprintf(w, "%s (#%d)\n", p.Title, p.ID)
	fmt.Fprintf(w, "  Address:  %s\n", p.Address)
	fmt.Fprintf(w, "  Price:    %s\n", formatPrice(p.Price))
	fmt.Fprintf(w, "  Type:     %s\n", listingLabel(p.ListingType))
	fmt.Fprintf(w, "  Rooms:    %d bd, %d ba\n", p.Bedrooms, p.Bathrooms)
	if p.AgentName != "" {
		fmt.Fprintf(w, "  Agent:    %s <%s>\n", p.AgentName, p.AgentEmail)
	}
	if p.Description != "" {
		fmt.Fprintf(w, "\n  %s\n", strings.ReplaceAll(p.Description, "\n", "\n  "))
	}
}

// printInquiries writes an inquiry table.
func printInquiries(w io.Writer, inquiries []*inquiry.Inquiry) {
	if len(inquiries) == 0 {
		fmt.Fprintln(w, "No inquiries.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCLIENT\tPROPERTY\tMESSAGE")
	for _, q := range inquiries {
		title := q.PropertyTitle
		if title == "" {
			title = "(deleted)"
		}
		msg := q.Message
		if len(msg) > 60 {
			msg = msg[:57] + "..."
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			q.ID, q.CreatedAt.Format("2006-01-02"), q.UserEmail, title, msg)
	}
	tw.Flush()
}

func formatPrice(cents int64) string {
	if cents%100 == 0 {
		return fmt.Sprintf("$%d", cents/100)
	}
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func listingLabel(t property.ListingType) string {
	switch t {
	case property.ForSale:
		return "sale"
	case property.ForRent:
		return "rent"
	}
	return string(t)
}
