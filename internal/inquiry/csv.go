package inquiry

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// csvHeader matches the back-office export layout.
var csvHeader = []string{"Date", "Client Email", "Property Title", "Property Price", "Agent Name", "Message"}

// WriteCSV writes inquiries as CSV for the back-office export.
// Inquiries against a deleted property export as "Deleted Property".
func WriteCSV(w io.Writer, inquiries []*Inquiry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, q := range inquiries {
		title := q.PropertyTitle
		agent := q.AgentName
		if title == "" {
			title = "Deleted Property"
			agent = "N/A"
		}

		row := []string{
			q.CreatedAt.Format("2006-01-02 15:04"),
			q.UserEmail,
			title,
			formatPrice(q.PropertyPrice),
			agent,
			strings.ReplaceAll(q.Message, "\n", " "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing inquiry %d: %w", q.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatPrice renders cents as a decimal amount.
func formatPrice(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
