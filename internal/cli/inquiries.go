package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/satish051/RealEstateApp/internal/inquiry"
)

func newInquiriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inquiries",
		Short: "Manage inquiries in the local database",
	}

	cmd.AddCommand(newInquiriesListCmd())
	cmd.AddCommand(newInquiriesExportCmd())

	return cmd
}

func newInquiriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active inquiries",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openDB()
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer conn.Close()

			inquiries, err := inquiry.NewRepository(conn).ListActive()
			if err != nil {
				return err
			}

			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), inquiries)
			}
			printInquiries(cmd.OutOrStdout(), inquiries)
			return nil
		},
	}
}

func newInquiriesExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export active inquiries as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openDB()
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer conn.Close()

			inquiries, err := inquiry.NewRepository(conn).ListActive()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if err := inquiry.WriteCSV(w, inquiries); err != nil {
				return fmt.Errorf("writing CSV: %w", err)
			}

			if output != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d inquiries to %s\n", len(inquiries), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}
