package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satish051/RealEstateApp/internal/db"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with demo listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openDB()
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer conn.Close()

			if err := db.SeedDemo(conn); err != nil {
				return fmt.Errorf("seeding demo data: %w", err)
			}

			fmt.Println("Demo data seeded.")
			return nil
		},
	}
}
