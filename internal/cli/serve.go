package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/satish051/RealEstateApp/internal/auth"
	"github.com/satish051/RealEstateApp/internal/db"
	"github.com/satish051/RealEstateApp/internal/logging"
	"github.com/satish051/RealEstateApp/internal/web"
)

func newServeCmd() *cobra.Command {
	var (
		port     int
		imageDir string
		seedDemo bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the listing website",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := auth.ConfigFromEnv()
			logging.Setup(cfg.DevMode)

			conn, err := openDB()
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer conn.Close()

			if seedDemo {
				if err := db.SeedDemo(conn); err != nil {
					return fmt.Errorf("seeding demo data: %w", err)
				}
			}

			if imageDir == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("finding home directory: %w", err)
				}
				imageDir = filepath.Join(home, ".realestate", "images")
			}

			srv, err := web.NewServer(conn, cfg, imageDir)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}

			return srv.ListenAndServe(port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on")
	cmd.Flags().StringVar(&imageDir, "images", "", "directory for uploaded images")
	cmd.Flags().BoolVar(&seedDemo, "seed", false, "seed demo data before starting")

	return cmd
}
