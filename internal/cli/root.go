package cli

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satish051/RealEstateApp/internal/client"
	"github.com/satish051/RealEstateApp/internal/db"
)

var (
	dbPath       string
	outputFormat string
)

// NewRootCmd builds the rea command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rea",
		Short: "Browse and manage real estate listings",
		Long: `rea is a real estate listing tool. It serves a listing website,
manages the local catalog, and can query a remote server over its API.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&dbPath, "db", "", "path to the database file")
	root.PersistentFlags().StringVarP(&outputFormat, "format", "f", "text", "output format (text or json)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newSimilarCmd())
	root.AddCommand(newInquiriesCmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// openDB opens the database at --db or the default location.
func openDB() (*sql.DB, error) {
	path := dbPath
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// newAPIClient builds a client from the stored config. Returns an
// error if no server is configured.
func newAPIClient() (*client.Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Remote() {
		return nil, fmt.Errorf("no server configured: run 'rea login' or set REA_SERVER_URL and REA_API_KEY")
	}
	return client.New(cfg.ServerURL, cfg.APIKey), nil
}
