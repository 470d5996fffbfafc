package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/satish051/RealEstateApp/internal/client"
	"github.com/satish051/RealEstateApp/internal/property"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid property id %q", args[0])
			}

			p, err := fetchProperty(id)
			if err != nil {
				return err
			}

			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), p)
			}
			printProperty(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func fetchProperty(id int64) (*property.Property, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	if cfg.Remote() {
		c := client.New(cfg.ServerURL, cfg.APIKey)
		p, _, err := c.GetProperty(id, client.SimilarOptions{})
		return p, err
	}

	conn, err := openDB()
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer conn.Close()

	return property.NewRepository(conn).GetByID(id)
}
