package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satish051/RealEstateApp/internal/catalog"
	"github.com/satish051/RealEstateApp/internal/client"
	"github.com/satish051/RealEstateApp/internal/property"
)

func newListCmd() *cobra.Command {
	var (
		search      string
		minPrice    int64
		maxPrice    int64
		listingType string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List properties, optionally filtered",
		Long: `List properties from the configured server, or from the local
database when no server is configured. Prices are in whole dollars.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listingType != "" && !property.ValidListingType(listingType) {
				return fmt.Errorf("invalid listing type %q (use for_sale or for_rent)", listingType)
			}

			var min, max *int64
			if cmd.Flags().Changed("min-price") {
				min = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				max = &maxPrice
			}

			props, err := fetchProperties(search, min, max, listingType)
			if err != nil {
				return err
			}

			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), props)
			}
			printProperties(cmd.OutOrStdout(), props)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "search title and address")
	cmd.Flags().Int64Var(&minPrice, "min-price", 0, "minimum price in dollars")
	cmd.Flags().Int64Var(&maxPrice, "max-price", 0, "maximum price in dollars")
	cmd.Flags().StringVarP(&listingType, "type", "t", "", "listing type (for_sale or for_rent)")

	return cmd
}

// fetchProperties queries the remote server when configured, falling
// back to the local database.
func fetchProperties(search string, min, max *int64, listingType string) ([]*property.Property, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	if cfg.Remote() {
		c := client.New(cfg.ServerURL, cfg.APIKey)
		return c.ListProperties(client.ListOptions{
			Search:      search,
			MinPrice:    min,
			MaxPrice:    max,
			ListingType: listingType,
		})
	}

	conn, err := openDB()
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer conn.Close()

	all, err := property.NewRepository(conn).List()
	if err != nil {
		return nil, err
	}

	q := catalog.Query{
		SearchText:  search,
		ListingType: property.ListingType(listingType),
	}
	if min != nil {
		cents := *min * 100
		q.MinPrice = &cents
	}
	if max != nil {
		cents := *max * 100
		q.MaxPrice = &cents
	}

	return catalog.Filter(all, q), nil
}
