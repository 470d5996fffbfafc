package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/satish051/RealEstateApp/internal/catalog"
	"github.com/satish051/RealEstateApp/internal/client"
	"github.com/satish051/RealEstateApp/internal/property"
)

func newSimilarCmd() *cobra.Command {
	var (
		max     int
		band    float64
		seed    int64
		byPrice bool
	)

	cmd := &cobra.Command{
		Use:   "similar <id>",
		Short: "Show properties similar to the given one",
		Long: `Show listings similar to a reference property: same listing type,
price within a band around the reference price. By default the pick
is randomized; --by-price orders by price distance instead, and
--seed pins the randomized pick for repeatable output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid property id %q", args[0])
			}

			var seedPtr *int64
			if cmd.Flags().Changed("seed") {
				seedPtr = &seed
			}

			similar, err := fetchSimilar(id, max, band, seedPtr, byPrice)
			if err != nil {
				return err
			}

			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), similar)
			}
			if len(similar) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No similar properties found.")
				return nil
			}
			printProperties(cmd.OutOrStdout(), similar)
			return nil
		},
	}

	cmd.Flags().IntVarP(&max, "max", "m", 0, "maximum number of results")
	cmd.Flags().Float64VarP(&band, "band", "b", 0, "price band as a fraction of the reference price")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for the randomized pick")
	cmd.Flags().BoolVar(&byPrice, "by-price", false, "order by price distance instead of randomizing")

	return cmd
}

func fetchSimilar(id int64, max int, band float64, seed *int64, byPrice bool) ([]*property.Property, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	if cfg.Remote() {
		c := client.New(cfg.ServerURL, cfg.APIKey)
		_, similar, err := c.GetProperty(id, client.SimilarOptions{
			Max:     max,
			Band:    band,
			Seed:    seed,
			ByPrice: byPrice,
		})
		return similar, err
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

	opts := catalog.RecommendOptions{MaxResults: max, PriceBand: band}
	if byPrice {
		opts.Policy = catalog.PriceDistanceSelection{}
	} else {
		s := time.Now().UnixNano()
		if seed != nil {
			s = *seed
		}
		opts.Policy = catalog.ShuffleSelection(s)
	}

	return catalog.Recommend(all, id, opts)
}
