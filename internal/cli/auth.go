package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satish051/RealEstateApp/internal/client"
)

func newLoginCmd() *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "login <server-url>",
		Short: "Store server credentials for remote commands",
		Long: `Store a server URL and API key in the config file. API keys are
created in the web UI and start with "rea_".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverURL := strings.TrimSuffix(args[0], "/")
			if apiKey == "" {
				return fmt.Errorf("--api-key is required")
			}
			if !strings.HasPrefix(apiKey, "rea_") {
				return fmt.Errorf("API keys start with \"rea_\"")
			}

			// verify the key before storing it
			c := client.New(serverURL, apiKey)
			if _, err := c.ListProperties(client.ListOptions{}); err != nil {
				return fmt.Errorf("verifying credentials: %w", err)
			}

			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			cfg.ServerURL = serverURL
			cfg.APIKey = apiKey
			if err := SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s\n", serverURL)
			return nil
		},
	}

	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "API key for the server")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored server credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			cfg.ServerURL = ""
			cfg.APIKey = ""
			if err := SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connection status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !cfg.Remote() {
				fmt.Fprintln(out, "Not logged in. Commands use the local database.")
				return nil
			}

			fmt.Fprintf(out, "Server: %s\n", cfg.ServerURL)

			c := client.New(cfg.ServerURL, cfg.APIKey)
			if _, err := c.ListProperties(client.ListOptions{}); err != nil {
				fmt.Fprintf(out, "Status: unreachable (%v)\n", err)
				return nil
			}
			fmt.Fprintln(out, "Status: connected")
			return nil
		},
	}
}
