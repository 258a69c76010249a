package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewSiteCommand creates the site command.
func NewSiteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "site",
		Short: "Show site details",
		Long:  "Display the site record from the admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			site, err := client.Site(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get site: %w", err)
			}

			return renderRecord(site)
		},
	}
}

// NewSettingsCommand creates the settings command.
func NewSettingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show public settings",
		Long:  "Display the public settings record from the content API",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			settings, err := client.Settings(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get settings: %w", err)
			}

			return renderRecord(settings)
		},
	}
}
