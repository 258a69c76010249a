package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewThemesCommand creates the themes command group.
func NewThemesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "themes",
		Aliases: []string{"theme"},
		Short:   "Manage themes",
		Long:    "Upload and activate themes through the Ghost admin API",
	}

	cmd.AddCommand(newThemesUploadCommand())
	cmd.AddCommand(newThemesActivateCommand())

	return cmd
}

func newThemesUploadCommand() *cobra.Command {
	var activate bool

	cmd := &cobra.Command{
		Use:   "upload THEME_ZIP",
		Short: "Upload a theme",
		Long:  "Upload a theme zip archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			themeFile := args[0]

			if strings.Contains(themeFile, "..") {
				return ErrDirectoryTraversal
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			file, err := os.Open(themeFile) //nolint:gosec // G304: User-specified file path is intentional for CLI tool
			if err != nil {
				return fmt.Errorf("failed to open theme file: %w", err)
			}
			defer file.Close()

			ctx := context.Background()

			theme, err := client.Themes().Upload(ctx, themeFile, file)
			if err != nil {
				return fmt.Errorf("failed to upload theme: %w", err)
			}

			name := theme.String("name")
			fmt.Printf("Successfully uploaded theme '%s'\n", name)

			if activate {
				_, err = client.Themes().Activate(ctx, name)
				if err != nil {
					return fmt.Errorf("failed to activate theme: %w", err)
				}

				fmt.Printf("Successfully activated theme '%s'\n", name)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&activate, "activate", false, "activate the theme after upload")

	return cmd
}

func newThemesActivateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "activate THEME_NAME",
		Short: "Activate a theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			theme, err := client.Themes().Activate(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to activate theme: %w", err)
			}

			fmt.Printf("Successfully activated theme '%s'\n", theme.String("name"))

			return nil
		},
	}
}
