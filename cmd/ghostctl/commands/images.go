package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// ErrDirectoryTraversal is returned for upload paths containing "..".
var ErrDirectoryTraversal = errors.New("invalid file path: directory traversal not allowed")

// NewImagesCommand creates the images command group.
func NewImagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "images",
		Aliases: []string{"image"},
		Short:   "Manage images",
		Long:    "Upload images to the Ghost admin API",
	}

	cmd.AddCommand(newImagesUploadCommand())

	return cmd
}

func newImagesUploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload IMAGE_FILE",
		Short: "Upload an image",
		Long:  "Upload an image file and print its stored URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imageFile := args[0]

			if strings.Contains(imageFile, "..") {
				return ErrDirectoryTraversal
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			file, err := os.Open(imageFile) //nolint:gosec // G304: User-specified file path is intentional for CLI tool
			if err != nil {
				return fmt.Errorf("failed to open image file: %w", err)
			}
			defer file.Close()

			image, err := client.Images().Upload(context.Background(), imageFile, file)
			if err != nil {
				return fmt.Errorf("failed to upload image: %w", err)
			}

			fmt.Printf("Successfully uploaded image\n")
			fmt.Printf("  URL: %s\n", image.String("url"))

			if ref := image.String("ref"); ref != "" {
				fmt.Printf("  Ref: %s\n", ref)
			}

			return nil
		},
	}
}
