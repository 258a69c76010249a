package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/ghost-client/pkg/ghost"
	"github.com/spf13/cobra"
)

// resourceCommandConfig describes one collection command group.
type resourceCommandConfig struct {
	Use      string
	Singular string
	Short    string
	Columns  []string
	Resource func(client ghost.Client) ghost.Resource
	Writable bool
}

// NewPostsCommand creates the posts command group.
func NewPostsCommand() *cobra.Command {
	return newResourceCommand(resourceCommandConfig{
		Use:      "posts",
		Singular: "post",
		Short:    "Manage posts",
		Columns:  []string{"id", "title", "slug", "status", "published_at"},
		Resource: func(client ghost.Client) ghost.Resource { return client.Posts() },
		Writable: true,
	})
}

// NewPagesCommand creates the pages command group.
func NewPagesCommand() *cobra.Command {
	return newResourceCommand(resourceCommandConfig{
		Use:      "pages",
		Singular: "page",
		Short:    "Manage pages",
		Columns:  []string{"id", "title", "slug", "status", "published_at"},
		Resource: func(client ghost.Client) ghost.Resource { return client.Pages() },
		Writable: true,
	})
}

// NewTagsCommand creates the tags command group.
func NewTagsCommand() *cobra.Command {
	return newResourceCommand(resourceCommandConfig{
		Use:      "tags",
		Singular: "tag",
		Short:    "Manage tags",
		Columns:  []string{"id", "name", "slug", "visibility"},
		Resource: func(client ghost.Client) ghost.Resource { return client.Tags() },
		Writable: true,
	})
}

// NewMembersCommand creates the members command group.
func NewMembersCommand() *cobra.Command {
	return newResourceCommand(resourceCommandConfig{
		Use:      "members",
		Singular: "member",
		Short:    "Manage members",
		Columns:  []string{"id", "email", "name", "status"},
		Resource: func(client ghost.Client) ghost.Resource { return client.Members() },
		Writable: true,
	})
}

// NewAuthorsCommand creates the authors command group.
func NewAuthorsCommand() *cobra.Command {
	return newResourceCommand(resourceCommandConfig{
		Use:      "authors",
		Singular: "author",
		Short:    "List authors",
		Columns:  []string{"id", "name", "slug", "url"},
		Resource: func(client ghost.Client) ghost.Resource { return client.Authors() },
	})
}

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	return newResourceCommand(resourceCommandConfig{
		Use:      "users",
		Singular: "user",
		Short:    "Manage staff users",
		Columns:  []string{"id", "name", "slug", "email"},
		Resource: func(client ghost.Client) ghost.Resource { return client.Users() },
	})
}

func newResourceCommand(config resourceCommandConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:     config.Use,
		Aliases: []string{config.Singular},
		Short:   config.Short,
	}

	cmd.AddCommand(newResourceListCommand(config))
	cmd.AddCommand(newResourceGetCommand(config))

	if config.Writable {
		cmd.AddCommand(newResourceCreateCommand(config))
		cmd.AddCommand(newResourceUpdateCommand(config))
		cmd.AddCommand(newResourceDeleteCommand(config))
	}

	return cmd
}

func newResourceListCommand(config resourceCommandConfig) *cobra.Command {
	var (
		allPages bool
		limit    int
		page     int
		order    string
		filters  []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + config.Use,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			params := ghost.NewQueryParams().WithLimit(limit)

			if page > 0 {
				params.WithPage(page)
			}

			if order != "" {
				params.WithOrder(order)
			}

			for _, filter := range filters {
				field, value, ok := strings.Cut(filter, ":")
				if !ok {
					return fmt.Errorf("%w: %q (expected field:value)", ErrInvalidSetFlag, filter)
				}

				params.WithFilter(field, value)
			}

			resource := config.Resource(client)

			if allPages {
				results, err := resource.Paginate(ctx, params).All()
				if err != nil {
					return fmt.Errorf("failed to list %s: %w", config.Use, err)
				}

				records := make([]ghost.Record, 0, len(results))
				for _, result := range results {
					records = append(records, result.Record())
				}

				return renderRecords(records, config.Columns)
			}

			set, err := resource.Get(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", config.Use, err)
			}

			err = renderRecords(set.Records(), config.Columns)
			if err != nil {
				return err
			}

			if pagination := set.Pagination(); pagination.Next != nil {
				fmt.Printf("\nShowing page %d of %d. Use --all to fetch all pages.\n",
					pagination.Page, pagination.Pages)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&limit, "limit", 15, "results per page")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().StringVar(&order, "order", "", "ordering expression, e.g. 'published_at desc'")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter expression (field:value, repeatable)")

	return cmd
}

func newResourceGetCommand(config resourceCommandConfig) *cobra.Command {
	var bySlug bool

	cmd := &cobra.Command{
		Use:   "get ID_OR_SLUG",
		Short: "Get " + config.Singular + " details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			resource := config.Resource(client)

			var result *ghost.Result
			if bySlug {
				result, err = resource.GetBySlug(ctx, args[0])
			} else {
				result, err = resource.GetByID(ctx, args[0])
			}

			if err != nil {
				return fmt.Errorf("failed to get %s: %w", config.Singular, err)
			}

			return renderRecord(result.Record())
		},
	}

	cmd.Flags().BoolVar(&bySlug, "slug", false, "look up by slug instead of id")

	return cmd
}

func newResourceCreateCommand(config resourceCommandConfig) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + config.Singular,
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := parseSetFlags(sets)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			created, err := config.Resource(client).Create(ctx, record)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", config.Singular, err)
			}

			fmt.Printf("Successfully created %s '%s'\n", config.Singular, created[0].ID())

			return renderRecord(created[0])
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "field to set (key=value, repeatable)")

	return cmd
}

func newResourceUpdateCommand(config resourceCommandConfig) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a " + config.Singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseSetFlags(sets)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			updated, err := config.Resource(client).Update(ctx, args[0], fields)
			if err != nil {
				return fmt.Errorf("failed to update %s: %w", config.Singular, err)
			}

			fmt.Printf("Successfully updated %s '%s'\n", config.Singular, updated.ID())

			return renderRecord(updated)
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "field to set (key=value, repeatable)")

	return cmd
}

func newResourceDeleteCommand(config resourceCommandConfig) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a " + config.Singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("Really delete %s '%s'? (y/N): ", config.Singular, args[0])

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					fmt.Println("Cancelled")

					return nil
				}
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			err = config.Resource(client).Delete(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete %s: %w", config.Singular, err)
			}

			fmt.Printf("Successfully deleted %s '%s'\n", config.Singular, args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "force deletion without confirmation")

	return cmd
}
