// Package ghostclient provides the main entry point for creating Ghost API clients
package ghostclient

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/fivetwenty-io/ghost-client/internal/client"
	"github.com/fivetwenty-io/ghost-client/pkg/ghost"
)

// adminKeyPattern is the "id:secret" shape of an admin API key, the secret
// hex encoded.
var adminKeyPattern = regexp.MustCompile(`^[^:]+:[0-9a-fA-F]+$`)

// New creates a new Ghost API client from the configuration.
func New(config *ghost.Config) (ghost.Client, error) {
	if config == nil {
		return nil, ghost.ErrConfigRequired
	}

	err := validateConfig(config)
	if err != nil {
		return nil, err
	}

	version, err := ghost.ParseVersion(config.Version)
	if err != nil {
		return nil, err
	}

	baseURL := normalizeSiteURL(config.SiteURL)

	ghostClient, err := client.New(baseURL, version, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return ghostClient, nil
}

// NewAdmin creates a client with just a site URL and an admin API key.
func NewAdmin(siteURL, adminKey string) (ghost.Client, error) {
	return New(&ghost.Config{
		SiteURL:  siteURL,
		AdminKey: adminKey,
	})
}

// NewContent creates a read-only client with just a site URL and a content
// API key.
func NewContent(siteURL, contentKey string) (ghost.Client, error) {
	return New(&ghost.Config{
		SiteURL:    siteURL,
		ContentKey: contentKey,
	})
}

// validateConfig checks the credential shape before any key parsing or
// network I/O.
func validateConfig(config *ghost.Config) error {
	if config.SiteURL == "" {
		return ghost.ErrSiteURLRequired
	}

	if config.AdminKey == "" && config.ContentKey == "" {
		return ghost.ErrNoCredentials
	}

	err := validation.ValidateStruct(config,
		validation.Field(&config.AdminKey,
			validation.Match(adminKeyPattern).ErrorObject(validation.NewError("invalid_admin_key", ghost.ErrInvalidAdminKey.Error()))),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ghost.ErrInvalidAdminKey, err)
	}

	return nil
}

// normalizeSiteURL trims a trailing slash and defaults to https when no
// scheme was given.
func normalizeSiteURL(siteURL string) string {
	normalized := strings.TrimSuffix(siteURL, "/")
	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}

	return normalized
}
