package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/ghost-client/internal/auth"
	"github.com/fivetwenty-io/ghost-client/internal/http"
	"github.com/fivetwenty-io/ghost-client/pkg/ghost"
)

// Client implements the ghost.Client interface.
type Client struct {
	httpClient    *http.Client
	signer        auth.TokenSigner
	version       ghost.Version
	hasAdminKey   bool
	hasContentKey bool
	logger        ghost.Logger

	// Resource clients
	posts   ghost.Resource
	pages   ghost.Resource
	tags    ghost.Resource
	authors ghost.Resource
	members ghost.Resource
	users   ghost.Resource
	images  ghost.ImagesResource
	themes  ghost.ThemesResource
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *ghost.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	return httpOpts
}

// New creates a new Ghost API client. baseURL must already be normalized;
// version must already be validated.
func New(baseURL string, version ghost.Version, config *ghost.Config) (*Client, error) {
	var signer auth.TokenSigner

	if config.AdminKey != "" {
		adminSigner, err := auth.NewAdminKeySigner(config.AdminKey, version)
		if err != nil {
			return nil, err
		}

		signer = adminSigner
	}

	httpClient := http.NewClient(baseURL, signer, config.ContentKey, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:    httpClient,
		signer:        signer,
		version:       version,
		hasAdminKey:   config.AdminKey != "",
		hasContentKey: config.ContentKey != "",
		logger:        config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.posts = c.resourceFor("posts")
	c.pages = c.resourceFor("pages")
	c.tags = c.resourceFor("tags")
	c.authors = c.resourceFor("authors")
	c.members = c.resourceFor("members")
	c.users = c.resourceFor("users")
	c.images = NewImagesClient(c)
	c.themes = NewThemesClient(c)
}

func (c *Client) resourceFor(name string) ghost.Resource {
	descriptor, ok := ghost.DescriptorFor(name)
	if !ok {
		panic(fmt.Sprintf("unknown resource %q", name))
	}

	return NewResourceClient(c, descriptor)
}

// Resource client accessors

// Posts implements ghost.Client.Posts.
func (c *Client) Posts() ghost.Resource {
	return c.posts
}

// Pages implements ghost.Client.Pages.
func (c *Client) Pages() ghost.Resource {
	return c.pages
}

// Tags implements ghost.Client.Tags.
func (c *Client) Tags() ghost.Resource {
	return c.tags
}

// Authors implements ghost.Client.Authors.
func (c *Client) Authors() ghost.Resource {
	return c.authors
}

// Members implements ghost.Client.Members.
func (c *Client) Members() ghost.Resource {
	return c.members
}

// Users implements ghost.Client.Users.
func (c *Client) Users() ghost.Resource {
	return c.users
}

// Images implements ghost.Client.Images.
func (c *Client) Images() ghost.ImagesResource {
	return c.images
}

// Themes implements ghost.Client.Themes.
func (c *Client) Themes() ghost.ThemesResource {
	return c.themes
}

// Version implements ghost.Client.Version.
func (c *Client) Version() ghost.Version {
	return c.version
}

// Site implements ghost.Client.Site. The site record is a singleton on the
// admin API and is returned as an object, not a collection.
func (c *Client) Site(ctx context.Context) (ghost.Record, error) {
	if !c.hasAdminKey {
		return nil, &ghost.CapabilityError{
			Resource: "site",
			Op:       ghost.OpRead,
			Reason:   "the client holds no admin key",
		}
	}

	path := c.version.BasePath() + "/admin/site/"

	resp, err := c.httpClient.Get(ctx, path, nil, http.AuthAdmin)
	if err != nil {
		return nil, fmt.Errorf("getting site: %w", err)
	}

	return decodeSingleton(resp.Body, "site")
}

// Settings implements ghost.Client.Settings. Settings live on the content
// API, which returns them as a single object keyed by setting name.
func (c *Client) Settings(ctx context.Context) (ghost.Record, error) {
	if !c.hasContentKey {
		return nil, &ghost.CapabilityError{
			Resource: "settings",
			Op:       ghost.OpRead,
			Reason:   "the client holds no content key",
		}
	}

	path := c.version.BasePath() + "/content/settings/"

	resp, err := c.httpClient.Get(ctx, path, nil, http.AuthContent)
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}

	return decodeSingleton(resp.Body, "settings")
}

// decodeCollection unpacks an envelope whose payload is a non-empty list,
// e.g. {"images": [{...}]}.
func decodeCollection(body []byte, key string) ([]ghost.Record, error) {
	var envelope map[string]json.RawMessage

	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}

	raw, ok := envelope[key]
	if !ok {
		return nil, ghost.ErrEmptyResponse
	}

	var records []ghost.Record

	err = json.Unmarshal(raw, &records)
	if err != nil {
		return nil, fmt.Errorf("decoding %s entries: %w", key, err)
	}

	if len(records) == 0 {
		return nil, ghost.ErrEmptyResponse
	}

	return records, nil
}

// decodeSingleton unpacks an envelope whose payload is a single object,
// e.g. {"site": {...}}.
func decodeSingleton(body []byte, key string) (ghost.Record, error) {
	var envelope map[string]json.RawMessage

	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", key, err)
	}

	raw, ok := envelope[key]
	if !ok {
		return nil, fmt.Errorf("parsing %s response: %w", key, ghost.ErrEmptyResponse)
	}

	var record ghost.Record

	err = json.Unmarshal(raw, &record)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", key, err)
	}

	return record, nil
}
