package client

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fivetwenty-io/ghost-client/internal/http"
	"github.com/fivetwenty-io/ghost-client/pkg/ghost"
)

// ThemesClient implements ghost.ThemesResource.
type ThemesClient struct {
	client *Client
}

// NewThemesClient creates a new themes client.
func NewThemesClient(client *Client) *ThemesClient {
	return &ThemesClient{client: client}
}

// Upload implements ghost.ThemesResource.Upload. The theme is sent as a
// multipart POST of the zip archive; the server unpacks and validates it.
func (t *ThemesClient) Upload(ctx context.Context, name string, zip io.Reader) (ghost.Record, error) {
	if !t.client.hasAdminKey {
		return nil, &ghost.CapabilityError{
			Resource: "themes",
			Op:       ghost.OpCreate,
			Reason:   "the client holds no admin key",
		}
	}

	path := t.client.version.BasePath() + "/admin/themes/upload/"
	file := http.File{
		FieldName:   "file",
		FileName:    filepath.Base(name),
		ContentType: "application/zip",
		Content:     zip,
	}

	resp, err := t.client.httpClient.Upload(ctx, path, nil, file, nil)
	if err != nil {
		return nil, fmt.Errorf("uploading theme %q: %w", name, err)
	}

	records, err := decodeCollection(resp.Body, "themes")
	if err != nil {
		return nil, fmt.Errorf("parsing theme upload response: %w", err)
	}

	return records[0], nil
}

// Activate implements ghost.ThemesResource.Activate.
func (t *ThemesClient) Activate(ctx context.Context, name string) (ghost.Record, error) {
	if !t.client.hasAdminKey {
		return nil, &ghost.CapabilityError{
			Resource: "themes",
			Op:       ghost.OpUpdate,
			Reason:   "the client holds no admin key",
		}
	}

	path := fmt.Sprintf("%s/admin/themes/%s/activate/", t.client.version.BasePath(), name)

	resp, err := t.client.httpClient.Put(ctx, path, nil, nil, http.AuthAdmin)
	if err != nil {
		return nil, fmt.Errorf("activating theme %q: %w", name, err)
	}

	records, err := decodeCollection(resp.Body, "themes")
	if err != nil {
		return nil, fmt.Errorf("parsing theme activation response: %w", err)
	}

	return records[0], nil
}
