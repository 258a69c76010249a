package client

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/fivetwenty-io/ghost-client/internal/http"
	"github.com/fivetwenty-io/ghost-client/pkg/ghost"
)

// ImagesClient implements ghost.ImagesResource.
type ImagesClient struct {
	client *Client
}

// NewImagesClient creates a new images client.
func NewImagesClient(client *Client) *ImagesClient {
	return &ImagesClient{client: client}
}

// Upload implements ghost.ImagesResource.Upload. The image is sent as a
// multipart POST with purpose=image; the ref field lets the caller correlate
// the stored URL with the original file name.
func (i *ImagesClient) Upload(ctx context.Context, name string, content io.Reader) (ghost.Record, error) {
	if !i.client.hasAdminKey {
		return nil, &ghost.CapabilityError{
			Resource: "images",
			Op:       ghost.OpCreate,
			Reason:   "the client holds no admin key",
		}
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ref := name
	if ref == "" {
		ref = uuid.NewString()
	}

	path := i.client.version.BasePath() + "/admin/images/upload/"
	file := http.File{
		FieldName:   "file",
		FileName:    filepath.Base(name),
		ContentType: contentType,
		Content:     content,
	}
	fields := map[string]string{
		"purpose": "image",
		"ref":     ref,
	}

	resp, err := i.client.httpClient.Upload(ctx, path, nil, file, fields)
	if err != nil {
		return nil, fmt.Errorf("uploading image %q: %w", name, err)
	}

	records, err := decodeCollection(resp.Body, "images")
	if err != nil {
		return nil, fmt.Errorf("parsing image upload response: %w", err)
	}

	return records[0], nil
}
