package ghostclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/ghost-client/pkg/ghost"
	"github.com/fivetwenty-io/ghost-client/pkg/ghostclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminKey = "64f1a8b0c3d2e1f09a8b7c6d:0123456789abcdef0123456789abcdef"

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNew_Validation(t *testing.T) {
	t.Parallel()

	t.Run("requires a config", func(t *testing.T) {
		t.Parallel()

		_, err := ghostclient.New(nil)
		require.ErrorIs(t, err, ghost.ErrConfigRequired)
	})

	t.Run("requires a site URL", func(t *testing.T) {
		t.Parallel()

		_, err := ghostclient.New(&ghost.Config{AdminKey: testAdminKey})
		require.ErrorIs(t, err, ghost.ErrSiteURLRequired)
	})

	t.Run("requires at least one credential", func(t *testing.T) {
		t.Parallel()

		_, err := ghostclient.New(&ghost.Config{SiteURL: "https://demo.ghost.io"})
		require.ErrorIs(t, err, ghost.ErrNoCredentials)
	})

	t.Run("rejects a malformed admin key", func(t *testing.T) {
		t.Parallel()

		for _, key := range []string{"no-separator", "id:not-hex!", ":0123abc"} {
			_, err := ghostclient.New(&ghost.Config{
				SiteURL:  "https://demo.ghost.io",
				AdminKey: key,
			})
			require.ErrorIs(t, err, ghost.ErrInvalidAdminKey, "key %q", key)
		}
	})

	t.Run("rejects an unsupported version", func(t *testing.T) {
		t.Parallel()

		_, err := ghostclient.New(&ghost.Config{
			SiteURL:  "https://demo.ghost.io",
			AdminKey: testAdminKey,
			Version:  "v2",
		})
		require.ErrorIs(t, err, ghost.ErrUnsupportedVersion)
	})

	t.Run("defaults to the latest version", func(t *testing.T) {
		t.Parallel()

		cli, err := ghostclient.New(&ghost.Config{
			SiteURL:  "https://demo.ghost.io",
			AdminKey: testAdminKey,
		})
		require.NoError(t, err)
		assert.Equal(t, ghost.V5, cli.Version())
	})

	t.Run("accepts an explicit version", func(t *testing.T) {
		t.Parallel()

		cli, err := ghostclient.New(&ghost.Config{
			SiteURL:    "https://demo.ghost.io",
			ContentKey: "content-key",
			Version:    "v3",
		})
		require.NoError(t, err)
		assert.Equal(t, ghost.V3, cli.Version())
	})
}

func TestNew_SiteURLNormalization(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/ghost/api/v5/admin/site/", request.URL.Path)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"site": map[string]interface{}{"title": "Demo"},
		})
	}))
	defer server.Close()

	// The trailing slash must not produce a double slash in request paths.
	cli, err := ghostclient.New(&ghost.Config{
		SiteURL:  server.URL + "/",
		AdminKey: testAdminKey,
	})
	require.NoError(t, err)

	site, err := cli.Site(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Demo", site.String("title"))
}

func TestNewAdmin(t *testing.T) {
	t.Parallel()

	cli, err := ghostclient.NewAdmin("https://demo.ghost.io", testAdminKey)
	require.NoError(t, err)
	assert.False(t, cli.Posts().ReadOnly())
}

func TestNewContent(t *testing.T) {
	t.Parallel()

	cli, err := ghostclient.NewContent("https://demo.ghost.io", "content-key")
	require.NoError(t, err)
	assert.True(t, cli.Posts().ReadOnly())
}
