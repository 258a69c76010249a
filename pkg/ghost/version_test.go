package ghost_test

import (
	"testing"

	"github.com/fivetwenty-io/ghost-client/pkg/ghost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	t.Run("empty selects the default", func(t *testing.T) {
		t.Parallel()

		version, err := ghost.ParseVersion("")
		require.NoError(t, err)
		assert.Equal(t, ghost.DefaultVersion, version)
	})

	t.Run("accepts supported tags", func(t *testing.T) {
		t.Parallel()

		for _, tag := range []string{"v3", "v4", "v5"} {
			version, err := ghost.ParseVersion(tag)
			require.NoError(t, err)
			assert.Equal(t, tag, version.String())
		}
	})

	t.Run("rejects anything else", func(t *testing.T) {
		t.Parallel()

		for _, tag := range []string{"v2", "5", "latest"} {
			_, err := ghost.ParseVersion(tag)
			require.ErrorIs(t, err, ghost.ErrUnsupportedVersion, "tag %q", tag)
		}
	})
}

func TestVersion_Paths(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/ghost/api/v5", ghost.V5.BasePath())
	assert.Equal(t, "/ghost/api/v3", ghost.V3.BasePath())

	assert.Equal(t, "/admin/", ghost.V5.AdminAudience())
	assert.Equal(t, "/v4/admin/", ghost.V4.AdminAudience())
	assert.Equal(t, "/v3/admin/", ghost.V3.AdminAudience())
}
