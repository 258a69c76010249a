package ghost_test

import (
	"testing"

	"github.com/fivetwenty-io/ghost-client/pkg/ghost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptor_Allows(t *testing.T) {
	t.Parallel()

	users, ok := ghost.DescriptorFor("users")
	require.True(t, ok)

	assert.True(t, users.Allows(ghost.OpRead))
	assert.True(t, users.Allows(ghost.OpUpdate))
	assert.False(t, users.Allows(ghost.OpCreate))
	assert.False(t, users.Allows(ghost.OpDelete))
}

func TestDescriptorFor(t *testing.T) {
	t.Parallel()

	t.Run("unknown names miss", func(t *testing.T) {
		t.Parallel()

		_, ok := ghost.DescriptorFor("webhooks")
		assert.False(t, ok)
	})

	t.Run("surfaces match the API split", func(t *testing.T) {
		t.Parallel()

		authors, ok := ghost.DescriptorFor("authors")
		require.True(t, ok)
		assert.Equal(t, ghost.SurfaceContent, authors.Surface)

		members, ok := ghost.DescriptorFor("members")
		require.True(t, ok)
		assert.Equal(t, ghost.SurfaceAdmin, members.Surface)

		posts, ok := ghost.DescriptorFor("posts")
		require.True(t, ok)
		assert.Equal(t, ghost.SurfaceBoth, posts.Surface)
	})

	t.Run("singletons are flagged", func(t *testing.T) {
		t.Parallel()

		site, ok := ghost.DescriptorFor("site")
		require.True(t, ok)
		assert.True(t, site.Singleton)

		posts, ok := ghost.DescriptorFor("posts")
		require.True(t, ok)
		assert.False(t, posts.Singleton)
	})
}

func TestDescriptors(t *testing.T) {
	t.Parallel()

	all := ghost.Descriptors()
	require.NotEmpty(t, all)

	names := make([]string, 0, len(all))
	for _, d := range all {
		names = append(names, d.Name)
	}

	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "posts")
	assert.Contains(t, names, "settings")
}
