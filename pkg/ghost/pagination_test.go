package ghost_test

import (
	"context"
	"testing"

	"github.com/fivetwenty-io/ghost-client/pkg/ghost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterator_All(t *testing.T) {
	t.Parallel()

	resource := newFakeResource("posts",
		records("p1", "p2"),
		records("p3", "p4"),
		records("p5"))

	iter := resource.Paginate(context.Background(), ghost.NewQueryParams().WithLimit(2))

	results, err := iter.All()
	require.NoError(t, err)
	require.Len(t, results, 5)

	ids := make([]string, 0, len(results))
	for _, result := range results {
		ids = append(ids, result.ID())
	}

	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, ids)
	assert.Equal(t, 3, resource.getCalls)
}

func TestIterator_Next(t *testing.T) {
	t.Parallel()

	t.Run("fetches lazily", func(t *testing.T) {
		t.Parallel()

		resource := newFakeResource("posts", records("p1", "p2"), records("p3"))

		iter := resource.Paginate(context.Background(), ghost.NewQueryParams().WithLimit(2))
		assert.Equal(t, 0, resource.getCalls)

		first, err := iter.Next()
		require.NoError(t, err)
		assert.Equal(t, "p1", first.ID())
		assert.Equal(t, 1, resource.getCalls)

		second, err := iter.Next()
		require.NoError(t, err)
		assert.Equal(t, "p2", second.ID())
		assert.Equal(t, 1, resource.getCalls)

		third, err := iter.Next()
		require.NoError(t, err)
		assert.Equal(t, "p3", third.ID())
		assert.Equal(t, 2, resource.getCalls)
	})

	t.Run("reports exhaustion", func(t *testing.T) {
		t.Parallel()

		resource := newFakeResource("posts", records("p1"))

		iter := resource.Paginate(context.Background(), ghost.NewQueryParams())

		_, err := iter.Next()
		require.NoError(t, err)
		assert.False(t, iter.HasNext())

		_, err = iter.Next()
		require.ErrorIs(t, err, ghost.ErrNoMoreItems)

		_, err = iter.Next()
		require.ErrorIs(t, err, ghost.ErrNoMoreItems)
	})

	t.Run("empty resource terminates on the first fetch", func(t *testing.T) {
		t.Parallel()

		resource := newFakeResource("posts")

		iter := resource.Paginate(context.Background(), ghost.NewQueryParams())
		assert.True(t, iter.HasNext())

		_, err := iter.Next()
		require.ErrorIs(t, err, ghost.ErrNoMoreItems)
		assert.False(t, iter.HasNext())
		assert.Equal(t, 1, resource.getCalls)
	})
}

func TestIterator_PageSize(t *testing.T) {
	t.Parallel()

	t.Run("defaults when unset", func(t *testing.T) {
		t.Parallel()

		resource := newFakeResource("posts", records("p1"))

		_, err := resource.Paginate(context.Background(), nil).All()
		require.NoError(t, err)
		assert.Equal(t, 25, resource.lastParams.Limit)
	})

	t.Run("overrides limit all", func(t *testing.T) {
		t.Parallel()

		resource := newFakeResource("posts", records("p1"))

		_, err := resource.Paginate(context.Background(), ghost.NewQueryParams().WithLimitAll()).All()
		require.NoError(t, err)
		assert.False(t, resource.lastParams.LimitAllPages)
		assert.Equal(t, 25, resource.lastParams.Limit)
	})
}
