package ghost_test

import (
	"testing"

	"github.com/fivetwenty-io/ghost-client/pkg/ghost"
	"github.com/stretchr/testify/assert"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestQueryParams_ToValues(t *testing.T) {
	t.Parallel()

	t.Run("empty params render no values", func(t *testing.T) {
		t.Parallel()

		values := ghost.NewQueryParams().ToValues()
		assert.Empty(t, values)
	})

	t.Run("nil params render no values", func(t *testing.T) {
		t.Parallel()

		var params *ghost.QueryParams

		assert.Empty(t, params.ToValues())
	})

	t.Run("renders every option", func(t *testing.T) {
		t.Parallel()

		values := ghost.NewQueryParams().
			WithLimit(10).
			WithPage(3).
			WithOrder("published_at desc").
			WithFilter("status", "published").
			WithInclude("tags", "authors").
			WithFields("id", "title").
			WithFormats("html").
			ToValues()

		assert.Equal(t, "10", values.Get("limit"))
		assert.Equal(t, "3", values.Get("page"))
		assert.Equal(t, "published_at desc", values.Get("order"))
		assert.Equal(t, "status:published", values.Get("filter"))
		assert.Equal(t, "tags,authors", values.Get("include"))
		assert.Equal(t, "id,title", values.Get("fields"))
		assert.Equal(t, "html", values.Get("formats"))
	})

	t.Run("limit all wins over a numeric limit", func(t *testing.T) {
		t.Parallel()

		values := ghost.NewQueryParams().WithLimit(10).WithLimitAll().ToValues()
		assert.Equal(t, "all", values.Get("limit"))
	})
}

func TestQueryParams_FilterExpression(t *testing.T) {
	t.Parallel()

	t.Run("multiple values group in brackets", func(t *testing.T) {
		t.Parallel()

		values := ghost.NewQueryParams().
			WithFilter("tag", "news", "tech").
			ToValues()

		assert.Equal(t, "tag:[news,tech]", values.Get("filter"))
	})

	t.Run("fields join sorted with AND", func(t *testing.T) {
		t.Parallel()

		values := ghost.NewQueryParams().
			WithFilter("tag", "news").
			WithFilter("featured", "true").
			WithFilter("status", "published").
			ToValues()

		assert.Equal(t, "featured:true+status:published+tag:news", values.Get("filter"))
	})

	t.Run("repeated calls accumulate values", func(t *testing.T) {
		t.Parallel()

		values := ghost.NewQueryParams().
			WithFilter("tag", "news").
			WithFilter("tag", "tech").
			ToValues()

		assert.Equal(t, "tag:[news,tech]", values.Get("filter"))
	})
}

func TestQueryParams_Clone(t *testing.T) {
	t.Parallel()

	t.Run("clone of nil is usable", func(t *testing.T) {
		t.Parallel()

		var params *ghost.QueryParams

		clone := params.Clone()
		assert.NotNil(t, clone)
		assert.Empty(t, clone.ToValues())
	})

	t.Run("mutating the clone leaves the original alone", func(t *testing.T) {
		t.Parallel()

		original := ghost.NewQueryParams().
			WithFilter("status", "published").
			WithInclude("tags")

		clone := original.Clone()
		clone.WithFilter("status", "draft").WithInclude("authors").WithPage(2)

		assert.Equal(t, "status:published", original.ToValues().Get("filter"))
		assert.Equal(t, "tags", original.ToValues().Get("include"))
		assert.Empty(t, original.ToValues().Get("page"))
	})
}
