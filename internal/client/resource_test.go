package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fivetwenty-io/ghost-client/internal/client"
	"github.com/fivetwenty-io/ghost-client/pkg/ghost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminKey = "64f1a8b0c3d2e1f09a8b7c6d:0123456789abcdef0123456789abcdef"

func newAdminClient(t *testing.T, serverURL string) ghost.Client {
	t.Helper()

	ghostClient, err := client.New(serverURL, ghost.V5, &ghost.Config{
		SiteURL:  serverURL,
		AdminKey: testAdminKey,
	})
	require.NoError(t, err)

	return ghostClient
}

func newContentClient(t *testing.T, serverURL string) ghost.Client {
	t.Helper()

	ghostClient, err := client.New(serverURL, ghost.V5, &ghost.Config{
		SiteURL:    serverURL,
		ContentKey: "content-key",
	})
	require.NoError(t, err)

	return ghostClient
}

func writePosts(writer http.ResponseWriter, posts []map[string]interface{}, pagination map[string]interface{}) {
	writer.Header().Set("Content-Type", "application/json")

	envelope := map[string]interface{}{"posts": posts}
	if pagination != nil {
		envelope["meta"] = map[string]interface{}{"pagination": pagination}
	}

	_ = json.NewEncoder(writer).Encode(envelope)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestResourceClient_Get(t *testing.T) {
	t.Parallel()

	t.Run("lists with query parameters and pagination meta", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/ghost/api/v5/admin/posts/", request.URL.Path)
			assert.Equal(t, "2", request.URL.Query().Get("limit"))
			assert.Equal(t, "status:published", request.URL.Query().Get("filter"))
			assert.Equal(t, "published_at desc", request.URL.Query().Get("order"))

			writePosts(writer, []map[string]interface{}{
				{"id": "p1", "title": "First"},
				{"id": "p2", "title": "Second"},
			}, map[string]interface{}{
				"page": 1, "limit": 2, "pages": 3, "total": 6, "next": 2, "prev": nil,
			})
		}))
		defer server.Close()

		ghostClient := newAdminClient(t, server.URL)

		params := ghost.NewQueryParams().
			WithLimit(2).
			WithFilter("status", "published").
			WithOrder("published_at desc")

		set, err := ghostClient.Posts().Get(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, 2, set.Len())
		assert.Equal(t, []string{"p1", "p2"}, set.IDs())

		pagination := set.Pagination()
		assert.Equal(t, 6, pagination.Total)
		require.NotNil(t, pagination.Next)
		assert.Equal(t, 2, *pagination.Next)
	})

	t.Run("content client lists through the content API", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/ghost/api/v5/content/posts/", request.URL.Path)
			assert.Equal(t, "content-key", request.URL.Query().Get("key"))
			assert.Empty(t, request.Header.Get("Authorization"))

			writePosts(writer, nil, nil)
		}))
		defer server.Close()

		ghostClient := newContentClient(t, server.URL)

		set, err := ghostClient.Posts().Get(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 0, set.Len())
	})

	t.Run("posts default to both body formats", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "html,mobiledoc", request.URL.Query().Get("formats"))

			writePosts(writer, nil, nil)
		}))
		defer server.Close()

		ghostClient := newAdminClient(t, server.URL)

		_, err := ghostClient.Posts().Get(context.Background(), nil)
		require.NoError(t, err)
	})

	t.Run("caller formats win over the default", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "html", request.URL.Query().Get("formats"))

			writePosts(writer, nil, nil)
		}))
		defer server.Close()

		ghostClient := newAdminClient(t, server.URL)

		_, err := ghostClient.Posts().Get(context.Background(), ghost.NewQueryParams().WithFormats("html"))
		require.NoError(t, err)
	})

	t.Run("field selection keeps the update keys", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "title,id,updated_at", request.URL.Query().Get("fields"))

			writePosts(writer, nil, nil)
		}))
		defer server.Close()

		ghostClient := newAdminClient(t, server.URL)

		_, err := ghostClient.Posts().Get(context.Background(), ghost.NewQueryParams().WithFields("title"))
		require.NoError(t, err)
	})

	t.Run("limit all renders the literal", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "all", request.URL.Query().Get("limit"))

			writePosts(writer, []map[string]interface{}{{"id": "p1"}}, map[string]interface{}{
				"page": 1, "limit": "all", "pages": 1, "total": 1, "next": nil, "prev": nil,
			})
		}))
		defer server.Close()

		ghostClient := newAdminClient(t, server.URL)

		set, err := ghostClient.Posts().Get(context.Background(), ghost.NewQueryParams().WithLimitAll())
		require.NoError(t, err)
		assert.Equal(t, ghost.LimitAll, set.Pagination().Limit)
	})
}

func TestResourceClient_GetByID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/ghost/api/v5/admin/posts/abc123/", request.URL.Path)

		writePosts(writer, []map[string]interface{}{{"id": "abc123", "title": "Found"}}, nil)
	}))
	defer server.Close()

	ghostClient := newAdminClient(t, server.URL)

	result, err := ghostClient.Posts().GetByID(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", result.ID())
	assert.Equal(t, "Found", result.Record().String("title"))
}

func TestResourceClient_GetBySlug(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/ghost/api/v5/admin/posts/slug/welcome/", request.URL.Path)

		writePosts(writer, []map[string]interface{}{{"id": "p1", "slug": "welcome"}}, nil)
	}))
	defer server.Close()

	ghostClient := newAdminClient(t, server.URL)

	result, err := ghostClient.Posts().GetBySlug(context.Background(), "welcome")
	require.NoError(t, err)
	assert.Equal(t, "welcome", result.Slug())
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestResourceClient_Create(t *testing.T) {
	t.Parallel()

	t.Run("wraps the record in the collection envelope", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "/ghost/api/v5/admin/tags/", request.URL.Path)
			assert.Empty(t, request.URL.Query().Get("source"))

			var body map[string][]map[string]interface{}

			_ = json.NewDecoder(request.Body).Decode(&body)
			require.Len(t, body["tags"], 1)
			assert.Equal(t, "news", body["tags"][0]["name"])

			writer.Header().Set("Content-Type", "application/json")
			writer.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"tags": []map[string]interface{}{{"id": "t1", "name": "news", "slug": "news"}},
			})
		}))
		defer server.Close()

		ghostClient := newAdminClient(t, server.URL)

		created, err := ghostClient.Tags().Create(context.Background(), ghost.Record{"name": "news"})
		require.NoError(t, err)
		require.Len(t, created, 1)
		assert.Equal(t, "t1", created[0].ID())
	})

	t.Run("declares an html source", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "html", request.URL.Query().Get("source"))

			writer.WriteHeader(http.StatusCreated)
			writePosts(writer, []map[string]interface{}{{"id": "p1"}}, nil)
		}))
		defer server.Close()

		ghostClient := newAdminClient(t, server.URL)

		_, err := ghostClient.Posts().Create(context.Background(), ghost.Record{
			"title": "Hello",
			"html":  "<p>Hi</p>",
		})
		require.NoError(t, err)
	})

	t.Run("aborts on failure but keeps earlier records", func(t *testing.T) {
		t.Parallel()

		var calls int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				writer.WriteHeader(http.StatusCreated)
				writePosts(writer, []map[string]interface{}{{"id": "p1"}}, nil)

				return
			}

			writer.Header().Set("Content-Type", "application/json")
			writer.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"errors": []map[string]string{{"message": "Title required", "type": "ValidationError"}},
			})
		}))
		defer server.Close()

		ghostClient := newAdminClient(t, server.URL)

		created, err := ghostClient.Posts().Create(context.Background(),
			ghost.Record{"title": "ok"},
			ghost.Record{},
			ghost.Record{"title": "never sent"})
		require.Error(t, err)
		assert.True(t, ghost.IsValidation(err))
		require.Len(t, created, 1)
		assert.Equal(t, "p1", created[0].ID())
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})
}

func TestResourceClient_Update(t *testing.T) {
	t.Parallel()

	t.Run("fetches updated_at before writing", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			switch request.Method {
			case "GET":
				assert.Equal(t, "/ghost/api/v5/admin/posts/p1/", request.URL.Path)
				writePosts(writer, []map[string]interface{}{
					{"id": "p1", "title": "Old", "updated_at": "2024-03-01T12:00:00.000Z"},
				}, nil)
			case "PUT":
				assert.Equal(t, "/ghost/api/v5/admin/posts/p1/", request.URL.Path)

				var body map[string][]map[string]interface{}

				_ = json.NewDecoder(request.Body).Decode(&body)
				require.Len(t, body["posts"], 1)
				assert.Equal(t, "New", body["posts"][0]["title"])
				assert.Equal(t, "2024-03-01T12:00:00.000Z", body["posts"][0]["updated_at"])

				writePosts(writer, []map[string]interface{}{{"id": "p1", "title": "New"}}, nil)
			default:
				t.Errorf("unexpected method %s", request.Method)
			}
		}))
		defer server.Close()

		ghostClient := newAdminClient(t, server.URL)

		updated, err := ghostClient.Posts().Update(context.Background(), "p1", ghost.Record{"title": "New"})
		require.NoError(t, err)
		assert.Equal(t, "New", updated.String("title"))
	})

	t.Run("skips the fetch when updated_at is supplied", func(t *testing.T) {
		t.Parallel()

		var calls int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&calls, 1)
			assert.Equal(t, "PUT", request.Method)
			writePosts(writer, []map[string]interface{}{{"id": "p1"}}, nil)
		}))
		defer server.Close()

		ghostClient := newAdminClient(t, server.URL)

		_, err := ghostClient.Posts().Update(context.Background(), "p1", ghost.Record{
			"title":      "New",
			"updated_at": "2024-03-01T12:00:00.000Z",
		})
		require.NoError(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}

func TestResourceClient_Delete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "DELETE", request.Method)
		assert.Equal(t, "/ghost/api/v5/admin/members/m1/", request.URL.Path)
		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	ghostClient := newAdminClient(t, server.URL)

	err := ghostClient.Members().Delete(context.Background(), "m1")
	require.NoError(t, err)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestResourceClient_CapabilityGate(t *testing.T) {
	t.Parallel()

	t.Run("content client rejects mutations before I/O", func(t *testing.T) {
		t.Parallel()

		var calls int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer server.Close()

		ghostClient := newContentClient(t, server.URL)

		_, err := ghostClient.Posts().Create(context.Background(), ghost.Record{"title": "x"})
		assert.True(t, ghost.IsCapability(err))

		_, err = ghostClient.Posts().Update(context.Background(), "p1", ghost.Record{"title": "x"})
		assert.True(t, ghost.IsCapability(err))

		err = ghostClient.Posts().Delete(context.Background(), "p1")
		assert.True(t, ghost.IsCapability(err))

		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
		assert.True(t, ghostClient.Posts().ReadOnly())
	})

	t.Run("content client cannot reach admin-only collections", func(t *testing.T) {
		t.Parallel()

		var calls int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer server.Close()

		ghostClient := newContentClient(t, server.URL)

		_, err := ghostClient.Members().Get(context.Background(), nil)
		assert.True(t, ghost.IsCapability(err))
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})

	t.Run("admin client cannot reach the content-only authors collection", func(t *testing.T) {
		t.Parallel()

		var calls int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer server.Close()

		ghostClient := newAdminClient(t, server.URL)

		_, err := ghostClient.Authors().Get(context.Background(), nil)
		assert.True(t, ghost.IsCapability(err))
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})

	t.Run("users collection never allows create or delete", func(t *testing.T) {
		t.Parallel()

		var calls int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer server.Close()

		ghostClient := newAdminClient(t, server.URL)

		_, err := ghostClient.Users().Create(context.Background(), ghost.Record{"name": "x"})
		assert.True(t, ghost.IsCapability(err))

		err = ghostClient.Users().Delete(context.Background(), "u1")
		assert.True(t, ghost.IsCapability(err))

		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})
}

func TestResourceClient_Paginate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Query().Get("page") {
		case "", "1":
			writePosts(writer, []map[string]interface{}{{"id": "p1"}, {"id": "p2"}}, map[string]interface{}{
				"page": 1, "limit": 2, "pages": 2, "total": 3, "next": 2, "prev": nil,
			})
		case "2":
			writePosts(writer, []map[string]interface{}{{"id": "p3"}}, map[string]interface{}{
				"page": 2, "limit": 2, "pages": 2, "total": 3, "next": nil, "prev": 1,
			})
		default:
			t.Errorf("unexpected page %q", request.URL.Query().Get("page"))
		}
	}))
	defer server.Close()

	ghostClient := newAdminClient(t, server.URL)

	iter := ghostClient.Posts().Paginate(context.Background(), ghost.NewQueryParams().WithLimit(2))

	results, err := iter.All()
	require.NoError(t, err)
	require.Len(t, results, 3)

	seen := map[string]bool{}
	for _, result := range results {
		assert.False(t, seen[result.ID()], "duplicate record %s", result.ID())
		seen[result.ID()] = true
	}
}
