package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finite-collective/docdesk/pkg/client"
	"github.com/finite-collective/docdesk/pkg/docs"
)

func TestFetchTree(t *testing.T) {
	t.Run("Returns Service Tree", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/docs/tree", r.URL.Path)
			json.NewEncoder(w).Encode([]*docs.Node{
				docs.NewFile("a.md", "a.md", nil),
			})
		}))
		defer srv.Close()

		c := client.New(srv.URL)
		tree, offline := c.FetchTree(context.Background())
		assert.False(t, offline)
		require.Len(t, tree, 1)
		assert.Equal(t, "a.md", tree[0].Path)
	})

	t.Run("Falls Back When Unreachable", func(t *testing.T) {
		c := client.New("http://127.0.0.1:1") // nothing listens here
		tree, offline := c.FetchTree(context.Background())
		assert.True(t, offline)
		require.Len(t, tree, 1)
		assert.True(t, tree[0].IsFolder())
		assert.NotNil(t, docs.FindByPath(tree, "README.md"))
	})

	t.Run("Falls Back on Server Error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		}))
		defer srv.Close()

		tree, offline := client.New(srv.URL).FetchTree(context.Background())
		assert.True(t, offline)
		assert.NotEmpty(t, tree)
	})
}

func TestGetDocument(t *testing.T) {
	t.Run("Decodes Content and Metadata", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/docs/guides/setup.md", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{
				"content":  "# Hi",
				"metadata": map[string]any{"author": "X"},
			})
		}))
		defer srv.Close()

		doc, err := client.New(srv.URL).GetDocument(context.Background(), "guides/setup.md")
		require.NoError(t, err)
		assert.Equal(t, "# Hi", doc.Content)
		assert.Equal(t, "X", doc.Metadata.Author())
	})

	t.Run("404 Maps to ErrNotFound", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "no such document"})
		}))
		defer srv.Close()

		_, err := client.New(srv.URL).GetDocument(context.Background(), "gone.md")
		assert.True(t, errors.Is(err, docs.ErrNotFound), "got %v", err)
	})
}

func TestSaveDocument(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Stamps lastUpdated", func(t *testing.T) {
		var received struct {
			Path     string        `json:"path"`
			Content  string        `json:"content"`
			Metadata docs.Metadata `json:"metadata"`
		}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			json.NewEncoder(w).Encode(client.SaveResult{Success: true, Path: received.Path})
		}))
		defer srv.Close()

		c := client.New(srv.URL, client.WithClock(func() time.Time { return now }))
		result, err := c.SaveDocument(context.Background(), "a.md", "# Bye", docs.Metadata{"author": "X"})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "a.md", result.Path)
		assert.Equal(t, "X", received.Metadata.Author())
		assert.Equal(t, "2025-06-01T12:00:00Z", received.Metadata[docs.MetaLastUpdated])
	})

	t.Run("Server Error Surfaces as Error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "disk full"})
		}))
		defer srv.Close()

		_, err := client.New(srv.URL).SaveDocument(context.Background(), "a.md", "x", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})
}
