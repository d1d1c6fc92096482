package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptoblog/blogctl/internal/api"
	"github.com/cryptoblog/blogctl/internal/logging"
	"github.com/cryptoblog/blogctl/internal/session"
)

func TestRunCreatesConfiguredPosts(t *testing.T) {
	var posts, comments atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/posts":
			var req api.PostRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.NotEmpty(t, req.Title)
			assert.NotEmpty(t, req.Content)
			id := posts.Add(1)
			json.NewEncoder(w).Encode(api.Post{ID: fmt.Sprintf("p%d", id)})
		case r.Method == http.MethodPatch && strings.HasSuffix(r.URL.Path, "/publish"):
			json.NewEncoder(w).Encode(api.Post{Status: api.StatusPublished})
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/comments/post/"):
			comments.Add(1)
			json.NewEncoder(w).Encode(api.Comment{ID: "c1"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := api.New(srv.URL, session.NewMemoryStore())
	runner := NewRunner(client, Config{Posts: 4, CommentsPerPost: 2, PublishRatio: 1}, logging.Discard())

	created, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, created)
	assert.EqualValues(t, 4, posts.Load())
	assert.EqualValues(t, 8, comments.Load())
}

func TestRunFailsFastWhenNothingCanBeCreated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"admins only"}`))
	}))
	defer srv.Close()

	client := api.New(srv.URL, session.NewMemoryStore())
	runner := NewRunner(client, DefaultConfig(), logging.Discard())

	_, err := runner.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admins only")
}
