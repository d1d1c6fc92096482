package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptoblog/blogctl/internal/session"
)

func makePosts(status string, n int, base time.Time) []Post {
	posts := make([]Post, n)
	for i := range posts {
		posts[i] = Post{
			ID:        fmt.Sprintf("%s-%d", strings.ToLower(status), i),
			Title:     fmt.Sprintf("%s post %d", status, i),
			Status:    status,
			CreatedAt: Timestamp{base.Add(time.Duration(i) * time.Minute)},
		}
	}
	return posts
}

// statusServer serves /posts/status/{status} from fixed per-status sets.
func statusServer(t *testing.T, byStatus map[string][]Post, failing map[string]bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := strings.TrimPrefix(r.URL.Path, "/posts/status/")
		if failing[status] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		posts := byStatus[status]
		page := PostPage{
			Content:       posts,
			Size:          adminFetchSize,
			TotalElements: len(posts),
			TotalPages:    1,
			First:         true,
			Last:          true,
		}
		require.NoError(t, json.NewEncoder(w).Encode(page))
	}))
}

func TestAdminPostsMergesAndRepaginates(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	byStatus := map[string][]Post{
		StatusPublished: makePosts(StatusPublished, 5, base),
		StatusDraft:     makePosts(StatusDraft, 3, base.Add(time.Hour)),
		StatusArchived:  nil,
	}
	srv := statusServer(t, byStatus, nil)
	defer srv.Close()

	client := New(srv.URL, session.NewMemoryStore())
	page, err := client.AdminPosts(context.Background(), 0, 4)
	require.NoError(t, err)

	assert.Len(t, page.Content, 4)
	assert.Equal(t, 8, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 0, page.Number)
	assert.True(t, page.First)
	assert.False(t, page.Last)

	// Newest first: the drafts were created an hour after the published
	// posts, so they lead the merged listing.
	assert.Equal(t, "draft-2", page.Content[0].ID)
	for i := 1; i < len(page.Content); i++ {
		assert.False(t, page.Content[i].CreatedAt.After(page.Content[i-1].CreatedAt.Time),
			"posts must be ordered newest first")
	}

	last, err := client.AdminPosts(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Len(t, last.Content, 4)
	assert.False(t, last.First)
	assert.True(t, last.Last)
}

func TestAdminPostsToleratesPartialFailure(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	byStatus := map[string][]Post{
		StatusPublished: makePosts(StatusPublished, 2, base),
	}
	srv := statusServer(t, byStatus, map[string]bool{StatusDraft: true, StatusArchived: true})
	defer srv.Close()

	client := New(srv.URL, session.NewMemoryStore())
	page, err := client.AdminPosts(context.Background(), 0, 10)
	require.NoError(t, err, "a partial fetch failure degrades to fewer posts")
	assert.Equal(t, 2, page.TotalElements)
}

func TestAdminPostsAllFetchesFailing(t *testing.T) {
	srv := statusServer(t, nil, map[string]bool{
		StatusPublished: true, StatusDraft: true, StatusArchived: true,
	})
	defer srv.Close()

	client := New(srv.URL, session.NewMemoryStore())
	_, err := client.AdminPosts(context.Background(), 0, 10)
	assert.Error(t, err)
}

func TestPaginatePostsEmpty(t *testing.T) {
	page := paginatePosts(nil, 0, 10)
	assert.Empty(t, page.Content)
	assert.Equal(t, 0, page.TotalElements)
	assert.Equal(t, 1, page.TotalPages)
	assert.True(t, page.First)
	assert.True(t, page.Last)
}

func TestPaginatePostsPageBeyondEnd(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	page := paginatePosts(makePosts(StatusPublished, 3, base), 5, 2)
	assert.Empty(t, page.Content)
	assert.Equal(t, 3, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
}

func TestSearchPostsNoMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "nonexistent", r.URL.Query().Get("keyword"))
		json.NewEncoder(w).Encode(PostPage{Content: []Post{}, TotalPages: 1, First: true, Last: true})
	}))
	defer srv.Close()

	client := New(srv.URL, session.NewMemoryStore())
	page, err := client.SearchPosts(context.Background(), "nonexistent", 0, 10)
	require.NoError(t, err, "zero matches is not an error")
	assert.Empty(t, page.Content)
}

func TestSearchPostsEscapesKeyword(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("keyword")
		json.NewEncoder(w).Encode(PostPage{})
	}))
	defer srv.Close()

	client := New(srv.URL, session.NewMemoryStore())
	_, err := client.SearchPosts(context.Background(), "bitcoin & eth?", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, "bitcoin & eth?", gotQuery)
}

func TestTransitionPostUsesPatch(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(Post{ID: "p1", Status: StatusPublished})
	}))
	defer srv.Close()

	client := New(srv.URL, session.NewMemoryStore())
	post, err := client.PublishPost(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/posts/p1/publish", gotPath)
	assert.Equal(t, StatusPublished, post.Status)
}
