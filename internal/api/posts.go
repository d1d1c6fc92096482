package api

import (
	"context"
	"fmt"
	"net/url"
	"sync"
)

// Post statuses as the backend knows them.
const (
	StatusPublished = "PUBLISHED"
	StatusDraft     = "DRAFT"
	StatusArchived  = "ARCHIVED"
)

type Post struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Subtitle        string    `json:"subtitle,omitempty"`
	Content         string    `json:"content,omitempty"`
	Excerpt         string    `json:"excerpt,omitempty"`
	Slug            string    `json:"slug,omitempty"`
	Category        *Category `json:"category,omitempty"`
	FeaturedImage   string    `json:"featuredImage,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	Status          string    `json:"status,omitempty"`
	Author          *Author   `json:"author,omitempty"`
	ViewCount       int       `json:"viewCount,omitempty"`
	CreatedAt       Timestamp `json:"createdAt"`
	UpdatedAt       Timestamp `json:"updatedAt"`
	PublishedAt     Timestamp `json:"publishedAt"`
	MetaTitle       string    `json:"metaTitle,omitempty"`
	MetaDescription string    `json:"metaDescription,omitempty"`
}

type Author struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

// PostRequest is the create/update payload.
type PostRequest struct {
	Title           string   `json:"title"`
	Excerpt         string   `json:"excerpt,omitempty"`
	Content         string   `json:"content"`
	MetaDescription string   `json:"metaDescription,omitempty"`
	MetaKeywords    string   `json:"metaKeywords,omitempty"`
	FeaturedImage   string   `json:"featuredImage,omitempty"`
	Status          string   `json:"status,omitempty"`
	CategoryID      string   `json:"categoryId,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

func pageQuery(page, size int) string {
	return fmt.Sprintf("page=%d&size=%d", page, size)
}

// ListPosts returns the public post listing.
func (c *Client) ListPosts(ctx context.Context, page, size int) (*PostPage, error) {
	var result PostPage
	if err := c.get(ctx, "/posts?"+pageQuery(page, size), &result); err != nil {
		return nil, withFallback(err, "failed to load posts")
	}
	return &result, nil
}

func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	var post Post
	if err := c.get(ctx, "/posts/"+url.PathEscape(id), &post); err != nil {
		return nil, withFallback(err, "post not found")
	}
	return &post, nil
}

func (c *Client) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	var post Post
	if err := c.get(ctx, "/posts/slug/"+url.PathEscape(slug), &post); err != nil {
		return nil, withFallback(err, "post not found")
	}
	return &post, nil
}

func (c *Client) SearchPosts(ctx context.Context, keyword string, page, size int) (*PostPage, error) {
	var result PostPage
	path := fmt.Sprintf("/posts/search?keyword=%s&%s", url.QueryEscape(keyword), pageQuery(page, size))
	if err := c.get(ctx, path, &result); err != nil {
		return nil, withFallback(err, "search failed")
	}
	return &result, nil
}

func (c *Client) PostsByCategory(ctx context.Context, categoryID string, page, size int) (*PostPage, error) {
	var result PostPage
	path := fmt.Sprintf("/posts/category/%s?%s", url.PathEscape(categoryID), pageQuery(page, size))
	if err := c.get(ctx, path, &result); err != nil {
		return nil, withFallback(err, "failed to load posts for category")
	}
	return &result, nil
}

func (c *Client) PostsByStatus(ctx context.Context, status string, page, size int) (*PostPage, error) {
	var result PostPage
	path := fmt.Sprintf("/posts/status/%s?%s", url.PathEscape(status), pageQuery(page, size))
	if err := c.get(ctx, path, &result); err != nil {
		return nil, withFallback(err, "failed to load posts")
	}
	return &result, nil
}

func (c *Client) PostsByAuthor(ctx context.Context, username string, page, size int) (*PostPage, error) {
	var result PostPage
	path := fmt.Sprintf("/posts/author/%s?%s", url.PathEscape(username), pageQuery(page, size))
	if err := c.get(ctx, path, &result); err != nil {
		return nil, withFallback(err, "failed to load posts for author")
	}
	return &result, nil
}

func (c *Client) CreatePost(ctx context.Context, req PostRequest) (*Post, error) {
	var post Post
	if err := c.post(ctx, "/posts", req, &post); err != nil {
		return nil, withFallback(err, "failed to create post")
	}
	return &post, nil
}

func (c *Client) UpdatePost(ctx context.Context, id string, req PostRequest) (*Post, error) {
	var post Post
	if err := c.put(ctx, "/posts/"+url.PathEscape(id), req, &post); err != nil {
		return nil, withFallback(err, "failed to update post")
	}
	return &post, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/posts/"+url.PathEscape(id)); err != nil {
		return withFallback(err, "failed to delete post")
	}
	return nil
}

func (c *Client) PublishPost(ctx context.Context, id string) (*Post, error) {
	return c.transitionPost(ctx, id, "publish")
}

func (c *Client) HidePost(ctx context.Context, id string) (*Post, error) {
	return c.transitionPost(ctx, id, "hide")
}

func (c *Client) DraftPost(ctx context.Context, id string) (*Post, error) {
	return c.transitionPost(ctx, id, "draft")
}

func (c *Client) transitionPost(ctx context.Context, id, action string) (*Post, error) {
	var post Post
	path := fmt.Sprintf("/posts/%s/%s", url.PathEscape(id), action)
	if err := c.patch(ctx, path, nil, &post); err != nil {
		return nil, withFallback(err, "failed to "+action+" post")
	}
	return &post, nil
}

// adminFetchSize is deliberately oversized so a single fetch per status
// covers the whole backlog before the client-side merge.
const adminFetchSize = 1000

// AdminPosts is the merged admin listing: the backend only serves posts
// filtered by a single status, so the client fetches every status
// concurrently, joins the results, sorts by creation time descending and
// re-paginates locally. A failed status fetch degrades to an empty set;
// only when every fetch fails is the first error returned.
func (c *Client) AdminPosts(ctx context.Context, page, size int) (*PostPage, error) {
	statuses := []string{StatusPublished, StatusDraft, StatusArchived}

	type result struct {
		page *PostPage
		err  error
	}
	results := make([]result, len(statuses))

	var wg sync.WaitGroup
	for i, status := range statuses {
		wg.Add(1)
		go func(i int, status string) {
			defer wg.Done()
			p, err := c.PostsByStatus(ctx, status, 0, adminFetchSize)
			results[i] = result{page: p, err: err}
		}(i, status)
	}
	wg.Wait()

	var all []Post
	var firstErr error
	failures := 0
	for _, r := range results {
		if r.err != nil {
			failures++
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		all = append(all, r.page.Content...)
	}
	if failures == len(statuses) {
		return nil, firstErr
	}

	return paginatePosts(all, page, size), nil
}
