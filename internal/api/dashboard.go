package api

import (
	"context"
	"errors"
	"sync"
)

// DashboardStats is the aggregate snapshot behind the admin dashboard.
type DashboardStats struct {
	TotalPosts        int64 `json:"totalPosts"`
	PublishedPosts    int64 `json:"publishedPosts"`
	DraftPosts        int64 `json:"draftPosts"`
	ArchivedPosts     int64 `json:"archivedPosts"`
	TotalComments     int64 `json:"totalComments"`
	ActiveSubscribers int64 `json:"activeSubscribers"`
	TotalSubscribers  int64 `json:"totalSubscribers"`
	TotalUsers        int64 `json:"totalUsers"`
}

// PostStats is the per-status post breakdown.
type PostStats struct {
	Published int64 `json:"published"`
	Draft     int64 `json:"draft"`
	Archived  int64 `json:"archived"`
	Total     int64 `json:"total"`
}

type SubscriberStats struct {
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Total    int64 `json:"total"`
}

type EngagementStats struct {
	TotalComments      int64   `json:"totalComments"`
	TotalPosts         int64   `json:"totalPosts"`
	AvgCommentsPerPost float64 `json:"avgCommentsPerPost"`
}

func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.get(ctx, "/dashboard/stats", &stats); err != nil {
		return nil, withFallback(err, "failed to load dashboard stats")
	}
	return &stats, nil
}

func (c *Client) PostStats(ctx context.Context) (*PostStats, error) {
	var stats PostStats
	if err := c.get(ctx, "/dashboard/stats/posts", &stats); err != nil {
		return nil, withFallback(err, "failed to load post stats")
	}
	return &stats, nil
}

func (c *Client) SubscriberStats(ctx context.Context) (*SubscriberStats, error) {
	var stats SubscriberStats
	if err := c.get(ctx, "/dashboard/stats/subscribers", &stats); err != nil {
		return nil, withFallback(err, "failed to load subscriber stats")
	}
	return &stats, nil
}

func (c *Client) EngagementStats(ctx context.Context) (*EngagementStats, error) {
	var stats EngagementStats
	if err := c.get(ctx, "/dashboard/stats/engagement", &stats); err != nil {
		return nil, withFallback(err, "failed to load engagement stats")
	}
	return &stats, nil
}

// ErrStaleSession means the session changed (logout or re-login) while a
// load was in flight; the fetched data must not be rendered as if it still
// belonged to the current session.
var ErrStaleSession = errors.New("session changed while loading")

// Overview is everything the dashboard renders in one screen.
type Overview struct {
	Stats       *DashboardStats
	RecentPosts *PostPage
}

// DashboardOverview fetches stats and the merged admin listing
// concurrently and joins both before returning. The result is guarded by
// the session generation: if the session was cleared or replaced while the
// fetches were in flight, the data is discarded and ErrStaleSession is
// returned instead.
func (c *Client) DashboardOverview(ctx context.Context, page, size int) (*Overview, error) {
	gen := c.session.Generation()

	var (
		wg       sync.WaitGroup
		stats    *DashboardStats
		posts    *PostPage
		statsErr error
		postsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		stats, statsErr = c.DashboardStats(ctx)
	}()
	go func() {
		defer wg.Done()
		posts, postsErr = c.AdminPosts(ctx, page, size)
	}()
	wg.Wait()

	if statsErr != nil {
		return nil, statsErr
	}
	if postsErr != nil {
		return nil, postsErr
	}

	if c.session.Generation() != gen {
		return nil, ErrStaleSession
	}

	return &Overview{Stats: stats, RecentPosts: posts}, nil
}
