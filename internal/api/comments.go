package api

import (
	"context"
	"fmt"
	"net/url"
)

type Comment struct {
	ID              string    `json:"id"`
	Content         string    `json:"content"`
	AuthorID        string    `json:"authorId,omitempty"`
	AuthorName      string    `json:"authorName,omitempty"`
	PostID          string    `json:"postId,omitempty"`
	ParentCommentID string    `json:"parentCommentId,omitempty"`
	CreatedAt       Timestamp `json:"createdAt"`
	UpdatedAt       Timestamp `json:"updatedAt"`
	Replies         []Comment `json:"replies,omitempty"`
}

type commentRequest struct {
	Content string `json:"content"`
}

func (c *Client) CommentsByPost(ctx context.Context, postID string, page, size int) (*CommentPage, error) {
	var result CommentPage
	path := fmt.Sprintf("/comments/post/%s?%s", url.PathEscape(postID), pageQuery(page, size))
	if err := c.get(ctx, path, &result); err != nil {
		return nil, withFallback(err, "failed to load comments")
	}
	return &result, nil
}

func (c *Client) CreateComment(ctx context.Context, postID, content string) (*Comment, error) {
	var comment Comment
	path := "/comments/post/" + url.PathEscape(postID)
	if err := c.post(ctx, path, commentRequest{Content: content}, &comment); err != nil {
		return nil, withFallback(err, "failed to post comment")
	}
	return &comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	if err := c.delete(ctx, "/comments/"+url.PathEscape(commentID)); err != nil {
		return withFallback(err, "failed to delete comment")
	}
	return nil
}

func (c *Client) CommentCount(ctx context.Context, postID string) (int64, error) {
	var count int64
	path := fmt.Sprintf("/comments/post/%s/count", url.PathEscape(postID))
	if err := c.get(ctx, path, &count); err != nil {
		return 0, withFallback(err, "failed to load comment count")
	}
	return count, nil
}
