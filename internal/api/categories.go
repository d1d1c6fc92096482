package api

import (
	"context"
	"net/url"
)

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.get(ctx, "/categories", &categories); err != nil {
		return nil, withFallback(err, "failed to load categories")
	}
	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, id string) (*Category, error) {
	var category Category
	if err := c.get(ctx, "/categories/"+url.PathEscape(id), &category); err != nil {
		return nil, withFallback(err, "category not found")
	}
	return &category, nil
}

func (c *Client) CreateCategory(ctx context.Context, name, description string) (*Category, error) {
	var category Category
	req := categoryRequest{Name: name, Description: description}
	if err := c.post(ctx, "/categories", req, &category); err != nil {
		return nil, withFallback(err, "failed to create category")
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id, name, description string) (*Category, error) {
	var category Category
	req := categoryRequest{Name: name, Description: description}
	if err := c.put(ctx, "/categories/"+url.PathEscape(id), req, &category); err != nil {
		return nil, withFallback(err, "failed to update category")
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/categories/"+url.PathEscape(id)); err != nil {
		return withFallback(err, "failed to delete category")
	}
	return nil
}
