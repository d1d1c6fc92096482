package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

type UploadResponse struct {
	URL string `json:"url"`
}

// UploadImage posts an image as a multipart form and returns the URL the
// backend stored it under.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (*UploadResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	var resp UploadResponse
	if err := c.do(ctx, http.MethodPost, "/upload/image", &buf, writer.FormDataContentType(), &resp); err != nil {
		return nil, withFallback(err, "image upload failed")
	}
	return &resp, nil
}
