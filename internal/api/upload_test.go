package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload/image", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "cover.png", header.Filename)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake image bytes", string(data))

		w.Write([]byte(`{"url":"https://cdn.example.com/cover.png"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, authedStore(t))
	resp, err := client.UploadImage(context.Background(), "/tmp/photos/cover.png", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/cover.png", resp.URL)
}

func TestUploadImageErrorUsesErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"unsupported file type"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, authedStore(t))
	_, err := client.UploadImage(context.Background(), "notes.txt", strings.NewReader("hello"))
	require.Error(t, err)
	assert.Equal(t, "unsupported file type", err.Error())
}
