package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error is a classified request failure. Status 0 means the request never
// produced a response (network-level failure); anything else is the HTTP
// status the backend answered with. Message carries the human-readable text
// extracted from the error payload, or the calling operation's fallback.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status != 0 {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return "request failed"
}

func (e *Error) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden reports whether err is a 403 from the backend.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsNetwork reports whether err is a network-level failure, meaning no
// response reached the client at all.
func IsNetwork(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == 0
}

func hasStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// withFallback fills in an operation-specific message when the server did
// not provide one. Errors that already carry a message pass through.
func withFallback(err error, message string) error {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message == "" {
		apiErr.Message = message
	}
	return err
}

// errorPayload is the backend's error body convention. Most endpoints use
// {"message": ...}; the upload endpoint uses {"error": ...}.
type errorPayload struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

const maxErrorBody = 1 << 20

// errorMessage extracts a human-readable message from an error response
// body. Returns "" when the body is empty, not JSON, or has no message.
func errorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload errorPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
