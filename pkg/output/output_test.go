package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Stdout
	Stdout = &buf
	NoColor(true)
	t.Cleanup(func() {
		Stdout = prev
		NoColor(false)
	})
	return &buf
}

func TestSanitizeStripsControlCharacters(t *testing.T) {
	assert.Equal(t, "[31mfake error", Sanitize("\x1b[31mfake error"))
	assert.Equal(t, "two  words here", Sanitize("two\nwords\there"))
	assert.Equal(t, "plain", Sanitize("plain"))
}

func TestTableRendersAligned(t *testing.T) {
	buf := captureStdout(t)

	table := NewTable("ID", "TITLE")
	table.AddRow("p1", "Hello")
	table.AddRow("post-2", "Terminal \x1b[2Jtricks")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "TITLE")
	assert.NotContains(t, buf.String(), "\x1b", "cells must be sanitized")

	// Every row pads the first column to the widest cell.
	assert.True(t, strings.HasPrefix(lines[2], "p1    "), "got %q", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "post-2"), "got %q", lines[3])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "very lo...", Truncate("very long title indeed", 10))
	assert.Equal(t, "abc", Truncate("abc", 3))
}

func TestJSONIndents(t *testing.T) {
	buf := captureStdout(t)
	assert.NoError(t, JSON(map[string]int{"count": 3}))
	assert.Equal(t, "{\n  \"count\": 3\n}\n", buf.String())
}

func TestMessagesGoToTheRightStream(t *testing.T) {
	var out, errBuf bytes.Buffer
	prevOut, prevErr := Stdout, Stderr
	Stdout, Stderr = &out, &errBuf
	NoColor(true)
	t.Cleanup(func() {
		Stdout, Stderr = prevOut, prevErr
		NoColor(false)
	})

	Success("saved %d", 2)
	Error("boom")
	Warn("careful")

	assert.Contains(t, out.String(), "✓ saved 2")
	assert.Contains(t, out.String(), "⚠ careful")
	assert.Contains(t, errBuf.String(), "✗ boom")
	assert.NotContains(t, out.String(), "boom")
}
