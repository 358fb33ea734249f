package domain

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestValidateBookmarkName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"too short", "ab", false},
		{"minimum length", "abc", true},
		{"with spaces inside", "Go Docs 2", true},
		{"leading space", " abc", false},
		{"trailing space", "abc ", false},
		{"punctuation", "go-docs", false},
		{"only spaces", "     ", false},
		{"empty", "", false},
		{"unicode letters", "café", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, ValidateBookmarkName(tt.input), tt.want, "input %q", tt.input)
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"bare host", "example.com", true},
		{"https", "https://example.com/path?q=1", true},
		{"http", "http://localhost:8080", true},
		{"space in host", "not a url", false},
		{"empty", "", false},
		{"scheme only", "http://", false},
		{"http prefix without scheme", "httpexample", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, ValidateURL(tt.input), tt.want, "input %q", tt.input)
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, NormalizeURL("example.com"), "https://example.com")
	assert.Equal(t, NormalizeURL("http://example.com"), "http://example.com")
	assert.Equal(t, NormalizeURL("https://example.com"), "https://example.com")
}

func TestValidateCategoryName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"one char", "A", false},
		{"two chars", "AB", true},
		{"thirty chars", strings.Repeat("a", 30), true},
		{"thirty one chars", strings.Repeat("a", 31), false},
		{"spaces allowed", "Work Stuff", true},
		{"symbols", "Work!", false},
		// not trimmed: surrounding spaces still match the pattern
		{"untrimmed", " Work ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, ValidateCategoryName(tt.input), tt.want, "input %q", tt.input)
		})
	}
}
