package domain

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinBookmarkNameLen = 3
	MinCategoryNameLen = 2
	MaxCategoryNameLen = 30
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9\s]+$`)

// ValidateBookmarkName reports whether name is an acceptable site name.
// The raw input must already be trimmed: "  Go Docs" is rejected.
func ValidateBookmarkName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed != name {
		return false
	}
	return utf8.RuneCountInString(trimmed) >= MinBookmarkNameLen && namePattern.MatchString(trimmed)
}

// NormalizeURL prepends https:// unless the input already starts with "http".
func NormalizeURL(raw string) string {
	if strings.HasPrefix(raw, "http") {
		return raw
	}
	return "https://" + raw
}

// ValidateURL reports whether the normalized input is a well-formed absolute URL.
func ValidateURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(NormalizeURL(raw))
	if err != nil {
		return false
	}
	if u.Scheme == "" || u.Host == "" {
		return false
	}
	return !strings.ContainsAny(u.Host, " \t\r\n")
}

// ValidateCategoryName checks length in [2,30] and the alphanumeric+spaces rule.
// It does not trim; callers trim first.
func ValidateCategoryName(name string) bool {
	n := utf8.RuneCountInString(name)
	if n < MinCategoryNameLen || n > MaxCategoryNameLen {
		return false
	}
	return namePattern.MatchString(name)
}
