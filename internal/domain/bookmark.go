package domain

// Bookmark is a (site name, site URL) pair owned by exactly one category.
// Bookmarks have no identity of their own: they are addressed by their
// position in the owning category's list.
type Bookmark struct {
	// SiteName is trimmed, alphanumeric + spaces, at least 3 characters.
	// Example: "Go Docs"
	SiteName string `json:"siteName"`

	// SiteURL is an absolute URL; the scheme defaults to https.
	// Example: https://go.dev/doc
	SiteURL string `json:"siteURL"`
}

// cloneBookmarks returns an independent copy of the list.
// A nil input yields an empty, non-nil slice so JSON renders [] not null.
func cloneBookmarks(in []Bookmark) []Bookmark {
	out := make([]Bookmark, len(in))
	copy(out, in)
	return out
}
