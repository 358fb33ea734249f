package domain

import (
	"testing"

	"gotest.tools/v3/assert"
)

func searchBoard(t *testing.T) State {
	t.Helper()
	s := boardWith(t, "Dev", "News")
	for _, b := range []AddBookmark{
		{Name: "Go Docs", URL: "go.dev/doc", Category: "Dev"},
		{Name: "Go Playground", URL: "go.dev/play", Category: "Dev"},
		{Name: "GitHub", URL: "github.com", Category: "Dev"},
		{Name: "Hacker News", URL: "news.ycombinator.com", Category: "News"},
	} {
		s = mustApply(t, s, b)
	}
	return s
}

func TestRankBookmarks(t *testing.T) {
	s := searchBoard(t)

	tests := []struct {
		name    string
		query   string
		wantTop string
	}{
		{"exact match", "github", "GitHub"},
		{"prefix match", "go p", "Go Playground"},
		{"substring match", "news", "Hacker News"},
		{"multi word", "hacker news", "Hacker News"},
		{"fuzzy", "gthb", "GitHub"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := RankBookmarks(tt.query, s)
			assert.Assert(t, len(hits) > 0, "no hits for %q", tt.query)
			assert.Equal(t, hits[0].Bookmark.SiteName, tt.wantTop)
		})
	}
}

func TestRankBookmarksTiesKeepBoardOrder(t *testing.T) {
	hits := RankBookmarks("go", searchBoard(t))
	assert.Assert(t, len(hits) >= 2)
	assert.Equal(t, hits[0].Bookmark.SiteName, "Go Docs")
	assert.Equal(t, hits[1].Bookmark.SiteName, "Go Playground")
	assert.Equal(t, hits[1].Category, "Dev")
	assert.Equal(t, hits[1].Index, 1)
}

func TestRankBookmarksEmpty(t *testing.T) {
	assert.Assert(t, RankBookmarks("", searchBoard(t)) == nil)
	assert.Assert(t, RankBookmarks("go", NewState()) == nil)

	_, ok := BestBookmark("zzzzzz", searchBoard(t))
	assert.Assert(t, !ok)
}
