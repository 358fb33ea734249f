package domain

import "fmt"

// State is one board: categories with their bookmarks, their icons, and the
// display order of the categories.
//
// After every command the following hold:
//   - Order is a permutation of exactly the keys of Categories
//   - every key of Emojis is a key of Categories
//
// State values are never mutated in place by commands; Apply works on a
// clone and hands back the replacement.
type State struct {
	Categories map[string][]Bookmark `json:"categories"`
	Order      []string              `json:"categoryOrder"`
	Emojis     map[string]Emoji      `json:"categoryEmojis"`
}

// Board is a state with its identity, as written to storage.
type Board struct {
	ID      string
	State   State
	Version uint64
}

// NewState returns an empty board.
func NewState() State {
	return State{
		Categories: make(map[string][]Bookmark),
		Order:      []string{},
		Emojis:     make(map[string]Emoji),
	}
}

// Clone returns a deep copy sharing no memory with s.
func (s State) Clone() State {
	out := State{
		Categories: make(map[string][]Bookmark, len(s.Categories)),
		Order:      make([]string, len(s.Order)),
		Emojis:     make(map[string]Emoji, len(s.Emojis)),
	}
	for name, list := range s.Categories {
		out.Categories[name] = cloneBookmarks(list)
	}
	copy(out.Order, s.Order)
	for name, e := range s.Emojis {
		out.Emojis[name] = e
	}
	return out
}

// HasCategory reports whether a category with exactly this name exists.
func (s State) HasCategory(name string) bool {
	_, ok := s.Categories[name]
	return ok
}

// Bookmarks returns a copy of the category's bookmarks, nil if absent.
func (s State) Bookmarks(name string) []Bookmark {
	list, ok := s.Categories[name]
	if !ok {
		return nil
	}
	return cloneBookmarks(list)
}

// Emoji returns the category icon, nil if none.
func (s State) Emoji(name string) *Emoji {
	e, ok := s.Emojis[name]
	if !ok {
		return nil
	}
	return &e
}

// CategoryCount returns the number of categories.
func (s State) CategoryCount() int {
	return len(s.Categories)
}

// BookmarkCount returns the total number of bookmarks across categories.
func (s State) BookmarkCount() int {
	n := 0
	for _, list := range s.Categories {
		n += len(list)
	}
	return n
}

// CheckInvariants verifies the structural invariants of the board.
func (s State) CheckInvariants() error {
	if len(s.Order) != len(s.Categories) {
		return fmt.Errorf("order has %d entries for %d categories", len(s.Order), len(s.Categories))
	}
	seen := make(map[string]bool, len(s.Order))
	for _, name := range s.Order {
		if seen[name] {
			return fmt.Errorf("category %q listed twice in order", name)
		}
		seen[name] = true
		if !s.HasCategory(name) {
			return fmt.Errorf("order references unknown category %q", name)
		}
	}
	for name, e := range s.Emojis {
		if !s.HasCategory(name) {
			return fmt.Errorf("orphaned emoji for %q", name)
		}
		if !e.Valid() {
			return fmt.Errorf("malformed emoji for %q", name)
		}
	}
	return nil
}

// Normalized returns s with every nil collection replaced by an empty one,
// e.g. after decoding a partial document.
func (s State) Normalized() State {
	if s.Categories == nil {
		s.Categories = make(map[string][]Bookmark)
	}
	if s.Order == nil {
		s.Order = []string{}
	}
	if s.Emojis == nil {
		s.Emojis = make(map[string]Emoji)
	}
	for name, list := range s.Categories {
		if list == nil {
			s.Categories[name] = []Bookmark{}
		}
	}
	return s
}
