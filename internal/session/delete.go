package session

import (
	"fmt"

	"github.com/MrSnakeDoc/linkboard/internal/domain"
	"github.com/MrSnakeDoc/linkboard/internal/feedback"
)

// DeleteKind is what a pending delete removes.
type DeleteKind string

const (
	DeleteCategoryKind DeleteKind = "category"
	DeleteBookmarkKind DeleteKind = "bookmark"
)

// PendingDelete is the target of the confirmation dialog.
type PendingDelete struct {
	Kind          DeleteKind `json:"type"`
	Category      string     `json:"category"`
	Index         int        `json:"index,omitempty"`
	Name          string     `json:"name"`
	BookmarkCount int        `json:"bookmarkCount"`

	url string // bookmark URL seen when the delete was requested
}

// Prompt is the confirmation question.
func (p PendingDelete) Prompt() string {
	switch p.Kind {
	case DeleteCategoryKind:
		return fmt.Sprintf("Are you sure you want to delete the category %q and all its %d bookmarks? This action cannot be undone.",
			p.Name, p.BookmarkCount)
	case DeleteBookmarkKind:
		name := p.Name
		if name == "" {
			name = "this bookmark"
		}
		return fmt.Sprintf("Are you sure you want to delete the bookmark %q? This action cannot be undone.", name)
	}
	return ""
}

// RequestDeleteCategory asks for confirmation before dropping name.
func (s *Session) RequestDeleteCategory(name string) (PendingDelete, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.HasCategory(name) {
		err := fmt.Errorf("delete %q: %w", name, domain.ErrCategoryNotFound)
		s.toastError(err)
		return PendingDelete{}, err
	}

	p := PendingDelete{
		Kind:          DeleteCategoryKind,
		Category:      name,
		Name:          name,
		BookmarkCount: len(s.state.Categories[name]),
	}
	s.pendingDelete = &p
	s.modals.Open(feedback.DeleteModal)
	return p, nil
}

// RequestDeleteBookmark asks for confirmation before dropping one bookmark.
func (s *Session) RequestDeleteBookmark(category string, index int) (PendingDelete, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.state.Categories[category]
	if !ok {
		err := fmt.Errorf("delete in %q: %w", category, domain.ErrCategoryNotFound)
		s.toastError(err)
		return PendingDelete{}, err
	}
	if index < 0 || index >= len(list) {
		err := fmt.Errorf("delete bookmark %d of %d: %w", index, len(list), domain.ErrIndexOutOfRange)
		s.toastError(err)
		return PendingDelete{}, err
	}

	p := PendingDelete{
		Kind:     DeleteBookmarkKind,
		Category: category,
		Index:    index,
		Name:     list[index].SiteName,
		url:      list[index].SiteURL,
	}
	s.pendingDelete = &p
	s.modals.Open(feedback.DeleteModal)
	return p, nil
}

// ConfirmDelete carries out the pending delete and closes the dialog.
func (s *Session) ConfirmDelete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.pendingDelete
	if p == nil {
		return ErrNothingToDelete
	}
	s.closeModal(feedback.DeleteModal)

	if p.Kind == DeleteBookmarkKind {
		if !s.stillAt(*p) {
			err := fmt.Errorf("bookmark %q moved since the delete was requested: %w", p.Name, domain.ErrIndexOutOfRange)
			s.toastError(err)
			return err
		}
		return s.deleteBookmark(p.Category, p.Index)
	}
	return s.deleteCategory(p.Category)
}

// stillAt reports whether the bookmark named in p is still at its index.
func (s *Session) stillAt(p PendingDelete) bool {
	list := s.state.Categories[p.Category]
	if p.Index < 0 || p.Index >= len(list) {
		return false
	}
	b := list[p.Index]
	return b.SiteName == p.Name && b.SiteURL == p.url
}
