package session

import (
	"github.com/MrSnakeDoc/linkboard/internal/domain"
	"github.com/MrSnakeDoc/linkboard/internal/feedback"
	"github.com/MrSnakeDoc/linkboard/internal/share"
)

// SharedLink is the content of the share dialog.
type SharedLink struct {
	Category string `json:"category"`
	share.Link
}

// CategoryView is one category ready to render, icon resolved.
type CategoryView struct {
	Name      string            `json:"name"`
	Emoji     *domain.Emoji     `json:"emoji,omitempty"`
	IconURL   string            `json:"iconURL"`
	Bookmarks []domain.Bookmark `json:"bookmarks"`
}

// DeleteView is the delete dialog content.
type DeleteView struct {
	PendingDelete
	Prompt string `json:"prompt"`
}

// View is everything a client needs to draw the board.
type View struct {
	ID              string          `json:"id"`
	Version         uint64          `json:"version"`
	Board           domain.State    `json:"board"`
	Categories      []CategoryView  `json:"orderedCategories"`
	Toast           feedback.Toast  `json:"toast"`
	Modals          feedback.Modals `json:"modals"`
	Drag            feedback.Drag   `json:"dragState"`
	SelectedEmoji   *domain.Emoji   `json:"selectedEmoji"`
	EditingCategory string          `json:"editingCategory,omitempty"`
	PendingDelete   *DeleteView     `json:"pendingDelete,omitempty"`
	SharedLink      *SharedLink     `json:"sharedLink,omitempty"`
}

// View snapshots the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:              s.id,
		Version:         s.version,
		Board:           s.state.Clone(),
		Categories:      make([]CategoryView, 0, len(s.state.Order)),
		Toast:           s.toaster.Current(),
		Modals:          s.modals,
		Drag:            s.drag,
		EditingCategory: s.editing,
	}

	for _, name := range s.state.Order {
		cv := CategoryView{
			Name:      name,
			Emoji:     s.state.Emoji(name),
			Bookmarks: s.state.Bookmarks(name),
			IconURL:   domain.UnicodeEmoji(domain.DefaultCategoryEmoji).ImageURL(),
		}
		if cv.Emoji != nil {
			cv.IconURL = cv.Emoji.ImageURL()
		}
		v.Categories = append(v.Categories, cv)
	}

	if s.selectedEmoji != nil {
		e := *s.selectedEmoji
		v.SelectedEmoji = &e
	}
	if s.pendingDelete != nil {
		v.PendingDelete = &DeleteView{PendingDelete: *s.pendingDelete, Prompt: s.pendingDelete.Prompt()}
	}
	if s.sharedLink != nil {
		l := *s.sharedLink
		v.SharedLink = &l
	}
	return v
}
