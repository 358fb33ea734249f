// Package session drives one board: it owns the category state, applies
// commands to it and raises the toasts and dialogs that go with each
// outcome. All calls on a Session are serialised.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/linkboard/internal/domain"
	"github.com/MrSnakeDoc/linkboard/internal/feedback"
	"github.com/MrSnakeDoc/linkboard/internal/logger"
	"github.com/MrSnakeDoc/linkboard/internal/share"
)

const shareFailedMessage = "Error creating share link. Please try again."

var (
	ErrNothingToDelete = errors.New("no delete pending")
	ErrSharingDisabled = errors.New("sharing is not configured")
)

// Options tune a Session. Zero values are usable.
type Options struct {
	ToastDuration time.Duration
	AfterFunc     feedback.AfterFunc
	Exporter      *share.Exporter
	Logger        logger.Logger
	// Version is the starting version, for boards restored from storage.
	Version       uint64
}

// Session is a live board.
type Session struct {
	mu sync.Mutex

	id      string
	state   domain.State
	version uint64

	toaster *feedback.Toaster
	modals  feedback.Modals
	drag    feedback.Drag

	selectedEmoji *domain.Emoji
	editing       string
	pendingDelete *PendingDelete
	sharedLink    *SharedLink

	exporter *share.Exporter
	log      logger.Logger
}

// New wraps state into a session. The state is cloned.
func New(id string, state domain.State, opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &Session{
		id:       id,
		state:    state.Normalized().Clone(),
		version:  opts.Version,
		toaster:  feedback.NewToaster(opts.ToastDuration, opts.AfterFunc),
		drag:     feedback.NewDrag(),
		exporter: opts.Exporter,
		log:      log.With(logger.String("board", id)),
	}
}

func (s *Session) ID() string { return s.id }

// Version increases every time the board content changes.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// State returns a copy of the board content.
func (s *Session) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Snapshot returns a copy of the board content with its version, read
// under a single lock.
func (s *Session) Snapshot() (domain.State, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone(), s.version
}

// Replace swaps the whole board content, for seed resets.
func (s *Session) Replace(state domain.State) error {
	state = state.Normalized()
	if err := state.CheckInvariants(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state.Clone()
	s.version++
	return nil
}

// Close stops pending timers.
func (s *Session) Close() {
	s.toaster.Stop()
}

// apply runs cmd and swaps the state in on success. Callers hold mu.
func (s *Session) apply(cmd domain.Command) (domain.Outcome, error) {
	next, out, err := domain.Apply(s.state, cmd)
	if err != nil {
		return out, err
	}
	s.state = next
	if out.Changed {
		s.version++
	}
	s.log.Debug("command applied",
		logger.String("kind", cmd.Kind()),
		logger.Bool("changed", out.Changed),
	)
	return out, nil
}

func (s *Session) toastOutcome(out domain.Outcome) {
	if out.Message != "" {
		s.toaster.Show(out.Message, feedback.KindSuccess)
	}
}

func (s *Session) toastError(err error) {
	s.toaster.Show(domain.Message(err), feedback.KindError)
}

// ─────────────────────────────────────────────────────────────────
// Bookmarks
// ─────────────────────────────────────────────────────────────────

// AddBookmark appends a bookmark. Invalid input opens the error modal.
func (s *Session) AddBookmark(name, url, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.apply(domain.AddBookmark{Name: name, URL: url, Category: category})
	if err != nil {
		s.modals.Open(feedback.ErrorModal)
		return err
	}
	s.toastOutcome(out)
	return nil
}

// DeleteBookmark removes the bookmark at index of category.
func (s *Session) DeleteBookmark(category string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteBookmark(category, index)
}

func (s *Session) deleteBookmark(category string, index int) error {
	out, err := s.apply(domain.DeleteBookmark{Category: category, Index: index})
	if err != nil {
		s.toastError(err)
		return err
	}
	s.toastOutcome(out)
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Categories
// ─────────────────────────────────────────────────────────────────

// SelectEmoji sets the pending picker selection; an empty token clears it.
func (s *Session) SelectEmoji(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedEmoji = domain.ParseEmoji(token)
}

// StartEditingCategory opens the category dialog on an existing category,
// preselecting its current icon.
func (s *Session) StartEditingCategory(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.HasCategory(name) {
		err := fmt.Errorf("edit %q: %w", name, domain.ErrCategoryNotFound)
		s.toastError(err)
		return err
	}
	s.editing = name
	s.selectedEmoji = s.state.Emoji(name)
	s.modals.Open(feedback.CategoryModal)
	return nil
}

// CreateOrUpdateCategory submits the category dialog. editing overrides
// the category being edited; when empty the one set by
// StartEditingCategory is used.
func (s *Session) CreateOrUpdateCategory(name, editing string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if editing == "" {
		editing = s.editing
	}
	return s.submitCategory(domain.CreateOrUpdateCategory(name, editing, s.selectedEmoji))
}

// UpdateCategory renames oldName using the pending icon selection.
func (s *Session) UpdateCategory(oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitCategory(domain.UpdateCategory{OldName: oldName, NewName: newName, Emoji: s.selectedEmoji})
}

func (s *Session) submitCategory(cmd domain.Command) error {
	out, err := s.apply(cmd)
	if err != nil {
		s.toastError(err)
		return err
	}
	s.closeModal(feedback.CategoryModal)
	s.toastOutcome(out)
	return nil
}

// DeleteCategory drops a category with its bookmarks and icon.
func (s *Session) DeleteCategory(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteCategory(name)
}

func (s *Session) deleteCategory(name string) error {
	out, err := s.apply(domain.DeleteCategory{Name: name})
	if err != nil {
		s.toastError(err)
		return err
	}
	s.toastOutcome(out)
	return nil
}

// ReorderCategories moves the category at from to position to.
func (s *Session) ReorderCategories(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reorder(from, to)
}

func (s *Session) reorder(from, to int) error {
	if _, err := s.apply(domain.ReorderCategories{From: from, To: to}); err != nil {
		s.toastError(err)
		return err
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Dialogs
// ─────────────────────────────────────────────────────────────────

func (s *Session) OpenModal(m feedback.Modal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modals.Open(m)
}

// CloseModal hides m. Closing the category dialog forgets the pending
// icon and edit target; closing the delete dialog cancels the delete.
func (s *Session) CloseModal(m feedback.Modal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeModal(m)
}

func (s *Session) closeModal(m feedback.Modal) {
	s.modals.Close(m)
	switch m {
	case feedback.CategoryModal:
		s.selectedEmoji = nil
		s.editing = ""
	case feedback.DeleteModal:
		s.pendingDelete = nil
	case feedback.ShareCategoryModal:
		s.sharedLink = nil
	}
}

// ─────────────────────────────────────────────────────────────────
// Sharing
// ─────────────────────────────────────────────────────────────────

// ShareCategory publishes a snapshot of name and opens the share dialog.
func (s *Session) ShareCategory(ctx context.Context, name string) (share.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.exporter == nil {
		s.toaster.Show(shareFailedMessage, feedback.KindError)
		return share.Link{}, ErrSharingDisabled
	}

	link, err := s.exporter.Export(ctx, s.state, name)
	switch {
	case errors.Is(err, domain.ErrCategoryNotFound):
		s.toastError(err)
		return share.Link{}, err
	case err != nil:
		s.log.Error("share export failed", logger.String("category", name), logger.Error(err))
		s.toaster.Show(shareFailedMessage, feedback.KindError)
		return share.Link{}, err
	}

	s.sharedLink = &SharedLink{Category: name, Link: link}
	s.modals.Open(feedback.ShareCategoryModal)
	return link, nil
}

// ─────────────────────────────────────────────────────────────────
// Drag
// ─────────────────────────────────────────────────────────────────

func (s *Session) StartDrag(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.state.Order) {
		return fmt.Errorf("drag %d of %d: %w", index, len(s.state.Order), domain.ErrIndexOutOfRange)
	}
	s.drag.Start(index)
	return nil
}

func (s *Session) DragOver(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag.Over(index)
}

// EndDrag drops the dragged category at the last hovered position.
func (s *Session) EndDrag() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, to, ok := s.drag.Finish()
	if !ok {
		return nil
	}
	return s.reorder(from, to)
}

func (s *Session) CancelDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag.Cancel()
}

// ─────────────────────────────────────────────────────────────────
// Search
// ─────────────────────────────────────────────────────────────────

// Search ranks the bookmarks of the board against query.
func (s *Session) Search(query string) []domain.Hit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.RankBookmarks(query, s.state)
}

// Best returns the highest ranked bookmark for query.
func (s *Session) Best(query string) (domain.Hit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.BestBookmark(query, s.state)
}
