package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/MrSnakeDoc/linkboard/internal/domain"
	"github.com/MrSnakeDoc/linkboard/internal/feedback"
	"github.com/MrSnakeDoc/linkboard/internal/share"
)

type stubTimer struct{}

func (stubTimer) Stop() bool { return true }

// frozen keeps every toast visible so tests can read it.
func frozen(time.Duration, func()) feedback.Timer { return stubTimer{} }

type snapRepo struct {
	snaps map[string]share.Snapshot
	err   error
}

func (r *snapRepo) SaveSnapshot(_ context.Context, id string, snap share.Snapshot) error {
	if r.err != nil {
		return r.err
	}
	r.snaps[id] = snap
	return nil
}

func (r *snapRepo) GetSnapshot(_ context.Context, id string) (*share.Snapshot, error) {
	s, ok := r.snaps[id]
	if !ok {
		return nil, share.ErrNotFound
	}
	return &s, nil
}

func (r *snapRepo) IncrementViews(context.Context, string) (int64, error) { return 1, nil }

func newSession(t *testing.T) (*Session, *snapRepo) {
	t.Helper()
	repo := &snapRepo{snaps: map[string]share.Snapshot{}}
	s := New("test-board", domain.NewState(), Options{
		AfterFunc: frozen,
		Exporter:  share.NewExporter(repo, ""),
	})
	t.Cleanup(s.Close)
	return s, repo
}

func TestAddBookmarkRoundTrip(t *testing.T) {
	s, _ := newSession(t)

	assert.NilError(t, s.CreateOrUpdateCategory("Work", ""))
	assert.NilError(t, s.AddBookmark("Docs", "example.com", "Work"))

	v := s.View()
	assert.DeepEqual(t, v.Board.Categories["Work"], []domain.Bookmark{{SiteName: "Docs", SiteURL: "https://example.com"}})
	assert.DeepEqual(t, v.Toast, feedback.Toast{Show: true, Message: "Bookmark added successfully!", Kind: feedback.KindSuccess})
	assert.Equal(t, v.Version, uint64(2))
}

func TestAddBookmarkInvalidOpensErrorModal(t *testing.T) {
	s, _ := newSession(t)
	assert.NilError(t, s.CreateOrUpdateCategory("Work", ""))
	before := s.State()

	err := s.AddBookmark("ab", "example.com", "Work")
	assert.Assert(t, domain.IsValidation(err))

	v := s.View()
	assert.Assert(t, v.Modals.Error)
	assert.DeepEqual(t, v.Board, before)
	assert.Equal(t, v.Version, uint64(1))
}

func TestCategoryErrorsToast(t *testing.T) {
	s, _ := newSession(t)
	assert.NilError(t, s.CreateOrUpdateCategory("Work", ""))

	err := s.CreateOrUpdateCategory("Work", "")
	assert.Assert(t, errors.Is(err, domain.ErrCategoryExists))
	assert.DeepEqual(t, s.View().Toast, feedback.Toast{Show: true, Message: "Category already exists!", Kind: feedback.KindError})

	err = s.CreateOrUpdateCategory("x", "")
	assert.Assert(t, errors.Is(err, domain.ErrInvalidCategoryName))
	assert.Equal(t, s.View().Toast.Message,
		"Category name must be 2-30 characters long and contain only letters, numbers, and spaces.")
}

func TestEditCategoryFlow(t *testing.T) {
	s, _ := newSession(t)

	s.OpenModal(feedback.CategoryModal)
	s.SelectEmoji("📚")
	assert.NilError(t, s.CreateOrUpdateCategory("Reading", ""))

	v := s.View()
	assert.Assert(t, !v.Modals.Category)
	assert.Assert(t, v.SelectedEmoji == nil)
	assert.Equal(t, v.Toast.Message, `Category "Reading" created successfully!`)
	assert.Equal(t, v.Categories[0].IconURL, domain.TwemojiBaseURL+"1f4da.svg")

	assert.NilError(t, s.StartEditingCategory("Reading"))
	v = s.View()
	assert.Assert(t, v.Modals.Category)
	assert.Equal(t, v.EditingCategory, "Reading")
	assert.Equal(t, v.SelectedEmoji.Value, "📚")

	// rename with the preselected icon keeps it
	assert.NilError(t, s.CreateOrUpdateCategory("Books", ""))
	st := s.State()
	assert.Assert(t, !st.HasCategory("Reading"))
	assert.Equal(t, st.Emoji("Books").Value, "📚")
	assert.Equal(t, s.View().EditingCategory, "")

	// same name, icon cleared in the picker: icon removed
	assert.NilError(t, s.StartEditingCategory("Books"))
	s.SelectEmoji("")
	assert.NilError(t, s.CreateOrUpdateCategory("Books", ""))
	assert.Assert(t, s.State().Emoji("Books") == nil)
}

func TestCloseCategoryModalForgetsSelection(t *testing.T) {
	s, _ := newSession(t)
	assert.NilError(t, s.CreateOrUpdateCategory("Work", ""))
	assert.NilError(t, s.StartEditingCategory("Work"))
	s.SelectEmoji("ghost")

	s.CloseModal(feedback.CategoryModal)

	v := s.View()
	assert.Assert(t, v.SelectedEmoji == nil)
	assert.Equal(t, v.EditingCategory, "")

	// next submit creates instead of renaming
	assert.NilError(t, s.CreateOrUpdateCategory("Play", ""))
	assert.DeepEqual(t, s.State().Order, []string{"Work", "Play"})
}

func TestDeleteConfirmation(t *testing.T) {
	s, _ := newSession(t)
	assert.NilError(t, s.CreateOrUpdateCategory("Work", ""))
	assert.NilError(t, s.AddBookmark("Docs", "example.com", "Work"))
	assert.NilError(t, s.AddBookmark("Mail", "mail.example.com", "Work"))

	p, err := s.RequestDeleteBookmark("Work", 1)
	assert.NilError(t, err)
	assert.Equal(t, p.Name, "Mail")
	assert.NilError(t, s.ConfirmDelete())
	assert.Equal(t, len(s.State().Categories["Work"]), 1)
	assert.Equal(t, s.View().Toast.Message, `"Mail" deleted successfully!`)

	p, err = s.RequestDeleteCategory("Work")
	assert.NilError(t, err)
	assert.Equal(t, p.BookmarkCount, 1)
	v := s.View()
	assert.Assert(t, v.Modals.Delete)
	assert.Equal(t, v.PendingDelete.Prompt,
		`Are you sure you want to delete the category "Work" and all its 1 bookmarks? This action cannot be undone.`)

	assert.NilError(t, s.ConfirmDelete())
	v = s.View()
	assert.Assert(t, !v.Modals.Delete)
	assert.Assert(t, v.PendingDelete == nil)
	assert.Equal(t, v.Board.CategoryCount(), 0)

	assert.Assert(t, errors.Is(s.ConfirmDelete(), ErrNothingToDelete))
}

func TestConfirmDeleteRejectsShiftedBookmark(t *testing.T) {
	s, _ := newSession(t)
	assert.NilError(t, s.CreateOrUpdateCategory("Work", ""))
	assert.NilError(t, s.AddBookmark("Docs", "example.com", "Work"))
	assert.NilError(t, s.AddBookmark("Mail", "mail.example.com", "Work"))
	assert.NilError(t, s.AddBookmark("Wiki", "wiki.example.com", "Work"))

	p, err := s.RequestDeleteBookmark("Work", 1)
	assert.NilError(t, err)
	assert.Equal(t, p.Name, "Mail")

	// an earlier bookmark goes away before the dialog is confirmed
	assert.NilError(t, s.DeleteBookmark("Work", 0))

	err = s.ConfirmDelete()
	assert.Assert(t, errors.Is(err, domain.ErrIndexOutOfRange))
	got := s.State().Categories["Work"]
	assert.Equal(t, len(got), 2)
	assert.Equal(t, got[0].SiteName, "Mail")
	assert.Equal(t, got[1].SiteName, "Wiki")
	assert.Assert(t, s.View().PendingDelete == nil)
}

func TestCancelDelete(t *testing.T) {
	s, _ := newSession(t)
	assert.NilError(t, s.CreateOrUpdateCategory("Work", ""))

	_, err := s.RequestDeleteCategory("Work")
	assert.NilError(t, err)
	s.CloseModal(feedback.DeleteModal)

	assert.Assert(t, errors.Is(s.ConfirmDelete(), ErrNothingToDelete))
	assert.Assert(t, s.State().HasCategory("Work"))

	_, err = s.RequestDeleteBookmark("Work", 0)
	assert.Assert(t, errors.Is(err, domain.ErrIndexOutOfRange))
}

func TestDragReorders(t *testing.T) {
	s, _ := newSession(t)
	for _, name := range []string{"A", "B", "C"} {
		assert.NilError(t, s.CreateOrUpdateCategory(name+name, ""))
	}

	assert.NilError(t, s.StartDrag(0))
	s.DragOver(1)
	s.DragOver(2)
	assert.Equal(t, s.View().Drag.DropIndex, 2)
	assert.NilError(t, s.EndDrag())
	assert.DeepEqual(t, s.State().Order, []string{"BB", "CC", "AA"})
	assert.Assert(t, !s.View().Drag.Dragging)

	version := s.Version()
	assert.NilError(t, s.StartDrag(1))
	s.CancelDrag()
	assert.NilError(t, s.EndDrag())
	assert.Equal(t, s.Version(), version)

	assert.Assert(t, errors.Is(s.StartDrag(5), domain.ErrIndexOutOfRange))
}

func TestShareCategory(t *testing.T) {
	s, repo := newSession(t)
	assert.NilError(t, s.CreateOrUpdateCategory("Work", ""))
	assert.NilError(t, s.AddBookmark("Docs", "example.com", "Work"))
	version := s.Version()

	link, err := s.ShareCategory(context.Background(), "Work")
	assert.NilError(t, err)
	assert.Equal(t, s.Version(), version)

	v := s.View()
	assert.Assert(t, v.Modals.ShareCategory)
	assert.Equal(t, v.SharedLink.Path, "/shared/"+link.ID)
	assert.Equal(t, repo.snaps[link.ID].Name, "Work")

	s.CloseModal(feedback.ShareCategoryModal)
	assert.Assert(t, s.View().SharedLink == nil)
}

func TestShareCategoryFailure(t *testing.T) {
	s, repo := newSession(t)
	assert.NilError(t, s.CreateOrUpdateCategory("Work", ""))
	repo.err = errors.New("quota exceeded")

	_, err := s.ShareCategory(context.Background(), "Work")
	assert.ErrorContains(t, err, "quota exceeded")

	v := s.View()
	assert.Assert(t, !v.Modals.ShareCategory)
	assert.DeepEqual(t, v.Toast, feedback.Toast{Show: true, Message: "Error creating share link. Please try again.", Kind: feedback.KindError})
}

func TestReplace(t *testing.T) {
	s, _ := newSession(t)

	bad := domain.NewState()
	bad.Order = []string{"Ghost"}
	assert.Assert(t, s.Replace(bad) != nil)
	assert.Equal(t, s.Version(), uint64(0))

	good := domain.NewState()
	good.Categories["Work"] = []domain.Bookmark{}
	good.Order = []string{"Work"}
	assert.NilError(t, s.Replace(good))
	assert.Equal(t, s.Version(), uint64(1))
	assert.Assert(t, s.State().HasCategory("Work"))
}

func TestSearch(t *testing.T) {
	s, _ := newSession(t)
	assert.NilError(t, s.CreateOrUpdateCategory("Dev", ""))
	assert.NilError(t, s.AddBookmark("GitHub", "github.com", "Dev"))

	hit, ok := s.Best("git")
	assert.Assert(t, ok)
	assert.Equal(t, hit.Bookmark.SiteURL, "https://github.com")
	assert.Equal(t, len(s.Search("zzz")), 0)
}
