package domain

import (
	"errors"
	"math/rand"
	"testing"

	"gotest.tools/v3/assert"
)

// mustApply applies cmd and fails the test on error.
func mustApply(t *testing.T, s State, cmd Command) State {
	t.Helper()
	next, _, err := Apply(s, cmd)
	assert.NilError(t, err)
	assert.NilError(t, next.CheckInvariants())
	return next
}

func boardWith(t *testing.T, names ...string) State {
	t.Helper()
	s := NewState()
	for _, n := range names {
		s = mustApply(t, s, CreateCategory{Name: n})
	}
	return s
}

func TestAddBookmarkRoundTrip(t *testing.T) {
	s := boardWith(t, "Work")
	s = mustApply(t, s, AddBookmark{Name: "Docs", URL: "example.com", Category: "Work"})

	assert.DeepEqual(t, s.Categories["Work"], []Bookmark{
		{SiteName: "Docs", SiteURL: "https://example.com"},
	})
}

func TestAddBookmarkKeepsInsertionOrder(t *testing.T) {
	s := boardWith(t, "Work")
	s = mustApply(t, s, AddBookmark{Name: "First", URL: "a.com", Category: "Work"})
	s = mustApply(t, s, AddBookmark{Name: "Second", URL: "http://b.com", Category: "Work"})

	list := s.Bookmarks("Work")
	assert.Equal(t, len(list), 2)
	assert.Equal(t, list[0].SiteName, "First")
	assert.Equal(t, list[1].SiteURL, "http://b.com")
}

func TestAddBookmarkValidation(t *testing.T) {
	s := boardWith(t, "Work")

	tests := []struct {
		name   string
		cmd    AddBookmark
		fields []string
	}{
		{"bad name", AddBookmark{Name: "ab", URL: "example.com", Category: "Work"}, []string{FieldName}},
		{"bad url", AddBookmark{Name: "Docs", URL: "not a url", Category: "Work"}, []string{FieldURL}},
		{"no category", AddBookmark{Name: "Docs", URL: "example.com"}, []string{FieldCategory}},
		{"unknown category", AddBookmark{Name: "Docs", URL: "example.com", Category: "Play"}, []string{FieldCategory}},
		{"everything wrong", AddBookmark{Name: " x", URL: "", Category: ""}, []string{FieldName, FieldURL, FieldCategory}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _, err := Apply(s, tt.cmd)

			var verr *ValidationError
			assert.Assert(t, errors.As(err, &verr))
			assert.DeepEqual(t, verr.Fields, tt.fields)
			assert.Assert(t, IsValidation(err))
			assert.DeepEqual(t, next, s)
		})
	}
}

func TestCreateCategory(t *testing.T) {
	ghost := ParseEmoji("ghost")
	s := mustApply(t, NewState(), CreateCategory{Name: "Work", Emoji: ghost})
	s = mustApply(t, s, CreateCategory{Name: "Play"})

	assert.DeepEqual(t, s.Order, []string{"Work", "Play"})
	assert.DeepEqual(t, *s.Emoji("Work"), *ghost)
	assert.Assert(t, s.Emoji("Play") == nil)
	assert.Equal(t, len(s.Categories["Play"]), 0)
}

func TestCreateCategoryTrimsName(t *testing.T) {
	s, out, err := Apply(NewState(), CreateCategory{Name: "  Work  "})
	assert.NilError(t, err)
	assert.Assert(t, s.HasCategory("Work"))
	assert.Equal(t, out.Message, `Category "Work" created successfully!`)
}

func TestCreateCategoryRejectsDuplicate(t *testing.T) {
	s := boardWith(t, "Work")
	next, _, err := Apply(s, CreateCategory{Name: "Work"})

	assert.Assert(t, errors.Is(err, ErrCategoryExists))
	assert.DeepEqual(t, next, s)

	// names are case sensitive
	_ = mustApply(t, s, CreateCategory{Name: "work"})
}

func TestCreateCategoryRejectsInvalidName(t *testing.T) {
	for _, name := range []string{"", "W", "Work!", "a very long category name that exceeds"} {
		_, _, err := Apply(NewState(), CreateCategory{Name: name})
		assert.Assert(t, errors.Is(err, ErrInvalidCategoryName), "name %q", name)
	}
}

func TestUpdateCategoryRenamePreservesBookmarks(t *testing.T) {
	s := boardWith(t, "XX", "AA", "ZZ")
	s = mustApply(t, s, AddBookmark{Name: "Bookmark", URL: "example.com", Category: "AA"})

	s = mustApply(t, s, UpdateCategory{OldName: "AA", NewName: "B2"})

	assert.Assert(t, !s.HasCategory("AA"))
	assert.DeepEqual(t, s.Bookmarks("B2"), []Bookmark{{SiteName: "Bookmark", SiteURL: "https://example.com"}})
	assert.DeepEqual(t, s.Order, []string{"XX", "B2", "ZZ"})
}

func TestUpdateCategoryEmojiRules(t *testing.T) {
	books := ParseEmoji("📚")
	star := ParseEmoji("⭐")

	base := mustApply(t, NewState(), CreateCategory{Name: "Work", Emoji: books})

	t.Run("same name same emoji is a no-op", func(t *testing.T) {
		next, out, err := Apply(base, UpdateCategory{OldName: "Work", NewName: "Work", Emoji: books})
		assert.NilError(t, err)
		assert.Assert(t, !out.Changed)
		assert.DeepEqual(t, next, base)
	})

	t.Run("same name new emoji replaces", func(t *testing.T) {
		next := mustApply(t, base, UpdateCategory{OldName: "Work", NewName: "Work", Emoji: star})
		assert.DeepEqual(t, *next.Emoji("Work"), *star)
	})

	t.Run("same name no emoji clears", func(t *testing.T) {
		next := mustApply(t, base, UpdateCategory{OldName: "Work", NewName: "Work"})
		assert.Assert(t, next.Emoji("Work") == nil)
	})

	t.Run("rename without selection carries emoji", func(t *testing.T) {
		next := mustApply(t, base, UpdateCategory{OldName: "Work", NewName: "Job"})
		assert.DeepEqual(t, *next.Emoji("Job"), *books)
		assert.Assert(t, next.Emoji("Work") == nil)
	})

	t.Run("rename with selection uses selection", func(t *testing.T) {
		next := mustApply(t, base, UpdateCategory{OldName: "Work", NewName: "Job", Emoji: star})
		assert.DeepEqual(t, *next.Emoji("Job"), *star)
		_, stale := next.Emojis["Work"]
		assert.Assert(t, !stale)
	})

	t.Run("no emoji before and none selected is a no-op", func(t *testing.T) {
		plain := boardWith(t, "Plain")
		_, out, err := Apply(plain, UpdateCategory{OldName: "Plain", NewName: "Plain"})
		assert.NilError(t, err)
		assert.Assert(t, !out.Changed)
	})
}

func TestUpdateCategoryFailures(t *testing.T) {
	s := boardWith(t, "Work", "Play")

	_, _, err := Apply(s, UpdateCategory{OldName: "Work", NewName: "Play"})
	assert.Assert(t, errors.Is(err, ErrCategoryNameTaken))

	_, _, err = Apply(s, UpdateCategory{OldName: "Work", NewName: "W!"})
	assert.Assert(t, errors.Is(err, ErrInvalidCategoryName))

	_, _, err = Apply(s, UpdateCategory{OldName: "Gone", NewName: "Other"})
	assert.Assert(t, errors.Is(err, ErrCategoryNotFound))
}

func TestCreateOrUpdateCategoryDispatch(t *testing.T) {
	_, isCreate := CreateOrUpdateCategory("Work", "", nil).(CreateCategory)
	assert.Assert(t, isCreate)

	upd, isUpdate := CreateOrUpdateCategory("Job", "Work", nil).(UpdateCategory)
	assert.Assert(t, isUpdate)
	assert.Equal(t, upd.OldName, "Work")
}

func TestDeleteCategoryCascadesAndIsIdempotent(t *testing.T) {
	s := mustApply(t, NewState(), CreateCategory{Name: "Work", Emoji: ParseEmoji("📚")})
	s = mustApply(t, s, CreateCategory{Name: "Play"})
	s = mustApply(t, s, AddBookmark{Name: "Docs", URL: "example.com", Category: "Work"})

	once := mustApply(t, s, DeleteCategory{Name: "Work"})
	twice, out, err := Apply(once, DeleteCategory{Name: "Work"})
	assert.NilError(t, err)
	assert.Assert(t, !out.Changed)
	assert.DeepEqual(t, twice, once)

	assert.DeepEqual(t, once.Order, []string{"Play"})
	_, hasEmoji := once.Emojis["Work"]
	assert.Assert(t, !hasEmoji)

	// name is free again
	again := mustApply(t, once, CreateCategory{Name: "Work"})
	assert.Equal(t, len(again.Bookmarks("Work")), 0)
}

func TestDeleteBookmark(t *testing.T) {
	s := boardWith(t, "Work")
	for _, n := range []string{"One", "Two", "Three"} {
		s = mustApply(t, s, AddBookmark{Name: n, URL: "example.com", Category: "Work"})
	}

	next, out, err := Apply(s, DeleteBookmark{Category: "Work", Index: 1})
	assert.NilError(t, err)
	assert.Equal(t, out.Message, `"Two" deleted successfully!`)
	assert.Equal(t, next.Bookmarks("Work")[1].SiteName, "Three")

	// original untouched
	assert.Equal(t, len(s.Bookmarks("Work")), 3)

	for _, idx := range []int{-1, 3} {
		same, _, err := Apply(s, DeleteBookmark{Category: "Work", Index: idx})
		assert.Assert(t, errors.Is(err, ErrIndexOutOfRange))
		assert.DeepEqual(t, same, s)
	}

	_, _, err = Apply(s, DeleteBookmark{Category: "Nope", Index: 0})
	assert.Assert(t, errors.Is(err, ErrCategoryNotFound))
}

func TestReorderCategories(t *testing.T) {
	tests := []struct {
		from, to int
		want     []string
	}{
		{0, 2, []string{"BB", "CC", "AA"}},
		{2, 0, []string{"CC", "AA", "BB"}},
		{1, 2, []string{"AA", "CC", "BB"}},
		{1, 1, []string{"AA", "BB", "CC"}},
	}

	for _, tt := range tests {
		s := boardWith(t, "AA", "BB", "CC")
		s = mustApply(t, s, ReorderCategories{From: tt.from, To: tt.to})
		assert.DeepEqual(t, s.Order, tt.want)
	}
}

func TestReorderCategoriesRejectsOutOfRange(t *testing.T) {
	s := boardWith(t, "AA", "BB", "CC")
	for _, c := range []ReorderCategories{{From: -1, To: 0}, {From: 0, To: 3}, {From: 3, To: 3}} {
		next, _, err := Apply(s, c)
		assert.Assert(t, errors.Is(err, ErrIndexOutOfRange))
		assert.DeepEqual(t, next.Order, []string{"AA", "BB", "CC"})
	}
}

func TestInvariantsHoldOverRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	names := []string{"Work", "Play", "News", "Dev", "Music"}
	emojis := []*Emoji{nil, ParseEmoji("📚"), ParseEmoji("ghost")}

	s := NewState()
	for i := 0; i < 2000; i++ {
		var cmd Command
		switch rng.Intn(6) {
		case 0:
			cmd = CreateCategory{Name: names[rng.Intn(len(names))], Emoji: emojis[rng.Intn(len(emojis))]}
		case 1:
			cmd = UpdateCategory{
				OldName: names[rng.Intn(len(names))],
				NewName: names[rng.Intn(len(names))],
				Emoji:   emojis[rng.Intn(len(emojis))],
			}
		case 2:
			cmd = DeleteCategory{Name: names[rng.Intn(len(names))]}
		case 3:
			cmd = AddBookmark{Name: "Site", URL: "example.com", Category: names[rng.Intn(len(names))]}
		case 4:
			cmd = DeleteBookmark{Category: names[rng.Intn(len(names))], Index: rng.Intn(4) - 1}
		default:
			cmd = ReorderCategories{From: rng.Intn(6) - 1, To: rng.Intn(6) - 1}
		}

		next, _, err := Apply(s, cmd)
		if err != nil {
			assert.DeepEqual(t, next, s)
		}
		assert.NilError(t, next.CheckInvariants(), "step %d: %s", i, cmd.Kind())
		s = next
	}
}

func TestCheckInvariantsDetectsCorruption(t *testing.T) {
	s := boardWith(t, "Work")
	s.Order = append(s.Order, "Ghost")
	assert.ErrorContains(t, s.CheckInvariants(), "order has")

	s = boardWith(t, "Work")
	s.Emojis["Gone"] = UnicodeEmoji("📚")
	assert.ErrorContains(t, s.CheckInvariants(), "orphaned emoji")
}

func TestCloneIsDeep(t *testing.T) {
	s := boardWith(t, "Work")
	s = mustApply(t, s, AddBookmark{Name: "Docs", URL: "example.com", Category: "Work"})

	c := s.Clone()
	c.Categories["Work"][0].SiteName = "Changed"
	c.Order[0] = "Other"

	assert.Equal(t, s.Categories["Work"][0].SiteName, "Docs")
	assert.Equal(t, s.Order[0], "Work")
}
