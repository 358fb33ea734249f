package domain

import (
	"fmt"
	"strings"
)

// Outcome describes what a successful command did.
type Outcome struct {
	// Message is the success notification, empty when nothing is worth saying.
	Message string
	// Changed is false when the command succeeded as a no-op.
	Changed bool
}

// Command is one board mutation. The set is closed: only this package
// implements it.
type Command interface {
	Kind() string
	apply(s State) (State, Outcome, error)
}

// Apply runs cmd against s and returns the replacement state.
// On error the input state is returned unchanged; the command only ever
// sees a private clone, so a failure can never leave a half-applied board.
func Apply(s State, cmd Command) (State, Outcome, error) {
	next, out, err := cmd.apply(s.Normalized().Clone())
	if err != nil {
		return s, Outcome{}, fmt.Errorf("%s: %w", cmd.Kind(), err)
	}
	return next, out, nil
}

// ─────────────────────────────────────────────────────────────────
// Bookmarks
// ─────────────────────────────────────────────────────────────────

// AddBookmark appends a bookmark to an existing category.
type AddBookmark struct {
	Name     string
	URL      string
	Category string
}

func (AddBookmark) Kind() string { return "add_bookmark" }

func (c AddBookmark) apply(s State) (State, Outcome, error) {
	rawURL := strings.TrimSpace(c.URL)

	var fields []string
	if !ValidateBookmarkName(c.Name) {
		fields = append(fields, FieldName)
	}
	if !ValidateURL(rawURL) {
		fields = append(fields, FieldURL)
	}
	if c.Category == "" || !s.HasCategory(c.Category) {
		fields = append(fields, FieldCategory)
	}
	if len(fields) > 0 {
		return s, Outcome{}, &ValidationError{Fields: fields}
	}

	s.Categories[c.Category] = append(s.Categories[c.Category], Bookmark{
		SiteName: strings.TrimSpace(c.Name),
		SiteURL:  NormalizeURL(rawURL),
	})

	return s, Outcome{Message: "Bookmark added successfully!", Changed: true}, nil
}

// DeleteBookmark removes the bookmark at Index from Category.
type DeleteBookmark struct {
	Category string
	Index    int
}

func (DeleteBookmark) Kind() string { return "delete_bookmark" }

func (c DeleteBookmark) apply(s State) (State, Outcome, error) {
	list, ok := s.Categories[c.Category]
	if !ok {
		return s, Outcome{}, fmt.Errorf("%q: %w", c.Category, ErrCategoryNotFound)
	}
	if c.Index < 0 || c.Index >= len(list) {
		return s, Outcome{}, fmt.Errorf("bookmark %d of %d: %w", c.Index, len(list), ErrIndexOutOfRange)
	}

	removed := list[c.Index]
	s.Categories[c.Category] = append(list[:c.Index], list[c.Index+1:]...)

	return s, Outcome{
		Message: fmt.Sprintf("%q deleted successfully!", removed.SiteName),
		Changed: true,
	}, nil
}

// ─────────────────────────────────────────────────────────────────
// Categories
// ─────────────────────────────────────────────────────────────────

// CreateOrUpdateCategory picks the update path when editing names an
// existing category being edited, the create path otherwise.
func CreateOrUpdateCategory(name, editing string, emoji *Emoji) Command {
	if editing != "" {
		return UpdateCategory{OldName: editing, NewName: name, Emoji: emoji}
	}
	return CreateCategory{Name: name, Emoji: emoji}
}

// CreateCategory adds an empty category at the end of the order.
type CreateCategory struct {
	Name  string
	Emoji *Emoji // pending picker selection, nil for none
}

func (CreateCategory) Kind() string { return "create_category" }

func (c CreateCategory) apply(s State) (State, Outcome, error) {
	name := strings.TrimSpace(c.Name)
	if !ValidateCategoryName(name) {
		return s, Outcome{}, ErrInvalidCategoryName
	}
	if s.HasCategory(name) {
		return s, Outcome{}, fmt.Errorf("%q: %w", name, ErrCategoryExists)
	}

	s.Categories[name] = []Bookmark{}
	s.Order = append(s.Order, name)
	if c.Emoji != nil && c.Emoji.Valid() {
		s.Emojis[name] = *c.Emoji
	}

	return s, Outcome{
		Message: fmt.Sprintf("Category %q created successfully!", name),
		Changed: true,
	}, nil
}

// UpdateCategory renames a category and/or reassigns its icon.
//
// Icon rules, applied after the rename:
//   - a selected emoji always becomes the icon of the resulting name
//   - no selection and same name clears the icon
//   - no selection and a new name carries the old icon over
type UpdateCategory struct {
	OldName string
	NewName string
	Emoji   *Emoji
}

func (UpdateCategory) Kind() string { return "update_category" }

func (c UpdateCategory) apply(s State) (State, Outcome, error) {
	if !s.HasCategory(c.OldName) {
		return s, Outcome{}, fmt.Errorf("%q: %w", c.OldName, ErrCategoryNotFound)
	}

	newName := strings.TrimSpace(c.NewName)
	renamed := newName != c.OldName

	if !renamed && sameEmoji(c.Emoji, s.Emoji(c.OldName)) {
		return s, Outcome{}, nil
	}

	if renamed {
		if !ValidateCategoryName(newName) {
			return s, Outcome{}, ErrInvalidCategoryName
		}
		if s.HasCategory(newName) {
			return s, Outcome{}, fmt.Errorf("%q: %w", newName, ErrCategoryNameTaken)
		}
		s.Categories[newName] = s.Categories[c.OldName]
		delete(s.Categories, c.OldName)
	}

	oldEmoji, hadEmoji := s.Emojis[c.OldName]
	switch {
	case c.Emoji != nil && c.Emoji.Valid():
		s.Emojis[newName] = *c.Emoji
	case renamed && hadEmoji:
		s.Emojis[newName] = oldEmoji
	case !renamed:
		delete(s.Emojis, c.OldName)
	}
	if renamed {
		delete(s.Emojis, c.OldName)
		for i, name := range s.Order {
			if name == c.OldName {
				s.Order[i] = newName
			}
		}
	}

	return s, Outcome{Message: "Category updated successfully!", Changed: true}, nil
}

// DeleteCategory removes a category with its bookmarks and icon.
// Deleting an absent category is a successful no-op.
type DeleteCategory struct {
	Name string
}

func (DeleteCategory) Kind() string { return "delete_category" }

func (c DeleteCategory) apply(s State) (State, Outcome, error) {
	if !s.HasCategory(c.Name) {
		return s, Outcome{}, nil
	}

	delete(s.Categories, c.Name)
	delete(s.Emojis, c.Name)
	order := make([]string, 0, len(s.Order))
	for _, name := range s.Order {
		if name != c.Name {
			order = append(order, name)
		}
	}
	s.Order = order

	return s, Outcome{
		Message: fmt.Sprintf("Category %q deleted successfully!", c.Name),
		Changed: true,
	}, nil
}

// ReorderCategories moves the category at From to position To; everything
// in between shifts by one. Only the order changes.
type ReorderCategories struct {
	From int
	To   int
}

func (ReorderCategories) Kind() string { return "reorder_categories" }

func (c ReorderCategories) apply(s State) (State, Outcome, error) {
	n := len(s.Order)
	if c.From < 0 || c.From >= n || c.To < 0 || c.To >= n {
		return s, Outcome{}, fmt.Errorf("move %d -> %d among %d: %w", c.From, c.To, n, ErrIndexOutOfRange)
	}
	if c.From == c.To {
		return s, Outcome{}, nil
	}

	moved := s.Order[c.From]
	order := make([]string, 0, n)
	order = append(order, s.Order[:c.From]...)
	order = append(order, s.Order[c.From+1:]...)
	order = append(order[:c.To], append([]string{moved}, order[c.To:]...)...)
	s.Order = order

	return s, Outcome{Changed: true}, nil
}
