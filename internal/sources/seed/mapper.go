package seed

import (
	"fmt"
	"sync"

	"github.com/MrSnakeDoc/linkboard/internal/domain"
)

// Build turns a seed file into board state by applying the same commands
// a user would. Entries the commands reject are skipped and reported, so
// the result always satisfies the board invariants.
func Build(f File) (domain.State, []error) {
	state := domain.NewState()
	var skipped []error

	for _, c := range f.Categories {
		next, _, err := domain.Apply(state, domain.CreateCategory{Name: c.Name, Emoji: domain.ParseEmoji(c.Emoji)})
		if err != nil {
			skipped = append(skipped, fmt.Errorf("category %q: %w", c.Name, err))
			continue
		}
		state = next
		name := state.Order[len(state.Order)-1]

		for _, b := range c.Bookmarks {
			next, _, err := domain.Apply(state, domain.AddBookmark{Name: b.Name, URL: b.URL, Category: name})
			if err != nil {
				skipped = append(skipped, fmt.Errorf("bookmark %q in %q: %w", b.Name, name, err))
				continue
			}
			state = next
		}
	}
	return state, skipped
}

// Template holds the current starter state. It is safe for concurrent use.
type Template struct {
	mu    sync.RWMutex
	state domain.State
}

func NewTemplate() *Template {
	return &Template{state: domain.NewState()}
}

// Get returns a private copy of the template.
func (t *Template) Get() domain.State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.Clone()
}

// Set replaces the template.
func (t *Template) Set(s domain.State) {
	s = s.Normalized().Clone()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = s
}
