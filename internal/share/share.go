// Package share freezes a category into a read-only snapshot that can be
// resolved later by its identifier alone.
package share

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/MrSnakeDoc/linkboard/internal/domain"
)

// DefaultPathPrefix is the viewer route the identifier is appended to.
const DefaultPathPrefix = "/shared/"

const (
	randomIDLen = 8
	clockIDLen  = 4
	base36      = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var (
	ErrNotFound = errors.New("shared category not found")
	ErrCorrupt  = errors.New("invalid shared category data")
)

// Snapshot is a frozen copy of one category.
type Snapshot struct {
	Name      string            `json:"name"`
	Bookmarks []domain.Bookmark `json:"bookmarks"`
	Emoji     *domain.Emoji     `json:"emoji"`
}

// Link is what the owner hands out.
type Link struct {
	ID   string `json:"id"`
	Path string `json:"url"`
}

// Repository stores snapshots keyed by identifier.
type Repository interface {
	SaveSnapshot(ctx context.Context, id string, snap Snapshot) error
	// GetSnapshot returns ErrNotFound for unknown ids and ErrCorrupt for
	// payloads that no longer decode.
	GetSnapshot(ctx context.Context, id string) (*Snapshot, error)
	IncrementViews(ctx context.Context, id string) (int64, error)
}

// Take copies the category name out of s. The snapshot shares no memory
// with the live state.
func Take(s domain.State, name string) (Snapshot, error) {
	if !s.HasCategory(name) {
		return Snapshot{}, fmt.Errorf("share %q: %w", name, domain.ErrCategoryNotFound)
	}
	return Snapshot{
		Name:      name,
		Bookmarks: s.Bookmarks(name),
		Emoji:     s.Emoji(name),
	}, nil
}

// NewID returns 8 random base36 characters followed by the last 4 base36
// characters of the current unix milliseconds. Uniqueness is not checked.
func NewID() (string, error) {
	return newID(time.Now())
}

func newID(now time.Time) (string, error) {
	var b strings.Builder
	b.Grow(randomIDLen + clockIDLen)

	radix := big.NewInt(int64(len(base36)))
	for i := 0; i < randomIDLen; i++ {
		n, err := rand.Int(rand.Reader, radix)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		b.WriteByte(base36[n.Int64()])
	}

	clock := strconv.FormatInt(now.UnixMilli(), 36)
	if len(clock) > clockIDLen {
		clock = clock[len(clock)-clockIDLen:]
	}
	b.WriteString(clock)
	return b.String(), nil
}

// Exporter publishes and resolves snapshots.
type Exporter struct {
	repo   Repository
	prefix string
	newID  func() (string, error)
}

// NewExporter builds an exporter; an empty prefix selects DefaultPathPrefix.
func NewExporter(repo Repository, prefix string) *Exporter {
	if prefix == "" {
		prefix = DefaultPathPrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Exporter{repo: repo, prefix: prefix, newID: NewID}
}

// Export snapshots category name of s and stores it. s is only read.
func (e *Exporter) Export(ctx context.Context, s domain.State, name string) (Link, error) {
	snap, err := Take(s, name)
	if err != nil {
		return Link{}, err
	}

	id, err := e.newID()
	if err != nil {
		return Link{}, fmt.Errorf("share %q: %w", name, err)
	}
	if err := e.repo.SaveSnapshot(ctx, id, snap); err != nil {
		return Link{}, fmt.Errorf("share %q: %w", name, err)
	}
	return Link{ID: id, Path: e.prefix + id}, nil
}

// Resolve loads a snapshot for the viewer.
func (e *Exporter) Resolve(ctx context.Context, id string) (*Snapshot, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	return e.repo.GetSnapshot(ctx, id)
}

// Viewed bumps and returns the view counter of id.
func (e *Exporter) Viewed(ctx context.Context, id string) (int64, error) {
	return e.repo.IncrementViews(ctx, id)
}
