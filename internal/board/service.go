// Package board keeps live sessions in memory in front of durable storage.
package board

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/linkboard/internal/domain"
	"github.com/MrSnakeDoc/linkboard/internal/index"
	"github.com/MrSnakeDoc/linkboard/internal/logger"
	"github.com/MrSnakeDoc/linkboard/internal/session"
)

// ErrNoMatch is returned by Resolve when no bookmark fits the query.
var ErrNoMatch = errors.New("no bookmark matches")

// Repository persists boards.
type Repository interface {
	SaveBoard(ctx context.Context, id string, state domain.State, version uint64) error
	SaveBoardsMany(ctx context.Context, boards []domain.Board) error
	// GetBoard wraps domain.ErrBoardNotFound for unknown IDs.
	GetBoard(ctx context.Context, id string) (domain.State, uint64, error)
	DeleteBoard(ctx context.Context, id string) error
}

// ResolutionCache remembers open-query results per board.
type ResolutionCache interface {
	GetCachedResolution(ctx context.Context, boardID, query string) (string, error)
	CacheResolution(ctx context.Context, boardID, query, url string) error
	InvalidateBoardCache(ctx context.Context, boardID string) error
}

// Options wires a Service.
type Options struct {
	Repo    Repository
	Cache   ResolutionCache // optional
	Index   *index.SessionIndex
	Seed    func() domain.State // starter content of new boards, optional
	Session session.Options
	Logger  logger.Logger
}

// Service creates, loads and saves boards.
//
// Mutations, saves, evictions and deletes of one board hold its lock, so a
// change is never applied to an unloaded session and saves reach storage in
// version order.
type Service struct {
	repo    Repository
	cache   ResolutionCache
	index   *index.SessionIndex
	locks   *boardLocks
	seed    func() domain.State
	session session.Options
	log     logger.Logger
	newID   func() string
}

func NewService(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	idx := opts.Index
	if idx == nil {
		idx = index.NewSessionIndex()
	}
	seed := opts.Seed
	if seed == nil {
		seed = domain.NewState
	}
	return &Service{
		repo:    opts.Repo,
		cache:   opts.Cache,
		index:   idx,
		locks:   newBoardLocks(),
		seed:    seed,
		session: opts.Session,
		log:     log,
		newID:   uuid.NewString,
	}
}

// Index exposes the live sessions.
func (s *Service) Index() *index.SessionIndex { return s.index }

func (s *Service) newSession(id string, state domain.State, version uint64) *session.Session {
	opts := s.session
	opts.Version = version
	opts.Logger = s.log
	return session.New(id, state, opts)
}

// Create starts a board from the current seed and stores it.
func (s *Service) Create(ctx context.Context) (*session.Session, error) {
	id := s.newID()
	sess := s.newSession(id, s.seed(), 0)
	state, version := sess.Snapshot()

	if err := s.repo.SaveBoard(ctx, id, state, version); err != nil {
		sess.Close()
		return nil, fmt.Errorf("create board: %w", err)
	}
	s.index.Put(sess, version)

	s.log.Info("board created",
		logger.String("board", id),
		logger.Int("categories", state.CategoryCount()))
	return sess, nil
}

// Open returns the live session of id, loading it from storage on a miss.
func (s *Service) Open(ctx context.Context, id string) (*session.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%q: %w", id, domain.ErrBoardNotFound)
	}
	if sess, ok := s.index.Get(id); ok {
		return sess, nil
	}

	state, version, err := s.repo.GetBoard(ctx, id)
	if err != nil {
		return nil, err
	}

	sess, added := s.index.PutIfAbsent(s.newSession(id, state, version), version)
	if added {
		s.log.Debug("board loaded", logger.String("board", id))
	}
	return sess, nil
}

// Do runs fn on the session of id and saves the board if fn changed it.
// fn's error is returned as is; a save failure is logged and returned
// only when fn succeeded.
func (s *Service) Do(ctx context.Context, id string, fn func(*session.Session) error) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%q: %w", id, domain.ErrBoardNotFound)
	}
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.Open(ctx, id)
	if err != nil {
		return err
	}

	fnErr := fn(sess)
	if err := s.persist(ctx, id); err != nil {
		s.log.Error("board save failed", logger.String("board", id), logger.Error(err))
		if fnErr == nil {
			return err
		}
	}
	return fnErr
}

// Persist writes the session of id if it changed since the last save.
func (s *Service) Persist(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()
	return s.persist(ctx, id)
}

// persist requires the lock of id.
func (s *Service) persist(ctx context.Context, id string) error {
	sess, ok := s.index.Peek(id)
	if !ok || !s.index.Dirty(id) {
		return nil
	}

	state, version := sess.Snapshot()
	if err := s.repo.SaveBoard(ctx, id, state, version); err != nil {
		return fmt.Errorf("save board %s: %w", id, err)
	}
	s.index.MarkSaved(id, version)
	s.invalidate(ctx, id)
	return nil
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateBoardCache(ctx, id); err != nil {
		s.log.Warn("cache invalidation failed", logger.String("board", id), logger.Error(err))
	}
}

// PersistAll saves every changed session in one batch and returns how many
// were written.
func (s *Service) PersistAll(ctx context.Context) (int, error) {
	ids := s.index.IDs()
	// fixed order so concurrent batches cannot deadlock
	sort.Strings(ids)

	var (
		batch   []domain.Board
		unlocks []func()
	)
	defer func() {
		for _, unlock := range unlocks {
			unlock()
		}
	}()

	for _, id := range ids {
		if !s.index.Dirty(id) {
			continue
		}
		unlocks = append(unlocks, s.locks.lock(id))

		sess, ok := s.index.Peek(id)
		if !ok || !s.index.Dirty(id) {
			continue
		}
		state, version := sess.Snapshot()
		batch = append(batch, domain.Board{ID: id, State: state, Version: version})
	}
	if len(batch) == 0 {
		return 0, nil
	}

	if err := s.repo.SaveBoardsMany(ctx, batch); err != nil {
		return 0, fmt.Errorf("save %d boards: %w", len(batch), err)
	}
	for _, b := range batch {
		s.index.MarkSaved(b.ID, b.Version)
		s.invalidate(ctx, b.ID)
	}
	return len(batch), nil
}

// Evict saves and unloads a session. The board stays in storage.
func (s *Service) Evict(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	if err := s.persist(ctx, id); err != nil {
		return err
	}
	s.index.Remove(id)
	return nil
}

// EvictIdle unloads every session untouched since cutoff.
func (s *Service) EvictIdle(ctx context.Context, cutoff time.Time) (int, error) {
	var (
		evicted int
		errs    []error
	)
	for _, id := range s.index.IdleSince(cutoff) {
		if err := s.Evict(ctx, id); err != nil {
			errs = append(errs, err)
			continue
		}
		evicted++
	}
	return evicted, errors.Join(errs...)
}

// Delete drops a board everywhere.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%q: %w", id, domain.ErrBoardNotFound)
	}
	unlock := s.locks.lock(id)
	defer unlock()

	s.index.Remove(id)
	if err := s.repo.DeleteBoard(ctx, id); err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	s.log.Info("board deleted", logger.String("board", id))
	return nil
}

// Reset replaces the content of a board with the current seed.
func (s *Service) Reset(ctx context.Context, id string) error {
	return s.Do(ctx, id, func(sess *session.Session) error {
		return sess.Replace(s.seed())
	})
}

// Resolve finds the URL an open query leads to on board id.
func (s *Service) Resolve(ctx context.Context, id, query string) (string, error) {
	sess, err := s.Open(ctx, id)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		url, err := s.cache.GetCachedResolution(ctx, id, query)
		if err != nil {
			s.log.Warn("cache lookup failed", logger.String("board", id), logger.Error(err))
		} else if url != "" {
			return url, nil
		}
	}

	hit, ok := sess.Best(query)
	if !ok {
		return "", fmt.Errorf("%q: %w", query, ErrNoMatch)
	}

	if s.cache != nil {
		if err := s.cache.CacheResolution(ctx, id, query, hit.Bookmark.SiteURL); err != nil {
			s.log.Warn("cache write failed", logger.String("board", id), logger.Error(err))
		}
	}
	return hit.Bookmark.SiteURL, nil
}
