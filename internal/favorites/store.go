// Package favorites keeps the active user's favorite movie IDs in memory and
// mirrors them to durable per-user storage.
//
// The store follows the session provider: when a user becomes active it loads
// that user's saved set (read-through), every toggle is applied in memory first
// and then written out in the background (write-through), and signing out
// drops the in-memory copy. Storage failures are logged and never returned to
// callers; a failed load behaves like an empty set and a failed write leaves
// memory ahead of storage until the next successful write.
package favorites

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/giannis84/movie-hub/internal/database"
	"github.com/giannis84/movie-hub/internal/logging"
	"github.com/giannis84/movie-hub/internal/metrics"
	"github.com/giannis84/movie-hub/internal/models"
	"github.com/giannis84/movie-hub/internal/session"
)

// State is the store's position in its session-driven lifecycle.
type State int

const (
	// Idle means no user is active.
	Idle State = iota
	// Loading means a user is active and their saved set is being read.
	Loading
	// Ready means the set is in memory and can be changed.
	Ready
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// FavoriteSet is a point-in-time view of the store.
type FavoriteSet struct {
	UserID   string   `json:"user_id,omitempty"`
	MovieIDs []string `json:"movie_ids"`
	State    string   `json:"state"`
}

// DefaultStorageTimeout bounds each background load and write.
const DefaultStorageTimeout = 10 * time.Second

// SessionSource delivers the active user ID, "" meaning nobody. It is
// satisfied by *session.Provider.
type SessionSource interface {
	Subscribe(fn session.Listener) (unsubscribe func())
}

// Config holds the store's collaborators.
type Config struct {
	Storage   database.KeyValueStore
	Sessions  SessionSource
	KeyPrefix string           // defaults to DefaultKeyPrefix
	Logger    *slog.Logger     // defaults to slog.Default()
	Metrics   *metrics.Metrics // optional

	// StorageTimeout bounds background loads and writes. Defaults to
	// DefaultStorageTimeout.
	StorageTimeout time.Duration
}

// Store owns the favorite set of the active user.
type Store struct {
	storage database.KeyValueStore
	prefix  string
	logger  *slog.Logger
	metrics *metrics.Metrics
	timeout time.Duration

	mu     sync.RWMutex
	userID string
	state  State
	ids    []string
	index  map[string]struct{}
	// generation changes on every session transition so that a load or clear
	// finishing late can tell it belongs to a user who is no longer active.
	generation uint64
	closed     bool

	// inflight tracks loads and writes; writes tracks writes only, so a clear
	// can let earlier toggles land before it deletes.
	inflight    sync.WaitGroup
	writes      sync.WaitGroup
	closeOnce   sync.Once
	unsubscribe func()
}

// NewStore creates a store and subscribes it to cfg.Sessions for its whole
// lifetime. If a user is already active, loading starts immediately.
func NewStore(cfg Config) *Store {
	s := &Store{
		storage: cfg.Storage,
		prefix:  cfg.KeyPrefix,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		timeout: cfg.StorageTimeout,
		index:   make(map[string]struct{}),
	}
	if s.timeout <= 0 {
		s.timeout = DefaultStorageTimeout
	}
	if s.prefix == "" {
		s.prefix = DefaultKeyPrefix
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.unsubscribe = cfg.Sessions.Subscribe(s.onSessionChange)
	return s
}

// CurrentFavorites returns the active user's favorite IDs in insertion order.
// It is empty when nobody is signed in or the initial load has not finished.
func (s *Store) CurrentFavorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != Ready {
		return []string{}
	}
	return append([]string{}, s.ids...)
}

// IsFavorite reports whether movieID is in the in-memory set.
func (s *Store) IsFavorite(movieID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != Ready {
		return false
	}
	_, ok := s.index[movieID]
	return ok
}

// IsLoading is true from user activation until the initial read completes.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == Loading
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// UserID returns the user the store is currently serving, or "".
func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Snapshot returns user, state and favorites read under one lock.
func (s *Store) Snapshot() FavoriteSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := FavoriteSet{UserID: s.userID, MovieIDs: []string{}, State: s.state.String()}
	if s.state == Ready {
		set.MovieIDs = append(set.MovieIDs, s.ids...)
	}
	return set
}

// ToggleFavorite adds movie.ID to the set if absent and removes it otherwise.
// The new set is visible to readers immediately; the durable write runs in the
// background and its outcome is only logged. Without an active user, or before
// the user's saved set has loaded, the call does nothing.
func (s *Store) ToggleFavorite(movie models.Movie) {
	s.mu.Lock()
	if state := s.state; state != Ready {
		s.mu.Unlock()
		logging.With(s.logger).Layer("favorites").Op("ToggleFavorite").Movie(movie.ID).
			Str("state", state.String()).Debug("toggle ignored")
		return
	}

	result := "added"
	if _, ok := s.index[movie.ID]; ok {
		delete(s.index, movie.ID)
		s.ids = removeID(s.ids, movie.ID)
		result = "removed"
	} else {
		s.index[movie.ID] = struct{}{}
		s.ids = append(s.ids, movie.ID)
	}
	userID := s.userID
	snapshot := append([]string{}, s.ids...)
	s.inflight.Add(1)
	s.writes.Add(1)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.Toggles.WithLabelValues(result).Inc()
	}
	logging.With(s.logger).Layer("favorites").Op("ToggleFavorite").User(userID).Movie(movie.ID).
		Str("result", result).Int("count", len(snapshot)).Debug("favorite toggled")

	go s.persist(userID, snapshot)
}

// ClearFavorites deletes the active user's durable entry and then empties the
// in-memory set. Writes started by earlier toggles finish before the delete is
// issued. If the delete fails, or ctx ends first, the failure is logged and
// memory is left unchanged. Without an active user the call does nothing.
func (s *Store) ClearFavorites(ctx context.Context) {
	s.mu.RLock()
	userID, generation := s.userID, s.generation
	s.mu.RUnlock()

	if userID == "" {
		return
	}

	key := StorageKey(s.prefix, userID)
	if err := waitGroup(ctx, &s.writes); err != nil {
		s.countError(metrics.OpClear)
		logging.With(s.logger).Layer("favorites").Op("ClearFavorites").User(userID).Key(key).Err(err).
			Error("pending writes did not finish, favorites not cleared")
		return
	}

	s.countOp(metrics.OpClear)
	if err := s.storage.Delete(ctx, key); err != nil {
		s.countError(metrics.OpClear)
		logging.With(s.logger).Layer("favorites").Op("ClearFavorites").User(userID).Key(key).Err(err).
			Error("failed to clear favorites")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return
	}
	// Storage is now empty, so any load still in flight is out of date.
	s.generation++
	s.ids = nil
	s.index = make(map[string]struct{})
	s.state = Ready

	logging.With(s.logger).Layer("favorites").Op("ClearFavorites").User(userID).Key(key).
		Info("favorites cleared")
}

// Wait blocks until every background load and write issued so far has finished.
func (s *Store) Wait() {
	s.inflight.Wait()
}

// Close stops following the session provider and waits for background work
// until ctx ends. Session changes delivered after Close are ignored.
func (s *Store) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
	})
	return waitGroup(ctx, &s.inflight)
}

func (s *Store) onSessionChange(userID string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if userID == s.userID && (userID == "" || s.state != Idle) {
		s.mu.Unlock()
		return
	}

	previous := s.userID
	s.generation++
	s.userID = userID
	s.ids = nil
	s.index = make(map[string]struct{})

	if userID == "" {
		s.state = Idle
		s.mu.Unlock()
		s.countTransition("signed_out")
		logging.With(s.logger).Layer("favorites").Op("SessionChange").User(previous).
			Info("user signed out, favorites dropped from memory")
		return
	}

	s.state = Loading
	generation := s.generation
	s.inflight.Add(1)
	s.mu.Unlock()

	transition := "signed_in"
	if previous != "" {
		transition = "switched"
	}
	s.countTransition(transition)
	logging.With(s.logger).Layer("favorites").Op("SessionChange").User(userID).
		Str("previous_user_id", previous).Info("user activated, loading favorites")

	go s.load(generation, userID)
}

func (s *Store) load(generation uint64, userID string) {
	defer s.inflight.Done()

	key := StorageKey(s.prefix, userID)
	ctx, cancel := context.WithTimeout(logging.NewContextWithLogger(context.Background(), s.logger), s.timeout)
	defer cancel()
	ids := []string{}

	s.countOp(metrics.OpLoad)
	data, found, err := s.storage.Read(ctx, key)
	switch {
	case err != nil:
		s.countError(metrics.OpLoad)
		logging.Log(ctx).Layer("favorites").Op("LoadFavorites").User(userID).Key(key).Err(err).
			Error("failed to load favorites, starting empty")
	case found:
		decoded, err := decodeIDs(data)
		if err != nil {
			s.countError(metrics.OpLoad)
			logging.Log(ctx).Layer("favorites").Op("LoadFavorites").User(userID).Key(key).Err(err).
				Warn("stored favorites are malformed, starting empty")
		} else {
			ids = decoded
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		logging.Log(ctx).Layer("favorites").Op("LoadFavorites").User(userID).
			Debug("discarding load for inactive user")
		return
	}
	s.ids = ids
	for _, id := range ids {
		s.index[id] = struct{}{}
	}
	s.state = Ready

	logging.Log(ctx).Layer("favorites").Op("LoadFavorites").User(userID).
		Int("count", len(ids)).Info("favorites loaded")
}

func (s *Store) persist(userID string, ids []string) {
	defer s.inflight.Done()
	defer s.writes.Done()

	key := StorageKey(s.prefix, userID)
	ctx, cancel := context.WithTimeout(logging.NewContextWithLogger(context.Background(), s.logger), s.timeout)
	defer cancel()

	data, err := encodeIDs(ids)
	if err == nil {
		s.countOp(metrics.OpWrite)
		err = s.storage.Write(ctx, key, data)
	}
	if err != nil {
		s.countError(metrics.OpWrite)
		logging.Log(ctx).Layer("favorites").Op("SaveFavorites").User(userID).Key(key).Err(err).
			Error("failed to save favorites")
		return
	}
	logging.Log(ctx).Layer("favorites").Op("SaveFavorites").User(userID).Key(key).
		Int("count", len(ids)).Debug("favorites saved")
}

func (s *Store) countOp(op string) {
	if s.metrics != nil {
		s.metrics.StorageOps.WithLabelValues(op).Inc()
	}
}

func (s *Store) countError(op string) {
	if s.metrics != nil {
		s.metrics.StorageErrors.WithLabelValues(op).Inc()
	}
}

func (s *Store) countTransition(transition string) {
	if s.metrics != nil {
		s.metrics.Sessions.WithLabelValues(transition).Inc()
	}
}

// waitGroup waits for wg or returns ctx.Err() if ctx ends first.
func waitGroup(ctx context.Context, wg *sync.WaitGroup) error {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
