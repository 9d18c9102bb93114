// Package syncer maintains the four client collections (plan, progress,
// history, body metrics), each backed by the local cache and the remote
// store. The remote store is authoritative when reachable; the cache is
// the fallback when not.
//
// Consistency is eventual, not strong: every mutation commits locally
// first, then attempts a best-effort remote write, and concurrent edits
// from other devices are resolved by "last full refetch wins". There is
// exactly one mutator per collection (the local session), so the Store is
// not safe for concurrent use and takes no locks.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/repquest/repquest/internal/cache"
	"github.com/repquest/repquest/internal/models"
)

// ErrRemote marks a failure of the remote leg of a two-phase write. The
// local state is already committed when it is returned; callers treat it
// as a recoverable notice, never a rollback.
var ErrRemote = errors.New("remote store")

// Remote is the remote-store surface the syncer depends on. *remote.Client
// satisfies it; tests substitute failing or recording stubs.
type Remote interface {
	FetchPlan(ctx context.Context) (models.Plan, error)
	PutPlan(ctx context.Context, plan models.Plan) error
	FetchSessions(ctx context.Context) ([]models.Session, error)
	InsertSession(ctx context.Context, s models.Session) (models.Session, error)
	UpdateSession(ctx context.Context, s models.Session) error
	DeleteSession(ctx context.Context, id uuid.UUID) error
	FetchMetrics(ctx context.Context) ([]models.BodyMetric, error)
	PutMetric(ctx context.Context, m models.BodyMetric) error
	DeleteMetric(ctx context.Context, date string) error
}

// Store is the client-side state holder.
type Store struct {
	cache  *cache.Cache
	remote Remote // nil when running fully offline
	log    *slog.Logger
	now    func() time.Time

	plan     models.Plan
	progress models.ProgressMap
	history  []models.Session
	metrics  []models.BodyMetric
	quests   []models.Quest
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the wall clock, used by quest-rollover tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store. remote may be nil for offline-only operation.
func New(c *cache.Cache, remote Remote, log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		cache:    c,
		remote:   remote,
		log:      log,
		now:      time.Now,
		plan:     models.Plan{},
		progress: models.ProgressMap{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load populates all collections from the local cache, then opportunistically
// refreshes from the remote store. A remote failure here only gets logged:
// the cache carries the session.
func (s *Store) Load(ctx context.Context) error {
	if _, err := s.cache.Get(cache.KeyPlan, &s.plan); err != nil {
		return fmt.Errorf("loading plan: %w", err)
	}
	if _, err := s.cache.Get(cache.KeyProgress, &s.progress); err != nil {
		return fmt.Errorf("loading progress: %w", err)
	}
	if _, err := s.cache.Get(cache.KeyHistory, &s.history); err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	if _, err := s.cache.Get(cache.KeyBodyMetrics, &s.metrics); err != nil {
		return fmt.Errorf("loading body metrics: %w", err)
	}
	if s.plan == nil {
		s.plan = models.Plan{}
	}
	if s.progress == nil {
		s.progress = models.ProgressMap{}
	}
	s.loadQuests()

	if err := s.Refresh(ctx); err != nil {
		s.log.Warn("remote refresh failed, using cached state", "error", err)
	}
	return nil
}

// Refresh replaces the in-memory and cached collections with server data.
// Each collection refreshes independently; a failure leaves that
// collection's cached state untouched.
func (s *Store) Refresh(ctx context.Context) error {
	if s.remote == nil {
		return nil
	}

	var errs []error

	if plan, err := s.remote.FetchPlan(ctx); err != nil {
		errs = append(errs, fmt.Errorf("plan: %w", err))
	} else if plan != nil {
		s.plan = plan
		s.persist(cache.KeyPlan, s.plan)
	}

	if history, err := s.remote.FetchSessions(ctx); err != nil {
		errs = append(errs, fmt.Errorf("sessions: %w", err))
	} else {
		s.history = history
		s.persist(cache.KeyHistory, s.history)
	}

	if metrics, err := s.remote.FetchMetrics(ctx); err != nil {
		errs = append(errs, fmt.Errorf("metrics: %w", err))
	} else {
		s.metrics = metrics
		s.persist(cache.KeyBodyMetrics, s.metrics)
	}

	return errors.Join(errs...)
}

// persist writes a snapshot to the cache. Cache writes always reflect the
// latest in-memory state; a failing local disk is logged, not propagated,
// since in-memory state is already committed.
func (s *Store) persist(key string, v any) {
	if err := s.cache.Put(key, v); err != nil {
		s.log.Error("cache write failed", "key", key, "error", err)
	}
}

// remoteErr wraps a remote write failure in ErrRemote.
func remoteErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrRemote, op, err)
}

// today returns the current calendar date key.
func (s *Store) today() string {
	return s.now().Format("2006-01-02")
}

// Plan returns the current workout plan.
func (s *Store) Plan() models.Plan { return s.plan }

// History returns finalized sessions, most recent first.
func (s *Store) History() []models.Session { return s.history }

// Metrics returns body metrics, most recent first.
func (s *Store) Metrics() []models.BodyMetric { return s.metrics }

// Progress returns the in-flight progress map.
func (s *Store) Progress() models.ProgressMap { return s.progress }

// SavePlan commits a new plan locally and mirrors it to the remote store.
func (s *Store) SavePlan(ctx context.Context, plan models.Plan) error {
	s.plan = plan
	s.persist(cache.KeyPlan, s.plan)

	if s.remote == nil {
		return nil
	}
	if err := s.remote.PutPlan(ctx, plan); err != nil {
		return remoteErr("put plan", err)
	}
	return nil
}
