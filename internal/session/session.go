// Package session keeps in-memory wizard sessions for the HTTP API. Each
// session owns one wizard controller; access to it is serialised by the
// session lock.
package session

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ayflow350/lexend-jobs/pkg/flow"
)

var (
	// ErrNotFound is returned for unknown or expired session ids.
	ErrNotFound = errors.New("session: not found")
	// ErrClosed is returned by Create after Close.
	ErrClosed = errors.New("session: registry closed")
)

// Factory builds the wizard for a new session.
type Factory func(kind flow.Kind) (flow.Wizard, error)

// FlowFactory builds wizards with flow.New and the given options.
func FlowFactory(opts ...flow.Option) Factory {
	return func(kind flow.Kind) (flow.Wizard, error) {
		return flow.New(kind, opts...)
	}
}

// Session is one in-progress wizard.
type Session struct {
	ID        string
	Kind      flow.Kind
	CreatedAt time.Time

	mu      sync.Mutex
	wizard  flow.Wizard
	touched atomic.Int64
}

// TouchedAt returns the last time the session was used.
func (s *Session) TouchedAt() time.Time {
	return time.Unix(0, s.touched.Load())
}

func (s *Session) touch(now time.Time) {
	s.touched.Store(now.UnixNano())
}

// Registry maps session ids to sessions and expires idle ones.
type Registry struct {
	factory Factory
	ttl     time.Duration
	sweep   time.Duration
	now     func() time.Time
	logger  *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	closed   bool

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Option configures a Registry.
type Option func(*Registry)

// WithTTL sets how long an untouched session survives. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		if r == nil || ttl < 0 {
			return
		}
		r.ttl = ttl
	}
}

// WithSweepInterval sets how often the reaper looks for expired sessions.
func WithSweepInterval(interval time.Duration) Option {
	return func(r *Registry) {
		if r == nil || interval <= 0 {
			return
		}
		r.sweep = interval
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if r == nil || now == nil {
			return
		}
		r.now = now
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if r == nil || logger == nil {
			return
		}
		r.logger = logger
	}
}

const (
	defaultTTL   = 30 * time.Minute
	defaultSweep = time.Minute
)

// NewRegistry creates a registry and starts its reaper when expiry is on.
// Callers must Close it.
func NewRegistry(factory Factory, opts ...Option) *Registry {
	r := &Registry{
		factory:  factory,
		ttl:      defaultTTL,
		sweep:    defaultSweep,
		now:      time.Now,
		logger:   zap.NewNop(),
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.factory == nil {
		r.factory = FlowFactory()
	}

	if r.ttl > 0 {
		go r.reap()
	} else {
		close(r.done)
	}
	return r
}

// Create starts a new session for kind.
func (r *Registry) Create(kind flow.Kind) (*Session, error) {
	wizard, err := r.factory(kind)
	if err != nil {
		return nil, err
	}

	now := r.now()
	s := &Session{
		ID:        uuid.NewString(),
		Kind:      kind,
		CreatedAt: now,
		wizard:    wizard,
	}
	s.touch(now)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	r.sessions[s.ID] = s
	r.logger.Debug("session created", zap.String("session", s.ID), zap.String("kind", string(kind)))
	return s, nil
}

// Get returns a live session.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok || r.expired(s, r.now()) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Delete discards a session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(r.sessions, id)
	r.logger.Debug("session deleted", zap.String("session", id))
	return nil
}

// With runs fn with exclusive access to the session's wizard and marks the
// session as used.
func (r *Registry) With(id string, fn func(*Session, flow.Wizard) error) error {
	s, err := r.Get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(r.now())
	if fn == nil {
		return nil
	}
	return fn(s, s.wizard)
}

// Len reports the number of tracked sessions, expired ones included until
// the next sweep.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops expired sessions and returns how many were removed.
func (r *Registry) Sweep() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, s := range r.sessions {
		if r.expired(s, now) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Debug("expired sessions removed", zap.Int("count", removed), zap.Int("remaining", len(r.sessions)))
	}
	return removed
}

// Close stops the reaper and drops every session.
func (r *Registry) Close() error {
	r.closeOnce.Do(func() {
		close(r.stop)
		<-r.done
		r.mu.Lock()
		r.closed = true
		r.sessions = make(map[string]*Session)
		r.mu.Unlock()
	})
	return nil
}

func (r *Registry) expired(s *Session, now time.Time) bool {
	return r.ttl > 0 && now.Sub(s.TouchedAt()) > r.ttl
}

func (r *Registry) reap() {
	defer close(r.done)
	ticker := time.NewTicker(r.sweep)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
