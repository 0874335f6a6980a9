package session_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/Ayflow350/lexend-jobs/internal/session"
	"github.com/Ayflow350/lexend-jobs/pkg/flow"
)

type fakeClock struct {
	now atomic.Int64
}

func newFakeClock() *fakeClock {
	c := &fakeClock{}
	c.now.Store(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).UnixNano())
	return c
}

func (c *fakeClock) Now() time.Time { return time.Unix(0, c.now.Load()).UTC() }

func (c *fakeClock) Advance(d time.Duration) { c.now.Add(int64(d)) }

func TestRegistry_CreateGetWithDelete(t *testing.T) {
	defer goleak.VerifyNone(t)

	reg := session.NewRegistry(nil)
	defer reg.Close()

	s, err := reg.Create(flow.KindCompany)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.ID == "" || s.Kind != flow.KindCompany {
		t.Fatalf("unexpected session %#v", s)
	}

	got, err := reg.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("get: %v", err)
	}

	err = reg.With(s.ID, func(_ *session.Session, w flow.Wizard) error {
		return w.SetField("jobTitle", "Build a landing page")
	})
	if err != nil {
		t.Fatalf("with: %v", err)
	}
	err = reg.With(s.ID, func(_ *session.Session, w flow.Wizard) error {
		if v, _ := w.Field("jobTitle"); v != "Build a landing page" {
			t.Errorf("unexpected title %v", v)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("with: %v", err)
	}

	if err := reg.Delete(s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := reg.Get(s.ID); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := reg.Delete(s.ID); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestRegistry_UnknownKind(t *testing.T) {
	defer goleak.VerifyNone(t)

	reg := session.NewRegistry(nil, session.WithTTL(0))
	defer reg.Close()

	if _, err := reg.Create(flow.Kind("agency")); !errors.Is(err, flow.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestRegistry_ExpiresIdleSessions(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := newFakeClock()
	reg := session.NewRegistry(nil,
		session.WithTTL(10*time.Minute),
		session.WithSweepInterval(time.Hour),
		session.WithClock(clock.Now),
	)
	defer reg.Close()

	idle, _ := reg.Create(flow.KindFreelancer)
	busy, _ := reg.Create(flow.KindCompany)

	clock.Advance(6 * time.Minute)
	if err := reg.With(busy.ID, nil); err != nil {
		t.Fatalf("with: %v", err)
	}
	clock.Advance(6 * time.Minute)

	if _, err := reg.Get(idle.ID); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected idle session to be expired, got %v", err)
	}
	if _, err := reg.Get(busy.ID); err != nil {
		t.Fatalf("expected touched session to survive, got %v", err)
	}
	if removed := reg.Sweep(); removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 remaining session, got %d", reg.Len())
	}
}

func TestRegistry_ReaperRunsInBackground(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := newFakeClock()
	reg := session.NewRegistry(nil,
		session.WithTTL(time.Minute),
		session.WithSweepInterval(5*time.Millisecond),
		session.WithClock(clock.Now),
	)
	defer reg.Close()

	if _, err := reg.Create(flow.KindCompany); err != nil {
		t.Fatalf("create: %v", err)
	}
	clock.Advance(2 * time.Minute)

	deadline := time.Now().Add(2 * time.Second)
	for reg.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("reaper did not remove the expired session")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRegistry_WithSerialisesAccess(t *testing.T) {
	defer goleak.VerifyNone(t)

	reg := session.NewRegistry(nil)
	defer reg.Close()
	s, _ := reg.Create(flow.KindCompany)

	var (
		wg     sync.WaitGroup
		inside atomic.Int32
		peak   atomic.Int32
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = reg.With(s.ID, func(*session.Session, flow.Wizard) error {
				n := inside.Add(1)
				if n > peak.Load() {
					peak.Store(n)
				}
				time.Sleep(time.Millisecond)
				inside.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()
	if peak.Load() != 1 {
		t.Fatalf("expected serialised access, saw %d concurrent callers", peak.Load())
	}
}

func TestRegistry_CloseRejectsCreate(t *testing.T) {
	defer goleak.VerifyNone(t)

	reg := session.NewRegistry(nil)
	if err := reg.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := reg.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, err := reg.Create(flow.KindCompany); !errors.Is(err, session.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
