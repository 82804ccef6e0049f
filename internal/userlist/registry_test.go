package userlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/matrimony-admin/internal/model"
	"github.com/iliyamo/matrimony-admin/internal/session"
)

func newTestRegistry(clock *time.Time) (*Registry, *int) {
	built := 0
	r := NewRegistry(func(s session.Session) *Engine {
		built++
		e := New(&fakeDirectory{users: sample()}, WithAuditor(nil, s.User))
		e.now = func() time.Time { return *clock }
		e.lastTouched = *clock
		return e
	}, nil)
	r.now = func() time.Time { return *clock }
	return r, &built
}

func TestRegistryGetReusesEngine(t *testing.T) {
	clock := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	r, built := newTestRegistry(&clock)
	s := session.Session{Token: "t", User: model.User{ID: "a1"}}

	a := r.Get("sid-1", s)
	b := r.Get("sid-1", s)
	c := r.Get("sid-2", s)
	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, *built)
	assert.Equal(t, 2, r.Len())

	r.Drop("sid-1")
	assert.Equal(t, 1, r.Len())
	assert.NotSame(t, a, r.Get("sid-1", s))
}

func TestRegistrySweepDropsIdleEngines(t *testing.T) {
	clock := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	r, _ := newTestRegistry(&clock)
	s := session.Session{Token: "t"}

	r.Get("old", s)
	clock = clock.Add(20 * time.Minute)
	r.Get("fresh", s)
	clock = clock.Add(15 * time.Minute)

	assert.Equal(t, 1, r.Sweep(30*time.Minute))
	assert.Equal(t, 1, r.Len())
	assert.Zero(t, r.Sweep(30*time.Minute))
}

func TestRegistrySweepKeepsBusyEngine(t *testing.T) {
	clock := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	r, _ := newTestRegistry(&clock)
	e := r.Get("busy", session.Session{Token: "t"})

	e.mu.Lock()
	e.updatingID = "1"
	e.mu.Unlock()

	clock = clock.Add(time.Hour)
	assert.Zero(t, r.Sweep(time.Minute))
	assert.Equal(t, 1, r.Len())
}

func TestRegistryRunStopsWithContext(t *testing.T) {
	r := NewRegistry(func(session.Session) *Engine { return New(&fakeDirectory{}) }, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond, time.Minute)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "Run did not return")
	}
}
