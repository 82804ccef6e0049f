package userlist

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/matrimony-admin/internal/session"
)

// Factory builds the engine for a freshly seen session.
type Factory func(s session.Session) *Engine

// Registry owns one Engine per admin session. Engines are created on first
// use, dropped on logout and swept after a period of inactivity.
type Registry struct {
	factory Factory
	log     *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	engines map[string]*Engine
}

// NewRegistry returns an empty registry.
func NewRegistry(factory Factory, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{factory: factory, log: log, now: time.Now, engines: map[string]*Engine{}}
}

// Get returns the engine for sessionID, creating it from s if needed.
func (r *Registry) Get(sessionID string, s session.Session) *Engine {
	r.mu.Lock()
	e, ok := r.engines[sessionID]
	if !ok {
		e = r.factory(s)
		r.engines[sessionID] = e
	}
	r.mu.Unlock()
	e.touch()
	return e
}

// Drop forgets the engine of sessionID.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.engines, sessionID)
}

// Len returns the number of live engines.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.engines)
}

// Sweep drops engines untouched for longer than idle and returns how many
// were removed. An engine with a mutation in flight is kept.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.engines {
		if e.idleSince().Before(cutoff) && e.UpdatingID() == "" {
			delete(r.engines, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, every, idle time.Duration) {
	if every <= 0 || idle <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(idle); n > 0 {
				r.log.Debug("swept idle user lists", zap.Int("count", n))
			}
		}
	}
}
