// Package userlist is the state behind the users screen: the last fetched
// collection, the filtered view derived from it, the single in-flight
// mutation lock and the partner selection flow for the married status.
package userlist

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/matrimony-admin/internal/model"
	"github.com/iliyamo/matrimony-admin/internal/queue"
)

var (
	// ErrUpdateInProgress is returned when a mutation is attempted while
	// another one has not settled yet.
	ErrUpdateInProgress = errors.New("another update is still in progress")
	// ErrNoPartnerChosen is the validation failure of confirming a
	// marriage without a selected partner. No request is sent.
	ErrNoPartnerChosen = errors.New("no partner selected")
	// ErrPartnerFlowClosed is returned by partner operations when the
	// selection flow is not open.
	ErrPartnerFlowClosed = errors.New("partner selection is not open")
	// ErrUnknownUser is returned when an id is not in the fetched collection.
	ErrUnknownUser = errors.New("user is not in the current list")
	// ErrDeleteUnsupported is returned by Delete, which has no endpoint.
	ErrDeleteUnsupported = errors.New("deleting users is not supported")
)

// Directory is the remote side the engine reads from and writes to.
type Directory interface {
	Users(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, id string, role model.Role) error
	UpdateStatus(ctx context.Context, id string, status model.Status, marriedWith string) error
}

// Auditor receives an event for every mutation the remote API accepted.
type Auditor interface {
	Publish(ctx context.Context, ev queue.AdminActionEvent) error
}

// Row is one rendered table row.
type Row struct {
	model.User
	Hint   RowHint
	Locked bool // controls disabled while this row's mutation is in flight
}

// View is a consistent snapshot of the list state.
type View struct {
	Rows       []Row
	Filter     Filter
	Loaded     bool  // at least one fetch succeeded
	LoadErr    error // error of the most recent fetch, nil on success
	Total      int   // size of the fetched collection
	UpdatingID string
}

// Notice is a one-shot message shown on the next render.
type Notice struct {
	Error bool
	Text  string
}

// Engine holds one admin session's list state. All methods are safe for
// concurrent use; network calls run without holding the state lock.
type Engine struct {
	dir   Directory
	log   *zap.Logger
	audit Auditor
	actor model.User
	now   func() time.Time

	mu          sync.Mutex
	source      []model.User
	view        []model.User
	filter      Filter
	loaded      bool
	loadErr     error
	loadSeq     uint64 // last fetch started
	appliedSeq  uint64 // last fetch whose result was applied
	updatingID  string
	partner     partnerState
	notice      *Notice
	lastTouched time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for fetch and mutation failures.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithAuditor publishes accepted mutations on behalf of actor.
func WithAuditor(a Auditor, actor model.User) Option {
	return func(e *Engine) {
		e.audit = a
		e.actor = actor
	}
}

// New returns an empty, not yet loaded engine.
func New(dir Directory, opts ...Option) *Engine {
	e := &Engine{
		dir:  dir,
		log:  zap.NewNop(),
		now:  time.Now,
		view: []model.User{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.lastTouched = e.now()
	return e
}

// Load fetches the full collection. On success it replaces the source and
// recomputes the view; on failure the previous state is kept and the
// error recorded. When fetches overlap, only the newest result is applied.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	e.loadSeq++
	seq := e.loadSeq
	e.mu.Unlock()

	users, err := e.dir.Users(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if seq < e.appliedSeq {
		return err
	}
	e.appliedSeq = seq
	if err != nil {
		e.loadErr = err
		e.log.Warn("fetch users failed", zap.Error(err))
		return err
	}
	e.source = append([]model.User(nil), users...)
	e.loaded = true
	e.loadErr = nil
	e.view = Recompute(e.source, e.filter)
	return nil
}

// SetFilter replaces both filter inputs and recomputes the view.
func (e *Engine) SetFilter(f Filter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter = f
	e.view = Recompute(e.source, e.filter)
}

// SetSearch replaces the search term and recomputes the view.
func (e *Engine) SetSearch(term string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter.Search = term
	e.view = Recompute(e.source, e.filter)
}

// SetStatusFilter replaces the status filter and recomputes the view.
func (e *Engine) SetStatusFilter(status string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter.Status = status
	e.view = Recompute(e.source, e.filter)
}

// Snapshot returns the current view. Only the row matching UpdatingID is
// locked.
func (e *Engine) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	rows := make([]Row, 0, len(e.view))
	for _, u := range e.view {
		rows = append(rows, Row{
			User:   u,
			Hint:   HintFor(u.Status),
			Locked: e.updatingID != "" && u.ID == e.updatingID,
		})
	}
	return View{
		Rows:       rows,
		Filter:     e.filter,
		Loaded:     e.loaded,
		LoadErr:    e.loadErr,
		Total:      len(e.source),
		UpdatingID: e.updatingID,
	}
}

// UpdatingID returns the id whose mutation is in flight, or "".
func (e *Engine) UpdatingID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.updatingID
}

// ChangeRole sets id's role and reloads the collection on success. The
// lock is released on every path; a rejected update keeps the source.
func (e *Engine) ChangeRole(ctx context.Context, id string, role model.Role) error {
	if !role.Valid() {
		return model.ErrUnknownRole
	}
	return e.mutate(ctx, id, func(ctx context.Context) error {
		return e.dir.UpdateRole(ctx, id, role)
	}, queue.AdminActionEvent{Action: queue.ActionRoleChanged, TargetID: id, Role: string(role)})
}

// ChangeStatus sets id's status the same way ChangeRole sets a role.
// Married is the exception: it only opens the partner flow and sends
// nothing until a partner is confirmed.
func (e *Engine) ChangeStatus(ctx context.Context, id string, status model.Status) error {
	if !status.Valid() {
		return model.ErrUnknownStatus
	}
	if status == model.StatusMarried {
		return e.OpenPartnerFlow(id)
	}
	return e.mutate(ctx, id, func(ctx context.Context) error {
		return e.dir.UpdateStatus(ctx, id, status, "")
	}, queue.AdminActionEvent{Action: queue.ActionStatusChanged, TargetID: id, Status: string(status)})
}

// Delete is a placeholder; no endpoint exists for it.
func (e *Engine) Delete(string) error {
	return ErrDeleteUnsupported
}

// mutate runs call under the single update lock and reloads on success.
func (e *Engine) mutate(ctx context.Context, id string, call func(context.Context) error, ev queue.AdminActionEvent) error {
	e.mu.Lock()
	if e.updatingID != "" {
		e.mu.Unlock()
		return ErrUpdateInProgress
	}
	e.updatingID = id
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.updatingID = ""
		e.mu.Unlock()
	}()

	if err := call(ctx); err != nil {
		e.log.Warn("user update failed",
			zap.String("action", ev.Action),
			zap.String("user_id", id),
			zap.Error(err),
		)
		return err
	}
	e.publish(ctx, ev)
	// The update went through; a failed refresh only leaves the view stale.
	_ = e.Load(ctx)
	return nil
}

func (e *Engine) publish(ctx context.Context, ev queue.AdminActionEvent) {
	if e.audit == nil {
		return
	}
	ev.ActorID = e.actor.ID
	ev.ActorEmail = e.actor.Email
	ev.OccurredAt = e.now().UTC().Format(time.RFC3339)
	if err := e.audit.Publish(ctx, ev); err != nil {
		e.log.Warn("audit publish failed", zap.String("action", ev.Action), zap.Error(err))
	}
}

// Notify stores a message for the next render, replacing any pending one.
func (e *Engine) Notify(n Notice) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notice = &n
}

// TakeNotice returns and clears the pending message.
func (e *Engine) TakeNotice() (Notice, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.notice == nil {
		return Notice{}, false
	}
	n := *e.notice
	e.notice = nil
	return n, true
}

func (e *Engine) touch() {
	e.mu.Lock()
	e.lastTouched = e.now()
	e.mu.Unlock()
}

func (e *Engine) idleSince() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastTouched
}

// findLocked expects e.mu to be held.
func (e *Engine) findLocked(id string) (model.User, bool) {
	for _, u := range e.source {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}
