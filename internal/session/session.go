// Package session holds the authenticated admin's bearer token and user
// record on the server side. Stores are explicit objects injected into the
// guard and handlers; nothing reads session state implicitly.
package session

import (
	"context"
	"errors"

	"github.com/iliyamo/matrimony-admin/internal/model"
)

// ErrNotFound is returned by Get when the id has no session (never
// created, cleared, or expired).
var ErrNotFound = errors.New("session not found")

// Session is the authenticated identity for one login.
type Session struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Authenticated reports whether the session carries a token. A session
// without a token is treated exactly like no session.
func (s Session) Authenticated() bool { return s.Token != "" }

// Store persists sessions by id.
type Store interface {
	// Get returns the session or ErrNotFound.
	Get(ctx context.Context, id string) (Session, error)
	// Set creates or replaces the session.
	Set(ctx context.Context, id string, s Session) error
	// Clear removes both token and user. Clearing a missing id is not an error.
	Clear(ctx context.Context, id string) error
}
