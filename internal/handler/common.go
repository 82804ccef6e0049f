// Package handler implements the console pages and form posts.
package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matrimony-admin/internal/middleware"
	"github.com/iliyamo/matrimony-admin/internal/session"
	"github.com/iliyamo/matrimony-admin/internal/view"
)

// CacheInvalidator drops the cached pages of one session.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, sessionID string) error
}

type noCache struct{}

func (noCache) Invalidate(context.Context, string) error { return nil }

// currentSession returns the session placed in the context by the guard.
// Handlers behind the guard always have one; a missing session means the
// route was wired without it.
func currentSession(c echo.Context) (string, session.Session, error) {
	s, ok := middleware.CurrentSession(c)
	sid := middleware.SessionID(c)
	if !ok || sid == "" {
		return "", session.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sid, s, nil
}

// page renders a signed-in page.
func page(c echo.Context, status int, name, title, active string, body any) error {
	return c.Render(status, name, view.Page{Title: title, Active: active, SignedIn: true, Body: body})
}
