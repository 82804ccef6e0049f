// Package middleware holds the echo middleware of the console: session
// guard, role gate, login rate limiting, response caching and request logs.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/matrimony-admin/internal/session"
	"github.com/iliyamo/matrimony-admin/internal/utils"
)

// CookieName is the browser cookie carrying the signed session id.
const CookieName = "admin_session"

// Context keys set by Guard.
const (
	ctxSessionID = "session_id"
	ctxSession   = "session"
)

// Guard returns an Echo middleware that admits a request only when the
// admin_session cookie is validly signed and the store holds a session
// with a token for it. The session is put into the context so handlers
// can read it via CurrentSession. Other requests are turned away: clients
// asking for JSON get 401, browsers are redirected to /login.
func Guard(secret string, store session.Store, log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(CookieName)
			if err != nil || ck.Value == "" {
				return deny(c, "missing session")
			}
			sid, err := utils.ParseSessionToken(secret, ck.Value)
			if err != nil {
				return deny(c, "invalid session")
			}
			s, err := store.Get(c.Request().Context(), sid)
			if err != nil {
				if !errors.Is(err, session.ErrNotFound) {
					log.Warn("session lookup failed", zap.Error(err))
				}
				return deny(c, "session expired")
			}
			// A session without a token is the same as no session.
			if !s.Authenticated() {
				return deny(c, "session expired")
			}
			c.Set(ctxSessionID, sid)
			c.Set(ctxSession, s)
			return next(c)
		}
	}
}

// deny answers an unauthenticated request.
func deny(c echo.Context, msg string) error {
	if wantsJSON(c) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

// wantsJSON reports whether the client is a script rather than a browser.
func wantsJSON(c echo.Context) bool {
	r := c.Request()
	if strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest") {
		return true
	}
	accept := r.Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMEApplicationJSON) && !strings.Contains(accept, echo.MIMETextHTML)
}

// SessionID returns the id Guard resolved, or "".
func SessionID(c echo.Context) string {
	sid, _ := c.Get(ctxSessionID).(string)
	return sid
}

// CurrentSession returns the session Guard resolved.
func CurrentSession(c echo.Context) (session.Session, bool) {
	s, ok := c.Get(ctxSession).(session.Session)
	return s, ok
}
