package middleware

// identity.go defines helpers shared across middleware files. Keys that
// must be scoped to the signed-in admin use a fingerprint of the session
// id so raw ids never end up in Redis key names.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/matrimony-admin/internal/utils"
)

// sessionKey returns the fingerprint of the current session id, or
// "guest" when the request is not authenticated.
func sessionKey(c echo.Context) string {
	sid := SessionID(c)
	if sid == "" {
		return "guest"
	}
	return utils.Fingerprint(sid)
}
