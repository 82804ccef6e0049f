package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/matrimony-admin/internal/api"
	"github.com/iliyamo/matrimony-admin/internal/config"
	"github.com/iliyamo/matrimony-admin/internal/middleware"
	"github.com/iliyamo/matrimony-admin/internal/session"
	"github.com/iliyamo/matrimony-admin/internal/userlist"
	"github.com/iliyamo/matrimony-admin/internal/utils"
	"github.com/iliyamo/matrimony-admin/internal/view"
)

// Messages shown on the login form.
const (
	msgLoginMissing = "Please enter email and password"
	msgLoginFailed  = "Login failed. Try again."
)

// AuthHandler bundles dependencies for the login and logout endpoints.
type AuthHandler struct {
	Cfg      config.Config
	API      *api.Client
	Sessions session.Store
	Lists    *userlist.Registry
	Cache    CacheInvalidator
	Log      *zap.Logger
}

// NewAuthHandler wires an AuthHandler. cache and log may be nil.
func NewAuthHandler(cfg config.Config, client *api.Client, store session.Store, lists *userlist.Registry, cache CacheInvalidator, log *zap.Logger) *AuthHandler {
	if cache == nil {
		cache = noCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{Cfg: cfg, API: client, Sessions: store, Lists: lists, Cache: cache, Log: log}
}

// LoginPage renders the empty sign-in form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageLogin, view.Page{Title: "Login", Body: view.Login{}})
}

// Login: validate the form, exchange credentials with the remote API,
// store token and user server-side and hand the browser a signed cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	if email == "" || password == "" {
		return h.loginError(c, http.StatusBadRequest, email, msgLoginMissing)
	}

	ctx := c.Request().Context()
	res, err := h.API.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		status := http.StatusUnauthorized
		if api.IsNetwork(err) {
			status = http.StatusBadGateway
		}
		msg := msgLoginFailed
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		h.Log.Info("login rejected", zap.String("email_fp", utils.Fingerprint(email)), zap.Error(err))
		return h.loginError(c, status, email, msg)
	}

	sid := utils.NewSessionID()
	if err := h.Sessions.Set(ctx, sid, session.Session{Token: res.Token, User: res.User}); err != nil {
		h.Log.Error("store session failed", zap.Error(err))
		return h.loginError(c, http.StatusInternalServerError, email, msgLoginFailed)
	}
	tok, err := utils.NewSessionToken(h.Cfg.SessionSecret, sid, h.Cfg.SessionTTL)
	if err != nil {
		h.Log.Error("sign session cookie failed", zap.Error(err))
		_ = h.Sessions.Clear(ctx, sid)
		return h.loginError(c, http.StatusInternalServerError, email, msgLoginFailed)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.Exp,
		HttpOnly: true,
		Secure:   h.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	h.Log.Info("admin signed in", zap.String("user_id", res.User.ID), zap.String("role", string(res.User.Role)))
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) loginError(c echo.Context, status int, email, msg string) error {
	return c.Render(status, view.PageLogin, view.Page{Title: "Login", Body: view.Login{Email: email, Error: msg}})
}

// Logout clears the stored token and user, drops the session's list
// state and cached pages, expires the cookie and returns to /login.
func (h *AuthHandler) Logout(c echo.Context) error {
	sid := middleware.SessionID(c)
	if sid != "" {
		ctx := c.Request().Context()
		if err := h.Sessions.Clear(ctx, sid); err != nil && !errors.Is(err, session.ErrNotFound) {
			h.Log.Warn("clear session failed", zap.Error(err))
		}
		h.Lists.Drop(sid)
		if err := h.Cache.Invalidate(ctx, sid); err != nil {
			h.Log.Warn("drop cached pages failed", zap.Error(err))
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/login")
}
