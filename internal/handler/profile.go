package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/matrimony-admin/internal/api"
	"github.com/iliyamo/matrimony-admin/internal/model"
	"github.com/iliyamo/matrimony-admin/internal/view"
)

const msgUserNotFound = "User not found"

// ProfileHandler renders a full profile, either any user's by id or the
// signed-in admin's own.
type ProfileHandler struct {
	API *api.Client
	Log *zap.Logger
}

// NewProfileHandler wires a ProfileHandler.
func NewProfileHandler(client *api.Client, log *zap.Logger) *ProfileHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProfileHandler{API: client, Log: log}
}

// Show handles GET /users/:id.
func (h *ProfileHandler) Show(c echo.Context) error {
	_, s, err := currentSession(c)
	if err != nil {
		return err
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return h.notFound(c, "/users")
	}
	p, err := h.API.WithToken(s.Token).ProfileByID(c.Request().Context(), id)
	if err != nil {
		h.Log.Info("fetch profile failed", zap.String("user_id", id), zap.Error(err))
		return h.notFound(c, "/users")
	}
	return h.render(c, p, "/users", "users")
}

// Me handles GET /me.
func (h *ProfileHandler) Me(c echo.Context) error {
	_, s, err := currentSession(c)
	if err != nil {
		return err
	}
	p, err := h.API.WithToken(s.Token).MyProfile(c.Request().Context())
	if err != nil {
		h.Log.Info("fetch own profile failed", zap.Error(err))
		return h.notFound(c, "/")
	}
	return h.render(c, p, "/", "me")
}

func (h *ProfileHandler) render(c echo.Context, p model.Profile, back, active string) error {
	title := p.FullName
	if title == "" {
		title = "Profile"
	}
	return page(c, http.StatusOK, view.PageProfile, title, active, view.Profile{Profile: &p, Back: back})
}

func (h *ProfileHandler) notFound(c echo.Context, back string) error {
	return page(c, http.StatusNotFound, view.PageProfile, "Profile", "users", view.Profile{Error: msgUserNotFound, Back: back})
}
