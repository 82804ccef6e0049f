package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/matrimony-admin/internal/model"
	"github.com/iliyamo/matrimony-admin/internal/userlist"
	"github.com/iliyamo/matrimony-admin/internal/view"
)

// Notices shown after list actions.
const (
	msgRoleUpdated    = "Role updated successfully"
	msgStatusUpdated  = "Status updated successfully"
	msgMarriageLinked = "Marriage linked successfully!"
	msgSelectPartner  = "Please select a partner to proceed!"
	msgDeleteSoon     = "Delete feature coming soon"
	msgUpdateBusy     = "Another update is still in progress. Please wait."
	msgInvalidRole    = "Invalid role"
	msgInvalidStatus  = "Invalid status"
	msgUnknownUser    = "That user is no longer in the list"
	msgPartnerNotOpen = "Partner selection is closed"
	msgMarriageFailed = "Failed to link marriage."
	msgUpdateFailed   = "Update failed"
)

// Form and query field names.
const (
	activeUsers   = "users"
	titleUsers    = "Users"
	formRole      = "role"
	formStatus    = "status"
	formPartnerID = "partner_id"
	queryStatus   = "status"
	querySearch   = "q"
)

// UsersHandler drives the per-session user list engine from HTML forms.
// Every action redirects back to the list, which shows the outcome as a
// one-shot notice.
type UsersHandler struct {
	Lists *userlist.Registry
	Cache CacheInvalidator
	Log   *zap.Logger
}

// NewUsersHandler wires a UsersHandler. cache and log may be nil.
func NewUsersHandler(lists *userlist.Registry, cache CacheInvalidator, log *zap.Logger) *UsersHandler {
	if cache == nil {
		cache = noCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &UsersHandler{Lists: lists, Cache: cache, Log: log}
}

func (h *UsersHandler) engine(c echo.Context) (string, *userlist.Engine, error) {
	sid, s, err := currentSession(c)
	if err != nil {
		return "", nil, err
	}
	return sid, h.Lists.Get(sid, s), nil
}

// List handles GET /users?status=&q=. The query string is the filter; the
// collection is fetched fresh on every visit.
func (h *UsersHandler) List(c echo.Context) error {
	_, e, err := h.engine(c)
	if err != nil {
		return err
	}
	e.SetFilter(userlist.Filter{Status: c.QueryParam(queryStatus), Search: c.QueryParam(querySearch)})
	// A failed fetch is shown from the snapshot's LoadErr.
	_ = e.Load(c.Request().Context())
	return h.render(c, e)
}

func (h *UsersHandler) render(c echo.Context, e *userlist.Engine) error {
	body := view.Users{View: e.Snapshot(), Partner: e.Partner()}
	if n, ok := e.TakeNotice(); ok {
		body.Notice = &n
	}
	status := http.StatusOK
	if !body.View.Loaded && body.View.LoadErr != nil {
		status = http.StatusBadGateway
	}
	return page(c, status, view.PageUsers, titleUsers, activeUsers, body)
}

// back redirects to the list with the engine's current filter.
func back(c echo.Context, e *userlist.Engine) error {
	f := e.Snapshot().Filter
	q := url.Values{}
	if f.Status != "" {
		q.Set(queryStatus, f.Status)
	}
	if f.Search != "" {
		q.Set(querySearch, f.Search)
	}
	target := "/users"
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// ChangeRole handles POST /users/:id/role.
func (h *UsersHandler) ChangeRole(c echo.Context) error {
	sid, e, err := h.engine(c)
	if err != nil {
		return err
	}
	role, err := model.ParseRole(c.FormValue(formRole))
	if err != nil {
		e.Notify(userlist.Notice{Error: true, Text: msgInvalidRole})
		return back(c, e)
	}
	ctx := c.Request().Context()
	if err := e.ChangeRole(ctx, c.Param("id"), role); err != nil {
		e.Notify(failure(err, msgUpdateFailed))
		return back(c, e)
	}
	h.invalidate(c, sid)
	e.Notify(userlist.Notice{Text: msgRoleUpdated})
	return back(c, e)
}

// ChangeStatus handles POST /users/:id/status. Choosing married opens the
// partner dialog instead of sending anything.
func (h *UsersHandler) ChangeStatus(c echo.Context) error {
	sid, e, err := h.engine(c)
	if err != nil {
		return err
	}
	status, err := model.ParseStatus(c.FormValue(formStatus))
	if err != nil {
		e.Notify(userlist.Notice{Error: true, Text: msgInvalidStatus})
		return back(c, e)
	}
	if err := e.ChangeStatus(c.Request().Context(), c.Param("id"), status); err != nil {
		e.Notify(failure(err, msgUpdateFailed))
		return back(c, e)
	}
	if status != model.StatusMarried {
		h.invalidate(c, sid)
		e.Notify(userlist.Notice{Text: msgStatusUpdated})
	}
	return back(c, e)
}

// Delete handles POST /users/:id/delete. No endpoint exists yet.
func (h *UsersHandler) Delete(c echo.Context) error {
	_, e, err := h.engine(c)
	if err != nil {
		return err
	}
	if err := e.Delete(c.Param("id")); err != nil {
		e.Notify(failure(err, msgDeleteSoon))
	}
	return back(c, e)
}

// PartnerSearch handles GET /users/partner?q=. It renders the current list
// without fetching again.
func (h *UsersHandler) PartnerSearch(c echo.Context) error {
	_, e, err := h.engine(c)
	if err != nil {
		return err
	}
	if err := e.SetPartnerSearch(c.QueryParam(querySearch)); err != nil {
		return back(c, e)
	}
	return h.render(c, e)
}

// ChoosePartner handles POST /users/partner/choose.
func (h *UsersHandler) ChoosePartner(c echo.Context) error {
	_, e, err := h.engine(c)
	if err != nil {
		return err
	}
	if err := e.ChoosePartner(c.FormValue(formPartnerID)); err != nil {
		e.Notify(failure(err, msgUpdateFailed))
	}
	return back(c, e)
}

// ConfirmPartner handles POST /users/partner/confirm.
func (h *UsersHandler) ConfirmPartner(c echo.Context) error {
	sid, e, err := h.engine(c)
	if err != nil {
		return err
	}
	if err := e.ConfirmPartner(c.Request().Context()); err != nil {
		e.Notify(failure(err, msgMarriageFailed))
		return back(c, e)
	}
	h.invalidate(c, sid)
	e.Notify(userlist.Notice{Text: msgMarriageLinked})
	return back(c, e)
}

// CancelPartner handles POST /users/partner/cancel.
func (h *UsersHandler) CancelPartner(c echo.Context) error {
	_, e, err := h.engine(c)
	if err != nil {
		return err
	}
	e.ClosePartnerFlow()
	return back(c, e)
}

// invalidate drops cached dashboard pages after an accepted mutation.
func (h *UsersHandler) invalidate(c echo.Context, sid string) {
	if err := h.Cache.Invalidate(c.Request().Context(), sid); err != nil {
		h.Log.Warn("drop cached pages failed", zap.Error(err))
	}
}

// failure turns an engine or remote error into an error notice.
func failure(err error, fallback string) userlist.Notice {
	text := fallback
	switch {
	case errors.Is(err, userlist.ErrNoPartnerChosen):
		text = msgSelectPartner
	case errors.Is(err, userlist.ErrUpdateInProgress):
		text = msgUpdateBusy
	case errors.Is(err, userlist.ErrDeleteUnsupported):
		text = msgDeleteSoon
	case errors.Is(err, userlist.ErrUnknownUser):
		text = msgUnknownUser
	case errors.Is(err, userlist.ErrPartnerFlowClosed):
		text = msgPartnerNotOpen
	case errors.Is(err, model.ErrUnknownRole):
		text = msgInvalidRole
	case errors.Is(err, model.ErrUnknownStatus):
		text = msgInvalidStatus
	default:
		if msg := err.Error(); msg != "" {
			text = msg
		}
	}
	return userlist.Notice{Error: true, Text: text}
}
