package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/matrimony-admin/internal/api"
	"github.com/iliyamo/matrimony-admin/internal/view"
)

const msgStatsFailed = "Failed to load stats. Please try again."

// DashboardHandler renders the aggregate counters.
type DashboardHandler struct {
	API *api.Client
	Log *zap.Logger
}

// NewDashboardHandler wires a DashboardHandler.
func NewDashboardHandler(client *api.Client, log *zap.Logger) *DashboardHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &DashboardHandler{API: client, Log: log}
}

// Show fetches the user counts with the admin's token. Failures render
// the retry message with a 502 so the cache never stores them.
func (h *DashboardHandler) Show(c echo.Context) error {
	_, s, err := currentSession(c)
	if err != nil {
		return err
	}
	stats, err := h.API.WithToken(s.Token).UserCount(c.Request().Context())
	if err != nil {
		h.Log.Warn("fetch user stats failed", zap.Error(err))
		return page(c, http.StatusBadGateway, view.PageDashboard, "Dashboard", "dashboard", view.Dashboard{Error: msgStatsFailed})
	}
	return page(c, http.StatusOK, view.PageDashboard, "Dashboard", "dashboard", view.Dashboard{Cards: view.DashboardCards(stats)})
}
