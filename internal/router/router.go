// Package router registers the console routes on an echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/matrimony-admin/internal/handler"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Users     *handler.UsersHandler
	Profile   *handler.ProfileHandler
}

// Middlewares are the route-level middleware built from configuration.
type Middlewares struct {
	Guard      echo.MiddlewareFunc // session check
	Admin      echo.MiddlewareFunc // role gate
	LoginLimit echo.MiddlewareFunc // token bucket on POST /login
	Cache      echo.MiddlewareFunc // dashboard response cache
}

// RegisterRoutes registers the public routes (health, metrics, login) and
// the session-guarded console.
func RegisterRoutes(e *echo.Echo, h Handlers, m Middlewares) {
	m = m.orPassthrough()

	// Liveness and Prometheus scraping stay open.
	e.GET("/healthz", h.Health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/login", h.Auth.LoginPage)
	e.POST("/login", h.Auth.Login, m.LoginLimit)

	// Logout only needs a session; a signed-in non-admin must still be
	// able to leave.
	e.POST("/logout", h.Auth.Logout, m.Guard)

	// Everything else requires a session with an admin role.
	g := e.Group("", m.Guard, m.Admin)
	g.GET("/", h.Dashboard.Show, m.Cache)
	g.GET("/me", h.Profile.Me)

	g.GET("/users", h.Users.List)
	// Static partner routes are registered before /users/:id so they win.
	g.GET("/users/partner", h.Users.PartnerSearch)
	g.POST("/users/partner/choose", h.Users.ChoosePartner)
	g.POST("/users/partner/confirm", h.Users.ConfirmPartner)
	g.POST("/users/partner/cancel", h.Users.CancelPartner)
	g.GET("/users/:id", h.Profile.Show)
	g.POST("/users/:id/role", h.Users.ChangeRole)
	g.POST("/users/:id/status", h.Users.ChangeStatus)
	g.POST("/users/:id/delete", h.Users.Delete)
}

// Passthrough is a no-op middleware for disabled features.
func Passthrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// orPassthrough fills unset optional middleware. Guard is never optional.
func (m Middlewares) orPassthrough() Middlewares {
	if m.Guard == nil {
		panic("router: nil Guard middleware")
	}
	for _, mw := range []*echo.MiddlewareFunc{&m.Admin, &m.LoginLimit, &m.Cache} {
		if *mw == nil {
			*mw = Passthrough
		}
	}
	return m
}
