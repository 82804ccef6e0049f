package api

import (
	"net/http"
	"net/url"
	"strings"
)

// Endpoint is a logical remote operation bound to its method and URL
// template. Templates use "{id}" for the single path parameter.
type Endpoint struct {
	Name   string
	Method string
	Path   string
}

// Expand substitutes id into the template, escaping it as a path segment.
func (e Endpoint) Expand(id string) string {
	if !strings.Contains(e.Path, "{id}") {
		return e.Path
	}
	return strings.Replace(e.Path, "{id}", url.PathEscape(id), 1)
}

// Auth operations.
var (
	Login  = Endpoint{Name: "login", Method: http.MethodPost, Path: "/auth/login"}
	Signup = Endpoint{Name: "signup", Method: http.MethodPost, Path: "/auth/signup"}
)

// Profile operations.
var (
	ProfileByID = Endpoint{Name: "get_profile", Method: http.MethodGet, Path: "/user/get-profile/{id}"}
	MyProfile   = Endpoint{Name: "my_profile", Method: http.MethodGet, Path: "/user/my-profile"}
)

// Admin operations.
var (
	ListUsers    = Endpoint{Name: "list_users", Method: http.MethodGet, Path: "/admin/get-all-users"}
	UpdateStatus = Endpoint{Name: "update_status", Method: http.MethodPut, Path: "/admin/update-status/{id}"}
	UpdateRole   = Endpoint{Name: "update_role", Method: http.MethodPut, Path: "/admin/update-role/{id}"}
	UserCount    = Endpoint{Name: "user_count", Method: http.MethodGet, Path: "/admin/get-user-count"}
)

// Catalog lists every endpoint the console talks to.
var Catalog = []Endpoint{Login, Signup, ProfileByID, MyProfile, ListUsers, UpdateStatus, UpdateRole, UserCount}
