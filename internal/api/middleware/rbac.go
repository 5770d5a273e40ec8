package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotelhub/hotel-api/internal/core/domain"
)

// RBAC admits the request when allowed accepts the caller's role. It runs
// after Auth; a request with no user is answered 401.
func RBAC(allowed domain.AccessCheck) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := CurrentUser(c)
			if u == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			if !allowed(u.Role) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// PageGate guards a browser page. Anonymous visitors go to the login page and
// signed-in users without access go to their own dashboard. It relies on
// LoadSession having run.
func PageGate(allowed domain.AccessCheck) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := CurrentUser(c)
			if u == nil {
				return c.Redirect(http.StatusFound, domain.RouteLogin)
			}
			if !allowed(u.Role) {
				return c.Redirect(http.StatusFound, domain.DashboardRoute(u))
			}
			return next(c)
		}
	}
}
