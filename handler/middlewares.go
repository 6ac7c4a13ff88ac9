package handler

import (
	"github.com/labstack/echo/v4"
)

// RequireLogin sends anonymous users to the login page with msg flashed
func RequireLogin(msg string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if currentIdentity(c) == nil {
				return unauthenticated(c, msg)
			}
			return next(c)
		}
	}
}

// RequireAdmin only lets users with the admin role through
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := currentIdentity(c)
		if identity == nil {
			return unauthenticated(c, LoginRequiredMsg)
		}
		if !identity.IsAdmin() {
			return forbidden(c, AdminAccessErrorMsg)
		}
		return next(c)
	}
}
