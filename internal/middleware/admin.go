package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/reviewhub-api/internal/auth"
)

// RequireAdmin aborts requests whose actor lacks admin authority. It
// assumes JWTAuth ran earlier in the chain; an absent actor is rejected
// the same way as a non-admin one. Used for the users collection, where
// every method including reads is admin-only.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !auth.CanAdministerCollection(Actor(c)) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
