package router

import (
	"github.com/labstack/echo/v4"

	"github.com/reviewhub/reviewhub-api/internal/handler"
	"github.com/reviewhub/reviewhub-api/internal/middleware"
	"github.com/reviewhub/reviewhub-api/internal/repository"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the signup and token endpoints under /v1/auth.
// Both accept anonymous callers; a bearer token is honoured when present
// so that admins can pre-activate accounts and active users can skip the
// confirmation code.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, accounts *repository.AccountRepo) {
	g := e.Group("/v1/auth", middleware.OptionalJWTAuth(jwtSecret, accounts))
	g.POST("/signup", a.SignUp)
	g.POST("/token", a.IssueToken)
}
