package router

import (
	"github.com/labstack/echo/v4"

	"github.com/reviewhub/reviewhub-api/internal/handler"
	"github.com/reviewhub/reviewhub-api/internal/middleware"
	"github.com/reviewhub/reviewhub-api/internal/repository"
)

// RegisterUsers registers the self-service profile endpoints and the
// admin-only account collection under /v1/users.  All routes require a
// valid JWT; the collection additionally requires an administrator.
func RegisterUsers(e *echo.Echo, p *handler.ProfileHandler, u *handler.UsersHandler, jwtSecret string, accounts *repository.AccountRepo) {
	me := e.Group("/v1/users/me", middleware.JWTAuth(jwtSecret, accounts))
	me.GET("", p.Me)
	me.PATCH("", p.UpdateMe)

	admin := e.Group(
		"/v1/users",
		middleware.JWTAuth(jwtSecret, accounts),
		middleware.RequireAdmin(),
	)
	admin.GET("", u.List)
	admin.POST("", u.Create)
	admin.GET("/:username", u.Get)
	admin.PATCH("/:username", u.Update)
	admin.DELETE("/:username", u.Delete)
}
