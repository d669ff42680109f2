package router

import (
	"github.com/labstack/echo/v4"

	"github.com/reviewhub/reviewhub-api/internal/handler"
	"github.com/reviewhub/reviewhub-api/internal/middleware"
	"github.com/reviewhub/reviewhub-api/internal/repository"
)

// RegisterCatalogue registers the titles, categories and genres endpoints.
// Reads are public and may be served from the response cache; writes
// require an administrator.  cache may be nil when Redis is unavailable.
func RegisterCatalogue(e *echo.Echo, t *handler.TitleHandler, cat *handler.CategoryHandler, gen *handler.GenreHandler, jwtSecret string, accounts *repository.AccountRepo, cache echo.MiddlewareFunc) {
	pub := e.Group("/v1")
	if cache != nil {
		pub.Use(cache)
	}
	pub.GET("/titles", t.List)
	pub.GET("/titles/:title_id", t.Get)
	pub.GET("/categories", cat.List)
	pub.GET("/genres", gen.List)

	admin := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret, accounts),
		middleware.RequireAdmin(),
	)
	admin.POST("/titles", t.Create)
	admin.PATCH("/titles/:title_id", t.Update)
	admin.DELETE("/titles/:title_id", t.Delete)
	admin.POST("/categories", cat.Create)
	admin.DELETE("/categories/:slug", cat.Delete)
	admin.POST("/genres", gen.Create)
	admin.DELETE("/genres/:slug", gen.Delete)
}
