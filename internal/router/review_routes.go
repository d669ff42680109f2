package router

import (
	"github.com/labstack/echo/v4"

	"github.com/reviewhub/reviewhub-api/internal/handler"
	"github.com/reviewhub/reviewhub-api/internal/middleware"
	"github.com/reviewhub/reviewhub-api/internal/repository"
)

// RegisterReviews registers the review and comment endpoints nested under
// titles.  Reads are public; creating requires any authenticated user and
// editing is checked per object inside the handlers.
func RegisterReviews(e *echo.Echo, r *handler.ReviewHandler, cm *handler.CommentHandler, jwtSecret string, accounts *repository.AccountRepo) {
	pub := e.Group("/v1/titles/:title_id/reviews")
	pub.GET("", r.List)
	pub.GET("/:review_id", r.Get)
	pub.GET("/:review_id/comments", cm.List)
	pub.GET("/:review_id/comments/:id", cm.Get)

	auth := e.Group("/v1/titles/:title_id/reviews", middleware.JWTAuth(jwtSecret, accounts))
	auth.POST("", r.Create)
	auth.PATCH("/:review_id", r.Update)
	auth.DELETE("/:review_id", r.Delete)
	auth.POST("/:review_id/comments", cm.Create)
	auth.PATCH("/:review_id/comments/:id", cm.Update)
	auth.DELETE("/:review_id/comments/:id", cm.Delete)
}
