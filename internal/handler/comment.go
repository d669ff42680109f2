package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/reviewhub-api/internal/auth"
	"github.com/reviewhub/reviewhub-api/internal/middleware"
	"github.com/reviewhub/reviewhub-api/internal/model"
	"github.com/reviewhub/reviewhub-api/internal/repository"
)

// CommentHandler serves comments nested under a title's review.
type CommentHandler struct {
	Reviews  *repository.ReviewRepo
	Comments *repository.CommentRepo
}

func NewCommentHandler(reviews *repository.ReviewRepo, comments *repository.CommentRepo) *CommentHandler {
	return &CommentHandler{Reviews: reviews, Comments: comments}
}

type commentReq struct {
	Text *string `json:"text"`
}

type commentResp struct {
	ID      uint64 `json:"id"`
	Text    string `json:"text"`
	Author  string `json:"author"`
	PubDate string `json:"pub_date"`
}

func toCommentResp(cm model.Comment) commentResp {
	return commentResp{
		ID:      cm.ID,
		Text:    cm.Text,
		Author:  cm.AuthorUsername,
		PubDate: cm.PubDate.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// reviewID parses :title_id/:review_id and verifies the review exists
// under that title.
func (h *CommentHandler) reviewID(c echo.Context) (uint64, error) {
	titleID, err := idParam(c, "title_id")
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid title id")
	}
	reviewID, err := idParam(c, "review_id")
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid review id")
	}
	if _, err := h.Reviews.GetByID(c.Request().Context(), titleID, reviewID); err != nil {
		if err == repository.ErrNotFound {
			return 0, echo.NewHTTPError(http.StatusNotFound, "review not found")
		}
		return 0, err
	}
	return reviewID, nil
}

// List handles GET .../reviews/:review_id/comments.
func (h *CommentHandler) List(c echo.Context) error {
	reviewID, err := h.reviewID(c)
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)
	comments, total, err := h.Comments.ListByReview(c.Request().Context(), reviewID, limit, offset)
	if err != nil {
		return apiError(c, err)
	}
	items := make([]commentResp, 0, len(comments))
	for _, cm := range comments {
		items = append(items, toCommentResp(cm))
	}
	return c.JSON(http.StatusOK, listResp{Count: total, Items: items})
}

// Get handles GET .../comments/:id.
func (h *CommentHandler) Get(c echo.Context) error {
	reviewID, err := h.reviewID(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cm, err := h.Comments.GetByID(c.Request().Context(), reviewID, id)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, toCommentResp(cm))
}

// Create handles POST .../comments (authenticated).
func (h *CommentHandler) Create(c echo.Context) error {
	actor := middleware.Actor(c)
	if actor == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reviewID, err := h.reviewID(c)
	if err != nil {
		return err
	}

	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Text == nil || strings.TrimSpace(*req.Text) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text is required"})
	}

	cm := model.Comment{
		ReviewID:       reviewID,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username,
		Text:           strings.TrimSpace(*req.Text),
	}
	if err := h.Comments.Create(c.Request().Context(), &cm); err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, toCommentResp(cm))
}

// Update handles PATCH .../comments/:id. Author, moderator or admin only.
func (h *CommentHandler) Update(c echo.Context) error {
	reviewID, err := h.reviewID(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	cm, err := h.Comments.GetByID(ctx, reviewID, id)
	if err != nil {
		return apiError(c, err)
	}
	if !auth.CanModifyObject(middleware.Actor(c), cm.AuthorID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Text == nil || strings.TrimSpace(*req.Text) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text is required"})
	}
	cm.Text = strings.TrimSpace(*req.Text)

	if err := h.Comments.Update(ctx, cm.ID, cm.Text); err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, toCommentResp(cm))
}

// Delete handles DELETE .../comments/:id.
func (h *CommentHandler) Delete(c echo.Context) error {
	reviewID, err := h.reviewID(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	cm, err := h.Comments.GetByID(ctx, reviewID, id)
	if err != nil {
		return apiError(c, err)
	}
	if !auth.CanModifyObject(middleware.Actor(c), cm.AuthorID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Comments.Delete(ctx, cm.ID); err != nil {
		return apiError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
