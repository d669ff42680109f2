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

// ReviewHandler serves reviews nested under a title: public reads,
// authenticated create (one per author per title), object-guarded writes.
type ReviewHandler struct {
	Titles  *repository.TitleRepo
	Reviews *repository.ReviewRepo
}

func NewReviewHandler(titles *repository.TitleRepo, reviews *repository.ReviewRepo) *ReviewHandler {
	return &ReviewHandler{Titles: titles, Reviews: reviews}
}

type reviewReq struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

type reviewResp struct {
	ID      uint64 `json:"id"`
	Text    string `json:"text"`
	Score   int    `json:"score"`
	Author  string `json:"author"`
	PubDate string `json:"pub_date"`
}

func toReviewResp(rv model.Review) reviewResp {
	return reviewResp{
		ID:      rv.ID,
		Text:    rv.Text,
		Score:   rv.Score,
		Author:  rv.AuthorUsername,
		PubDate: rv.PubDate.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// titleID parses :title_id and verifies the title exists.
func (h *ReviewHandler) titleID(c echo.Context) (uint64, error) {
	id, err := idParam(c, "title_id")
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid title id")
	}
	if _, err := h.Titles.GetByID(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return 0, echo.NewHTTPError(http.StatusNotFound, "title not found")
		}
		return 0, err
	}
	return id, nil
}

// List handles GET /v1/titles/:title_id/reviews.
func (h *ReviewHandler) List(c echo.Context) error {
	titleID, err := h.titleID(c)
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)
	reviews, total, err := h.Reviews.ListByTitle(c.Request().Context(), titleID, limit, offset)
	if err != nil {
		return apiError(c, err)
	}
	items := make([]reviewResp, 0, len(reviews))
	for _, rv := range reviews {
		items = append(items, toReviewResp(rv))
	}
	return c.JSON(http.StatusOK, listResp{Count: total, Items: items})
}

// Get handles GET /v1/titles/:title_id/reviews/:review_id.
func (h *ReviewHandler) Get(c echo.Context) error {
	titleID, err := h.titleID(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "review_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	rv, err := h.Reviews.GetByID(c.Request().Context(), titleID, id)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, toReviewResp(rv))
}

// Create handles POST /v1/titles/:title_id/reviews. A second review from
// the same author for the same title is a validation error; the first
// stays untouched.
func (h *ReviewHandler) Create(c echo.Context) error {
	actor := middleware.Actor(c)
	if actor == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	titleID, err := h.titleID(c)
	if err != nil {
		return err
	}

	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	text, score, err := validateReviewBody(req, true)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	exists, err := h.Reviews.ExistsByTitleAndAuthor(ctx, titleID, actor.ID)
	if err != nil {
		return apiError(c, err)
	}
	if exists {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "you have already reviewed this title"})
	}

	rv := model.Review{TitleID: titleID, AuthorID: actor.ID, AuthorUsername: actor.Username, Text: text, Score: score}
	if err := h.Reviews.Create(ctx, &rv); err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, toReviewResp(rv))
}

// Update handles PATCH /v1/titles/:title_id/reviews/:review_id. Author,
// moderator or admin only.
func (h *ReviewHandler) Update(c echo.Context) error {
	titleID, err := h.titleID(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "review_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	rv, err := h.Reviews.GetByID(ctx, titleID, id)
	if err != nil {
		return apiError(c, err)
	}
	if !auth.CanModifyObject(middleware.Actor(c), rv.AuthorID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Text != nil {
		text := strings.TrimSpace(*req.Text)
		if text == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "text must not be empty"})
		}
		rv.Text = text
	}
	if req.Score != nil {
		if *req.Score < model.ScoreMin || *req.Score > model.ScoreMax {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "score must be between 1 and 10"})
		}
		rv.Score = *req.Score
	}

	if err := h.Reviews.Update(ctx, rv.ID, rv.Text, rv.Score); err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, toReviewResp(rv))
}

// Delete handles DELETE /v1/titles/:title_id/reviews/:review_id.
func (h *ReviewHandler) Delete(c echo.Context) error {
	titleID, err := h.titleID(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "review_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	rv, err := h.Reviews.GetByID(ctx, titleID, id)
	if err != nil {
		return apiError(c, err)
	}
	if !auth.CanModifyObject(middleware.Actor(c), rv.AuthorID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Reviews.Delete(ctx, rv.ID); err != nil {
		return apiError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func validateReviewBody(req reviewReq, require bool) (string, int, error) {
	if require && (req.Text == nil || req.Score == nil) {
		return "", 0, echo.NewHTTPError(http.StatusBadRequest, "text and score are required")
	}
	text := ""
	if req.Text != nil {
		text = strings.TrimSpace(*req.Text)
	}
	if text == "" {
		return "", 0, echo.NewHTTPError(http.StatusBadRequest, "text must not be empty")
	}
	score := 0
	if req.Score != nil {
		score = *req.Score
	}
	if score < model.ScoreMin || score > model.ScoreMax {
		return "", 0, echo.NewHTTPError(http.StatusBadRequest, "score must be between 1 and 10")
	}
	return text, score, nil
}
