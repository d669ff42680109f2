package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/reviewhub-api/internal/model"
	"github.com/reviewhub/reviewhub-api/internal/repository"
)

// GenreHandler serves the genre taxonomy, same shape as categories.
type GenreHandler struct {
	Genres *repository.GenreRepo
}

func NewGenreHandler(genres *repository.GenreRepo) *GenreHandler {
	return &GenreHandler{Genres: genres}
}

// List handles GET /v1/genres with optional ?search= name filtering.
func (h *GenreHandler) List(c echo.Context) error {
	limit, offset := pageParams(c)
	genres, total, err := h.Genres.List(c.Request().Context(),
		strings.TrimSpace(c.QueryParam("search")), limit, offset)
	if err != nil {
		return apiError(c, err)
	}
	items := make([]slugResp, 0, len(genres))
	for _, g := range genres {
		items = append(items, slugResp{Name: g.Name, Slug: g.Slug})
	}
	return c.JSON(http.StatusOK, listResp{Count: total, Items: items})
}

// Create handles POST /v1/genres (admin only).
func (h *GenreHandler) Create(c echo.Context) error {
	var req slugReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name, slug, err := req.validate()
	if err != nil {
		return err
	}
	g := model.Genre{Name: name, Slug: slug}
	if err := h.Genres.Create(c.Request().Context(), &g); err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, slugResp{Name: g.Name, Slug: g.Slug})
}

// Delete handles DELETE /v1/genres/:slug (admin only).
func (h *GenreHandler) Delete(c echo.Context) error {
	if err := h.Genres.Delete(c.Request().Context(), c.Param("slug")); err != nil {
		return apiError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
