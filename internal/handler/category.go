package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/reviewhub-api/internal/model"
	"github.com/reviewhub/reviewhub-api/internal/repository"
)

// CategoryHandler serves the category taxonomy: public list, admin-only
// create and delete.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewCategoryHandler(categories *repository.CategoryRepo) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

type slugResp struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type slugReq struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (r *slugReq) validate() (string, string, error) {
	name := strings.TrimSpace(r.Name)
	slug := strings.TrimSpace(r.Slug)
	if name == "" || slug == "" {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "name and slug are required")
	}
	if len(slug) > 50 || !slugPattern.MatchString(slug) {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "invalid slug")
	}
	return name, slug, nil
}

// List handles GET /v1/categories with optional ?search= name filtering.
func (h *CategoryHandler) List(c echo.Context) error {
	limit, offset := pageParams(c)
	cats, total, err := h.Categories.List(c.Request().Context(),
		strings.TrimSpace(c.QueryParam("search")), limit, offset)
	if err != nil {
		return apiError(c, err)
	}
	items := make([]slugResp, 0, len(cats))
	for _, cat := range cats {
		items = append(items, slugResp{Name: cat.Name, Slug: cat.Slug})
	}
	return c.JSON(http.StatusOK, listResp{Count: total, Items: items})
}

// Create handles POST /v1/categories (admin only).
func (h *CategoryHandler) Create(c echo.Context) error {
	var req slugReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name, slug, err := req.validate()
	if err != nil {
		return err
	}
	cat := model.Category{Name: name, Slug: slug}
	if err := h.Categories.Create(c.Request().Context(), &cat); err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, slugResp{Name: cat.Name, Slug: cat.Slug})
}

// Delete handles DELETE /v1/categories/:slug (admin only).
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.Categories.Delete(c.Request().Context(), c.Param("slug")); err != nil {
		return apiError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
