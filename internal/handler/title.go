package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/reviewhub-api/internal/model"
	"github.com/reviewhub/reviewhub-api/internal/repository"
)

// TitleHandler serves reviewable works: public reads with the computed
// average rating, admin-only writes.
type TitleHandler struct {
	Titles *repository.TitleRepo
}

func NewTitleHandler(titles *repository.TitleRepo) *TitleHandler {
	return &TitleHandler{Titles: titles}
}

type titleReq struct {
	Name        *string  `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"` // category slug
	Genre       []string `json:"genre"`    // genre slugs
}

type titleResp struct {
	ID          uint64     `json:"id"`
	Name        string     `json:"name"`
	Year        int        `json:"year"`
	Description string     `json:"description"`
	Category    *slugResp  `json:"category"`
	Genre       []slugResp `json:"genre"`
	Rating      *float64   `json:"rating"`
}

func toTitleResp(t model.Title) titleResp {
	resp := titleResp{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Genre:       make([]slugResp, 0, len(t.Genres)),
		Rating:      t.Rating,
	}
	if t.Category != nil {
		resp.Category = &slugResp{Name: t.Category.Name, Slug: t.Category.Slug}
	}
	for _, g := range t.Genres {
		resp.Genre = append(resp.Genre, slugResp{Name: g.Name, Slug: g.Slug})
	}
	return resp
}

// List handles GET /v1/titles with category/genre/name/year filters.
func (h *TitleHandler) List(c echo.Context) error {
	limit, offset := pageParams(c)
	year, _ := strconv.Atoi(c.QueryParam("year"))
	filter := repository.TitleFilter{
		Category: strings.TrimSpace(c.QueryParam("category")),
		Genre:    strings.TrimSpace(c.QueryParam("genre")),
		Name:     strings.TrimSpace(c.QueryParam("name")),
		Year:     year,
	}
	titles, total, err := h.Titles.List(c.Request().Context(), filter, limit, offset)
	if err != nil {
		return apiError(c, err)
	}
	items := make([]titleResp, 0, len(titles))
	for _, t := range titles {
		items = append(items, toTitleResp(t))
	}
	return c.JSON(http.StatusOK, listResp{Count: total, Items: items})
}

// Get handles GET /v1/titles/:title_id.
func (h *TitleHandler) Get(c echo.Context) error {
	id, err := idParam(c, "title_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.Titles.GetByID(c.Request().Context(), id)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, toTitleResp(t))
}

// Create handles POST /v1/titles (admin only).
func (h *TitleHandler) Create(c echo.Context) error {
	var req titleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.Year == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year is required"})
	}
	if err := validateYear(*req.Year); err != nil {
		return err
	}

	t := model.Title{Name: strings.TrimSpace(*req.Name), Year: *req.Year}
	if req.Description != nil {
		t.Description = *req.Description
	}
	category := ""
	if req.Category != nil {
		category = *req.Category
	}
	if err := h.Titles.Create(c.Request().Context(), &t, category, req.Genre); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category or genre slug"})
		}
		return apiError(c, err)
	}
	created, err := h.Titles.GetByID(c.Request().Context(), t.ID)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, toTitleResp(created))
}

// Update handles PATCH /v1/titles/:title_id (admin only). Absent fields keep
// their current values; a present genre list replaces the links.
func (h *TitleHandler) Update(c echo.Context) error {
	id, err := idParam(c, "title_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	t, err := h.Titles.GetByID(ctx, id)
	if err != nil {
		return apiError(c, err)
	}

	var req titleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must not be empty"})
		}
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.Year != nil {
		if err := validateYear(*req.Year); err != nil {
			return err
		}
		t.Year = *req.Year
	}
	if req.Description != nil {
		t.Description = *req.Description
	}

	category := ""
	if t.Category != nil {
		category = t.Category.Slug
	}
	if req.Category != nil {
		category = *req.Category
	}
	genres := make([]string, 0, len(t.Genres))
	for _, g := range t.Genres {
		genres = append(genres, g.Slug)
	}
	if req.Genre != nil {
		genres = req.Genre
	}

	if err := h.Titles.Update(ctx, &t, category, genres); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category or genre slug"})
		}
		return apiError(c, err)
	}
	updated, err := h.Titles.GetByID(ctx, id)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, toTitleResp(updated))
}

// Delete handles DELETE /v1/titles/:title_id (admin only).
func (h *TitleHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "title_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Titles.Delete(c.Request().Context(), id); err != nil {
		return apiError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func validateYear(year int) error {
	if year < 0 || year > time.Now().UTC().Year() {
		return echo.NewHTTPError(http.StatusBadRequest, "year must not be in the future")
	}
	return nil
}
