// Package handler exposes the HTTP surface of the API. Handlers bind
// request DTOs, consult the authorization guard with the request's actor
// and translate service/repository errors into status codes.
package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/reviewhub-api/internal/auth"
	"github.com/reviewhub/reviewhub-api/internal/model"
	"github.com/reviewhub/reviewhub-api/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageParams reads ?page and ?page_size into LIMIT/OFFSET values, with
// bounded defaults.
func pageParams(c echo.Context) (limit, offset int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(c.QueryParam("page_size"))
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return size, (page - 1) * size
}

// idParam parses a numeric path parameter.
func idParam(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// listResp is the envelope for every paginated collection.
type listResp struct {
	Count int `json:"count"`
	Items any `json:"items"`
}

// accountResp is the public projection of an account.
type accountResp struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

func toAccountResp(a model.Account) accountResp {
	return accountResp{
		Username:  a.Username,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Bio:       a.Bio,
		Role:      string(a.Role),
	}
}

// apiError maps service and repository failures onto responses. Anything
// unmatched is a 500 with a generic body so internals never leak.
func apiError(c echo.Context, err error) error {
	var vErr *auth.ValidationError
	var nErr *auth.NotifyError
	switch {
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": vErr.Msg})
	case errors.As(err, &nErr):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "account processed but notification failed"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrUsernameExists),
		errors.Is(err, repository.ErrEmailExists),
		errors.Is(err, repository.ErrSlugExists),
		errors.Is(err, repository.ErrDuplicateReview):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
