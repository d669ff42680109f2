package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/reviewhub-api/internal/auth"
	"github.com/reviewhub/reviewhub-api/internal/model"
	"github.com/reviewhub/reviewhub-api/internal/repository"
)

// UsersHandler is the admin-only surface over the accounts collection.
// The RequireAdmin middleware runs before every method here, reads
// included, so the handlers do not re-check the guard.
type UsersHandler struct {
	Accounts *repository.AccountRepo
}

func NewUsersHandler(accounts *repository.AccountRepo) *UsersHandler {
	return &UsersHandler{Accounts: accounts}
}

type adminUserReq struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// List handles GET /v1/users with ?search= username substring filtering.
func (h *UsersHandler) List(c echo.Context) error {
	limit, offset := pageParams(c)
	accounts, total, err := h.Accounts.List(c.Request().Context(),
		strings.TrimSpace(c.QueryParam("search")), limit, offset)
	if err != nil {
		return apiError(c, err)
	}
	items := make([]accountResp, 0, len(accounts))
	for _, a := range accounts {
		items = append(items, toAccountResp(a))
	}
	return c.JSON(http.StatusOK, listResp{Count: total, Items: items})
}

// Create handles POST /v1/users. Admin-provisioned accounts start active
// and need no confirmation round trip.
func (h *UsersHandler) Create(c echo.Context) error {
	var req adminUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Username == nil || req.Email == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and email are required"})
	}
	if err := auth.ValidateUsername(*req.Username); err != nil {
		return apiError(c, err)
	}
	email := strings.ToLower(strings.TrimSpace(*req.Email))
	if err := auth.ValidateEmail(email); err != nil {
		return apiError(c, err)
	}

	account := model.Account{
		Username: *req.Username,
		Email:    email,
		Role:     model.RoleUser,
		IsActive: true,
	}
	if req.FirstName != nil {
		account.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		account.LastName = *req.LastName
	}
	if req.Bio != nil {
		account.Bio = *req.Bio
	}
	if req.Role != nil {
		role := model.Role(*req.Role)
		if !role.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
		}
		account.Role = role
	}

	if err := h.Accounts.Create(c.Request().Context(), &account); err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, toAccountResp(account))
}

// Get handles GET /v1/users/:username.
func (h *UsersHandler) Get(c echo.Context) error {
	account, err := h.Accounts.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, toAccountResp(account))
}

// Update handles PATCH /v1/users/:username. Unlike the self-profile
// surface, admins may change the role.
func (h *UsersHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	account, err := h.Accounts.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		return apiError(c, err)
	}

	var req adminUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Username != nil {
		if err := auth.ValidateUsername(*req.Username); err != nil {
			return apiError(c, err)
		}
		account.Username = *req.Username
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if err := auth.ValidateEmail(email); err != nil {
			return apiError(c, err)
		}
		account.Email = email
	}
	if req.FirstName != nil {
		account.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		account.LastName = *req.LastName
	}
	if req.Bio != nil {
		account.Bio = *req.Bio
	}
	if req.Role != nil {
		role := model.Role(*req.Role)
		if !role.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
		}
		account.Role = role
	}

	if err := h.Accounts.Update(ctx, &account); err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, toAccountResp(account))
}

// Delete handles DELETE /v1/users/:username.
func (h *UsersHandler) Delete(c echo.Context) error {
	if err := h.Accounts.Delete(c.Request().Context(), c.Param("username")); err != nil {
		return apiError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
