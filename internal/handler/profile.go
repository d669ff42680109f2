package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/reviewhub-api/internal/auth"
	"github.com/reviewhub/reviewhub-api/internal/middleware"
	"github.com/reviewhub/reviewhub-api/internal/repository"
)

// ProfileHandler serves the authenticated account's own profile.
type ProfileHandler struct {
	Accounts *repository.AccountRepo
}

func NewProfileHandler(accounts *repository.AccountRepo) *ProfileHandler {
	return &ProfileHandler{Accounts: accounts}
}

type profilePatchReq struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	// role is deliberately absent: it is read-only on this surface.
}

// Me handles GET /v1/users/me.
func (h *ProfileHandler) Me(c echo.Context) error {
	actor := middleware.Actor(c)
	if actor == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, toAccountResp(*actor))
}

// UpdateMe handles PATCH /v1/users/me. Only profile attributes change;
// role and privilege flags are untouchable here no matter who calls.
func (h *ProfileHandler) UpdateMe(c echo.Context) error {
	actor := middleware.Actor(c)
	if actor == nil || !auth.CanUpdateProfile(actor, actor.ID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	var req profilePatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	updated := *actor
	if req.Username != nil {
		if err := auth.ValidateUsername(*req.Username); err != nil {
			return apiError(c, err)
		}
		updated.Username = *req.Username
	}
	if req.Email != nil {
		if err := auth.ValidateEmail(*req.Email); err != nil {
			return apiError(c, err)
		}
		updated.Email = *req.Email
	}
	if req.FirstName != nil {
		updated.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		updated.LastName = *req.LastName
	}
	if req.Bio != nil {
		updated.Bio = *req.Bio
	}

	ctx := c.Request().Context()
	if err := h.Accounts.UpdateProfile(ctx, updated.ID, updated.Username, updated.Email,
		updated.FirstName, updated.LastName, updated.Bio); err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, toAccountResp(updated))
}
