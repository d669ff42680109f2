package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/reviewhub-api/internal/auth"
	"github.com/reviewhub/reviewhub-api/internal/middleware"
)

// AuthHandler bundles the registration and token issuance services.
type AuthHandler struct {
	Registration *auth.Registration
	Tokens       *auth.TokenIssuer
}

func NewAuthHandler(r *auth.Registration, t *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{Registration: r, Tokens: t}
}

// ----- DTOs -----

type signupReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenReq struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

type signupResp struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SignUp handles POST /v1/auth/signup. A repeated signup with the same
// identity pair reissues the code; the response body stays generic so it
// does not reveal whether the account already existed.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	account, resent, err := h.Registration.Register(ctx, middleware.Actor(c), req.Username, req.Email)
	if err != nil {
		return apiError(c, err)
	}
	if resent {
		return c.JSON(http.StatusOK, echo.Map{"confirmed": "code sent"})
	}
	return c.JSON(http.StatusOK, signupResp{Username: account.Username, Email: account.Email})
}

// IssueToken handles POST /v1/auth/token. First-time activation answers
// 201; an identity-matched refresh answers 200.
func (h *AuthHandler) IssueToken(c echo.Context) error {
	var req tokenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tok, activated, err := h.Tokens.Issue(ctx, middleware.Actor(c), username, strings.TrimSpace(req.ConfirmationCode))
	if err != nil {
		return apiError(c, err)
	}
	status := http.StatusOK
	if activated {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{"token": tok.Token})
}
