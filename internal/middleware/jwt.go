package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/reviewhub/reviewhub-api/internal/model"
	"github.com/reviewhub/reviewhub-api/internal/repository"
)

// actorKey is the context key under which the authenticated account is
// stored for the duration of a request.
const actorKey = "actor"

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and resolves the token's subject into a fresh account record. The
// account is stored in the request context under "actor" so handlers can
// pass it explicitly to the authorization guard. Loading the account on
// every request means role changes and deactivations take effect
// immediately instead of at token expiry.
func JWTAuth(secret string, accounts *repository.AccountRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				// Reject tokens signed with anything but HMAC.
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			sub, ok := claims["sub"].(float64) // JWT numbers decode as float64
			if !ok || sub <= 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			account, err := accounts.GetByID(c.Request().Context(), uint64(sub))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown account"})
			}
			if !account.IsActive {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account is not active"})
			}

			c.Set(actorKey, &account)
			return next(c)
		}
	}
}

// OptionalJWTAuth resolves an actor when a valid Bearer token is present
// and otherwise lets the request through unauthenticated. The token
// issuance endpoint uses it: an identity-matched active caller takes the
// fast path, everyone else falls back to code validation.
func OptionalJWTAuth(secret string, accounts *repository.AccountRepo) echo.MiddlewareFunc {
	required := JWTAuth(secret, accounts)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !strings.HasPrefix(c.Request().Header.Get("Authorization"), "Bearer ") {
				return next(c)
			}
			return required(next)(c)
		}
	}
}

// Actor returns the authenticated account for this request, or nil when
// the request is unauthenticated.
func Actor(c echo.Context) *model.Account {
	if a, ok := c.Get(actorKey).(*model.Account); ok {
		return a
	}
	return nil
}
