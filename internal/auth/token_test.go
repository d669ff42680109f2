package auth

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/reviewhub/reviewhub-api/internal/model"
	"github.com/reviewhub/reviewhub-api/internal/repository"
)

// signUp registers a fresh account and returns it with the code the
// notifier delivered.
func signUp(t *testing.T, env *authEnv, actor *model.Account, username, email string) (model.Account, string) {
	t.Helper()
	account, _, err := env.reg.Register(context.Background(), actor, username, email)
	require.NoError(t, err)
	return account, env.notifier.lastCode
}

func parseClaims(t *testing.T, secret, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestIssueUnknownUsername(t *testing.T) {
	env := newAuthEnv()

	_, _, err := env.tokens.Issue(context.Background(), nil, "ghost", "whatever")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestIssueActivatesAccount(t *testing.T) {
	env := newAuthEnv()
	ctx := context.Background()
	account, code := signUp(t, env, nil, "capote", "truman@example.com")

	tok, activated, err := env.tokens.Issue(ctx, nil, "capote", code)
	require.NoError(t, err)
	require.True(t, activated)
	require.NotEmpty(t, tok.Token)

	stored, err := env.accounts.GetByUsername(ctx, "capote")
	require.NoError(t, err)
	require.True(t, stored.IsActive)

	claims := parseClaims(t, "test-secret", tok.Token)
	require.Equal(t, float64(account.ID), claims["sub"])
	require.Equal(t, "capote", claims["username"])
	require.Equal(t, string(model.RoleUser), claims["role"])
}

func TestIssueRequiresCode(t *testing.T) {
	env := newAuthEnv()
	signUp(t, env, nil, "capote", "truman@example.com")

	_, _, err := env.tokens.Issue(context.Background(), nil, "capote", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestIssueWrongCode(t *testing.T) {
	env := newAuthEnv()
	signUp(t, env, nil, "capote", "truman@example.com")

	_, _, err := env.tokens.Issue(context.Background(), nil, "capote", "deadbeef")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "incorrect confirmation code", verr.Msg)
}

func TestIssueCodeIsSingleUse(t *testing.T) {
	env := newAuthEnv()
	ctx := context.Background()
	account, code := signUp(t, env, nil, "capote", "truman@example.com")

	_, _, err := env.tokens.Issue(ctx, nil, "capote", code)
	require.NoError(t, err)

	_, err = env.ledger.Get(ctx, account.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, _, err = env.tokens.Issue(ctx, nil, "capote", code)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestIssueReauthConsumesCode(t *testing.T) {
	env := newAuthEnv()
	ctx := context.Background()
	admin := &model.Account{ID: 99, Username: "root", Role: model.RoleAdmin, IsActive: true}

	// Admin-created accounts start active but still receive a code.
	account, code := signUp(t, env, admin, "staffer", "staffer@example.com")
	require.True(t, account.IsActive)

	tok, activated, err := env.tokens.Issue(ctx, nil, "staffer", code)
	require.NoError(t, err)
	require.False(t, activated)
	require.NotEmpty(t, tok.Token)

	_, err = env.ledger.Get(ctx, account.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestIssueFastPathForOwnSession(t *testing.T) {
	env := newAuthEnv()
	ctx := context.Background()
	_, code := signUp(t, env, nil, "capote", "truman@example.com")

	_, _, err := env.tokens.Issue(ctx, nil, "capote", code)
	require.NoError(t, err)

	// The account is now active; its own session refreshes without a code
	// and without touching the ledger.
	active, err := env.accounts.GetByUsername(ctx, "capote")
	require.NoError(t, err)
	tok, activated, err := env.tokens.Issue(ctx, &active, "capote", "")
	require.NoError(t, err)
	require.False(t, activated)
	require.NotEmpty(t, tok.Token)
}

func TestIssueFastPathRequiresIdentityMatch(t *testing.T) {
	env := newAuthEnv()
	ctx := context.Background()
	_, code := signUp(t, env, nil, "capote", "truman@example.com")

	_, _, err := env.tokens.Issue(ctx, nil, "capote", code)
	require.NoError(t, err)

	// A different caller cannot refresh capote's token without a code,
	// even though the account is active.
	other := &model.Account{ID: 42, Username: "intruder", Role: model.RoleUser, IsActive: true}
	_, _, err = env.tokens.Issue(ctx, other, "capote", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
