package auth

import (
	"context"
	"errors"

	"github.com/reviewhub/reviewhub-api/internal/model"
	"github.com/reviewhub/reviewhub-api/internal/repository"
	"github.com/reviewhub/reviewhub-api/internal/utils"
)

// TokenIssuer validates confirmation codes and mints access tokens.
type TokenIssuer struct {
	Accounts AccountStore
	Ledger   ConfirmationLedger
	Secret   string
	TTLMin   int
}

func NewTokenIssuer(accounts AccountStore, ledger ConfirmationLedger, secret string, ttlMin int) *TokenIssuer {
	return &TokenIssuer{Accounts: accounts, Ledger: ledger, Secret: secret, TTLMin: ttlMin}
}

// Issue exchanges a confirmation code for an access token, or refreshes
// the token of an already-authenticated caller. actor is the
// authenticated caller, nil when unauthenticated.
//
// An unknown username is always repository.ErrNotFound, before any
// activity-state check. An active account whose own session asks for a
// token gets one without a code (fast path). Every other case requires
// the pending code; a correct code is consumed on use in both the
// activation and re-auth paths, so a leftover entry can never be
// replayed.
func (s *TokenIssuer) Issue(ctx context.Context, actor *model.Account, username, code string) (utils.AccessToken, bool, error) {
	account, err := s.Accounts.GetByUsername(ctx, username)
	if err != nil {
		return utils.AccessToken{}, false, err
	}

	// Fast path: identity-matched refresh for an active account.
	if account.IsActive && actor != nil && actor.Username == account.Username {
		tok, err := s.mint(account)
		return tok, false, err
	}

	if code == "" {
		return utils.AccessToken{}, false, validationf("confirmation code is required")
	}
	entry, err := s.Ledger.Get(ctx, account.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.AccessToken{}, false, validationf("incorrect confirmation code")
	}
	if err != nil {
		return utils.AccessToken{}, false, err
	}
	if !utils.VerifyCode(entry.CodeHash, code) {
		return utils.AccessToken{}, false, validationf("incorrect confirmation code")
	}

	activated := false
	if !account.IsActive {
		if err := s.Accounts.Activate(ctx, account.ID); err != nil {
			return utils.AccessToken{}, false, err
		}
		account.IsActive = true
		activated = true
	}
	// The code is consumed on every successful validation. The MySQL
	// store's Activate already removes the entry in its transaction;
	// deleting here as well keeps the guarantee independent of the store.
	if err := s.Ledger.Delete(ctx, account.ID); err != nil {
		return utils.AccessToken{}, false, err
	}

	tok, err := s.mint(account)
	return tok, activated, err
}

func (s *TokenIssuer) mint(account model.Account) (utils.AccessToken, error) {
	return utils.NewAccessToken(s.Secret, account.ID, account.Username, string(account.Role), s.TTLMin)
}
