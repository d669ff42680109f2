// Package auth implements the registration / confirmation-code / token
// issuance flow and the authorization guard that gates every other
// resource. Services accept their collaborators as interfaces so the
// state-transition logic is testable without a database.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/reviewhub/reviewhub-api/internal/model"
	"github.com/reviewhub/reviewhub-api/internal/repository"
	"github.com/reviewhub/reviewhub-api/internal/utils"
)

// AccountStore is the identity persistence consumed by the auth services.
// *repository.AccountRepo satisfies it.
//
// Activate marks the account active and drops its pending confirmation
// entry; stores backed by a transactional database must do both in one
// transaction. TokenIssuer also deletes the entry through the Ledger, so
// the single-use guarantee does not hinge on this coupling alone.
type AccountStore interface {
	GetByUsername(ctx context.Context, username string) (model.Account, error)
	GetByUsernameAndEmail(ctx context.Context, username, email string) (model.Account, error)
	Create(ctx context.Context, a *model.Account) error
	Activate(ctx context.Context, id uint64) error
}

// ConfirmationLedger holds at most one pending code hash per account.
// *repository.ConfirmationRepo satisfies it.
type ConfirmationLedger interface {
	Upsert(ctx context.Context, accountID uint64, codeHash string) error
	Get(ctx context.Context, accountID uint64) (model.Confirmation, error)
	Delete(ctx context.Context, accountID uint64) error
}

// Notifier dispatches a confirmation code to an address. Dispatch failure
// fails the whole registration request.
type Notifier interface {
	Send(ctx context.Context, toAddress, code string) error
}

// Registration creates or reuses an account, rotates its confirmation
// code and dispatches the code through the notifier.
type Registration struct {
	Accounts   AccountStore
	Ledger     ConfirmationLedger
	Notifier   Notifier
	BcryptCost int
}

func NewRegistration(accounts AccountStore, ledger ConfirmationLedger, n Notifier, bcryptCost int) *Registration {
	return &Registration{Accounts: accounts, Ledger: ledger, Notifier: n, BcryptCost: bcryptCost}
}

// Register handles a signup request. actor is the authenticated caller,
// nil for anonymous signup.
//
// A request whose (username, email) pair exactly matches an existing
// account is a resend: no new account, a fresh code replaces the old one
// and resent is true. Any other duplicate or malformed identity is a
// ValidationError with no side effects. A brand-new identity creates an
// account, inactive unless the actor carries admin authority.
func (s *Registration) Register(ctx context.Context, actor *model.Account, username, email string) (model.Account, bool, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	// Format rules come first: a malformed identity is rejected even if
	// an out-of-band import left a matching account behind.
	if err := ValidateUsername(username); err != nil {
		return model.Account{}, false, err
	}
	if err := ValidateEmail(email); err != nil {
		return model.Account{}, false, err
	}

	account, err := s.Accounts.GetByUsernameAndEmail(ctx, username, email)
	switch {
	case err == nil:
		// Exact pair already registered: reissue the code below.
		return account, true, s.issueCode(ctx, account)
	case !errors.Is(err, repository.ErrNotFound):
		return model.Account{}, false, err
	}

	account = model.Account{
		Username: username,
		Email:    email,
		Role:     model.RoleUser,
		IsActive: actor != nil && actor.IsAdmin(),
	}
	if err := s.Accounts.Create(ctx, &account); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists), errors.Is(err, repository.ErrEmailExists):
			// A concurrent signup may have inserted the exact pair between
			// our lookup and the insert; re-check before rejecting.
			if existing, lookupErr := s.Accounts.GetByUsernameAndEmail(ctx, username, email); lookupErr == nil {
				return existing, true, s.issueCode(ctx, existing)
			}
			return model.Account{}, false, validationf("%s", err.Error())
		default:
			return model.Account{}, false, err
		}
	}

	return account, false, s.issueCode(ctx, account)
}

// issueCode rotates the account's confirmation code and dispatches it.
// The previous code, if any, stops working the moment the upsert lands.
func (s *Registration) issueCode(ctx context.Context, account model.Account) error {
	code, err := utils.NewConfirmationCode()
	if err != nil {
		return err
	}
	hash, err := utils.HashCode(code, s.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.Ledger.Upsert(ctx, account.ID, hash); err != nil {
		return err
	}
	if err := s.Notifier.Send(ctx, account.Email, code); err != nil {
		return &NotifyError{Err: err}
	}
	return nil
}
