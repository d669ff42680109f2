package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/reviewhub/reviewhub-api/internal/model"
	"github.com/reviewhub/reviewhub-api/internal/repository"
	"github.com/reviewhub/reviewhub-api/internal/utils"
)

// fakeAccounts is an in-memory AccountStore with the same uniqueness and
// activation semantics as the MySQL repository.
type fakeAccounts struct {
	byID   map[uint64]model.Account
	nextID uint64
	ledger *fakeLedger
}

func newFakeAccounts(ledger *fakeLedger) *fakeAccounts {
	return &fakeAccounts{byID: make(map[uint64]model.Account), ledger: ledger}
}

func (f *fakeAccounts) GetByUsername(_ context.Context, username string) (model.Account, error) {
	for _, a := range f.byID {
		if a.Username == username {
			return a, nil
		}
	}
	return model.Account{}, repository.ErrNotFound
}

func (f *fakeAccounts) GetByUsernameAndEmail(_ context.Context, username, email string) (model.Account, error) {
	for _, a := range f.byID {
		if a.Username == username && a.Email == email {
			return a, nil
		}
	}
	return model.Account{}, repository.ErrNotFound
}

func (f *fakeAccounts) Create(_ context.Context, a *model.Account) error {
	for _, existing := range f.byID {
		if existing.Username == a.Username {
			return repository.ErrUsernameExists
		}
		if existing.Email == a.Email {
			return repository.ErrEmailExists
		}
	}
	f.nextID++
	a.ID = f.nextID
	f.byID[a.ID] = *a
	return nil
}

// Activate flips the account active and drops its confirmation entry,
// like the transactional MySQL implementation.
func (f *fakeAccounts) Activate(_ context.Context, id uint64) error {
	a, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.IsActive = true
	f.byID[id] = a
	delete(f.ledger.byAccount, id)
	return nil
}

type fakeLedger struct {
	byAccount map[uint64]model.Confirmation
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{byAccount: make(map[uint64]model.Confirmation)}
}

func (f *fakeLedger) Upsert(_ context.Context, accountID uint64, codeHash string) error {
	f.byAccount[accountID] = model.Confirmation{AccountID: accountID, CodeHash: codeHash}
	return nil
}

func (f *fakeLedger) Get(_ context.Context, accountID uint64) (model.Confirmation, error) {
	entry, ok := f.byAccount[accountID]
	if !ok {
		return model.Confirmation{}, repository.ErrNotFound
	}
	return entry, nil
}

func (f *fakeLedger) Delete(_ context.Context, accountID uint64) error {
	delete(f.byAccount, accountID)
	return nil
}

type fakeNotifier struct {
	lastTo   string
	lastCode string
	sends    int
	err      error
}

func (f *fakeNotifier) Send(_ context.Context, toAddress, code string) error {
	if f.err != nil {
		return f.err
	}
	f.sends++
	f.lastTo = toAddress
	f.lastCode = code
	return nil
}

type authEnv struct {
	accounts *fakeAccounts
	ledger   *fakeLedger
	notifier *fakeNotifier
	reg      *Registration
	tokens   *TokenIssuer
}

func newAuthEnv() *authEnv {
	ledger := newFakeLedger()
	accounts := newFakeAccounts(ledger)
	notifier := &fakeNotifier{}
	return &authEnv{
		accounts: accounts,
		ledger:   ledger,
		notifier: notifier,
		reg:      NewRegistration(accounts, ledger, notifier, bcrypt.MinCost),
		tokens:   NewTokenIssuer(accounts, ledger, "test-secret", 15),
	}
}

func TestRegisterCreatesInactiveAccount(t *testing.T) {
	env := newAuthEnv()

	account, resent, err := env.reg.Register(context.Background(), nil, "capote", "truman@example.com")
	require.NoError(t, err)
	require.False(t, resent)
	require.NotZero(t, account.ID)
	require.Equal(t, model.RoleUser, account.Role)
	require.False(t, account.IsActive)

	require.Equal(t, 1, env.notifier.sends)
	require.Equal(t, "truman@example.com", env.notifier.lastTo)
	require.NotEmpty(t, env.notifier.lastCode)

	entry, err := env.ledger.Get(context.Background(), account.ID)
	require.NoError(t, err)
	require.True(t, utils.VerifyCode(entry.CodeHash, env.notifier.lastCode))
}

func TestRegisterAdminActorCreatesActiveAccount(t *testing.T) {
	env := newAuthEnv()
	admin := &model.Account{ID: 99, Username: "root", Role: model.RoleAdmin, IsActive: true}

	account, resent, err := env.reg.Register(context.Background(), admin, "newbie", "newbie@example.com")
	require.NoError(t, err)
	require.False(t, resent)
	require.True(t, account.IsActive)
	require.Equal(t, model.RoleUser, account.Role)
}

func TestRegisterResendRotatesCode(t *testing.T) {
	env := newAuthEnv()
	ctx := context.Background()

	first, _, err := env.reg.Register(ctx, nil, "capote", "truman@example.com")
	require.NoError(t, err)
	firstCode := env.notifier.lastCode

	second, resent, err := env.reg.Register(ctx, nil, "capote", "truman@example.com")
	require.NoError(t, err)
	require.True(t, resent)
	require.Equal(t, first.ID, second.ID)
	require.Len(t, env.accounts.byID, 1)

	require.NotEqual(t, firstCode, env.notifier.lastCode)
	entry, err := env.ledger.Get(ctx, first.ID)
	require.NoError(t, err)
	require.False(t, utils.VerifyCode(entry.CodeHash, firstCode), "old code must stop working")
	require.True(t, utils.VerifyCode(entry.CodeHash, env.notifier.lastCode))
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	env := newAuthEnv()
	ctx := context.Background()

	_, _, err := env.reg.Register(ctx, nil, "capote", "truman@example.com")
	require.NoError(t, err)

	_, _, err = env.reg.Register(ctx, nil, "capote", "other@example.com")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, env.accounts.byID, 1)
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	env := newAuthEnv()
	ctx := context.Background()

	_, _, err := env.reg.Register(ctx, nil, "capote", "truman@example.com")
	require.NoError(t, err)

	_, _, err = env.reg.Register(ctx, nil, "other", "truman@example.com")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, env.accounts.byID, 1)
}

func TestRegisterRejectsBadIdentity(t *testing.T) {
	cases := []struct {
		name     string
		username string
		email    string
	}{
		{"reserved username", "me", "me@example.com"},
		{"empty username", "", "a@example.com"},
		{"username with space", "bad name", "a@example.com"},
		{"invalid email", "fine", "not-an-email"},
		{"empty email", "fine", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newAuthEnv()
			_, _, err := env.reg.Register(context.Background(), nil, tc.username, tc.email)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Empty(t, env.accounts.byID)
			require.Zero(t, env.notifier.sends)
		})
	}
}

func TestRegisterRejectsMalformedIdentityEvenWhenAccountExists(t *testing.T) {
	env := newAuthEnv()
	ctx := context.Background()

	// An out-of-band import may leave an account whose username would not
	// pass signup validation. Signing up with that exact pair must still
	// be a validation failure, not a resend.
	env.accounts.nextID++
	env.accounts.byID[env.accounts.nextID] = model.Account{
		ID: env.accounts.nextID, Username: "bad name", Email: "legacy@example.com", Role: model.RoleUser,
	}

	_, resent, err := env.reg.Register(ctx, nil, "bad name", "legacy@example.com")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.False(t, resent)
	require.Zero(t, env.notifier.sends)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	env := newAuthEnv()

	account, _, err := env.reg.Register(context.Background(), nil, "capote", "  Truman@Example.COM ")
	require.NoError(t, err)
	require.Equal(t, "truman@example.com", account.Email)
}

func TestRegisterNotifierFailure(t *testing.T) {
	env := newAuthEnv()
	env.notifier.err = errors.New("broker down")

	account, _, err := env.reg.Register(context.Background(), nil, "capote", "truman@example.com")
	var nerr *NotifyError
	require.ErrorAs(t, err, &nerr)

	// The account and its code were still persisted; a later resend can
	// deliver a fresh code.
	require.NotZero(t, account.ID)
	require.Len(t, env.accounts.byID, 1)
	_, err = env.ledger.Get(context.Background(), account.ID)
	require.NoError(t, err)
}
