package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/reviewhub/reviewhub-api/internal/auth"
	"github.com/reviewhub/reviewhub-api/internal/model"
	"github.com/reviewhub/reviewhub-api/internal/repository"
)

// memAccounts is a minimal in-memory auth.AccountStore for HTTP tests.
type memAccounts struct {
	byID   map[uint64]model.Account
	nextID uint64
	ledger *memLedger
}

func (m *memAccounts) GetByUsername(_ context.Context, username string) (model.Account, error) {
	for _, a := range m.byID {
		if a.Username == username {
			return a, nil
		}
	}
	return model.Account{}, repository.ErrNotFound
}

func (m *memAccounts) GetByUsernameAndEmail(_ context.Context, username, email string) (model.Account, error) {
	for _, a := range m.byID {
		if a.Username == username && a.Email == email {
			return a, nil
		}
	}
	return model.Account{}, repository.ErrNotFound
}

func (m *memAccounts) Create(_ context.Context, a *model.Account) error {
	for _, existing := range m.byID {
		if existing.Username == a.Username {
			return repository.ErrUsernameExists
		}
		if existing.Email == a.Email {
			return repository.ErrEmailExists
		}
	}
	m.nextID++
	a.ID = m.nextID
	m.byID[a.ID] = *a
	return nil
}

// Activate drops the confirmation entry along with the flag flip, like
// the transactional MySQL implementation.
func (m *memAccounts) Activate(_ context.Context, id uint64) error {
	a, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.IsActive = true
	m.byID[id] = a
	delete(m.ledger.byAccount, id)
	return nil
}

type memLedger struct {
	byAccount map[uint64]model.Confirmation
}

func (m *memLedger) Upsert(_ context.Context, accountID uint64, codeHash string) error {
	m.byAccount[accountID] = model.Confirmation{AccountID: accountID, CodeHash: codeHash}
	return nil
}

func (m *memLedger) Get(_ context.Context, accountID uint64) (model.Confirmation, error) {
	e, ok := m.byAccount[accountID]
	if !ok {
		return model.Confirmation{}, repository.ErrNotFound
	}
	return e, nil
}

func (m *memLedger) Delete(_ context.Context, accountID uint64) error {
	delete(m.byAccount, accountID)
	return nil
}

type memNotifier struct{ lastCode string }

func (m *memNotifier) Send(_ context.Context, _, code string) error {
	m.lastCode = code
	return nil
}

func newAuthHandler() (*AuthHandler, *memNotifier) {
	ledger := &memLedger{byAccount: make(map[uint64]model.Confirmation)}
	accounts := &memAccounts{byID: make(map[uint64]model.Account), ledger: ledger}
	notifier := &memNotifier{}
	return NewAuthHandler(
		auth.NewRegistration(accounts, ledger, notifier, bcrypt.MinCost),
		auth.NewTokenIssuer(accounts, ledger, "test-secret", 15),
	), notifier
}

func postJSON(t *testing.T, h echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestSignUpCreatesAccount(t *testing.T) {
	h, _ := newAuthHandler()

	rec := postJSON(t, h.SignUp, "/v1/auth/signup",
		`{"username":"capote","email":"truman@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "capote", resp["username"])
	require.Equal(t, "truman@example.com", resp["email"])
}

func TestSignUpResend(t *testing.T) {
	h, _ := newAuthHandler()

	body := `{"username":"capote","email":"truman@example.com"}`
	postJSON(t, h.SignUp, "/v1/auth/signup", body)
	rec := postJSON(t, h.SignUp, "/v1/auth/signup", body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"confirmed":"code sent"}`, rec.Body.String())
}

func TestSignUpDuplicateUsername(t *testing.T) {
	h, _ := newAuthHandler()

	postJSON(t, h.SignUp, "/v1/auth/signup", `{"username":"capote","email":"truman@example.com"}`)
	rec := postJSON(t, h.SignUp, "/v1/auth/signup", `{"username":"capote","email":"other@example.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["error"])
}

func TestIssueTokenActivates(t *testing.T) {
	h, notifier := newAuthHandler()

	postJSON(t, h.SignUp, "/v1/auth/signup", `{"username":"capote","email":"truman@example.com"}`)
	rec := postJSON(t, h.IssueToken, "/v1/auth/token",
		`{"username":"capote","confirmation_code":"`+notifier.lastCode+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
}

func TestIssueTokenWrongCode(t *testing.T) {
	h, _ := newAuthHandler()

	postJSON(t, h.SignUp, "/v1/auth/signup", `{"username":"capote","email":"truman@example.com"}`)
	rec := postJSON(t, h.IssueToken, "/v1/auth/token",
		`{"username":"capote","confirmation_code":"deadbeef"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIssueTokenUnknownUsername(t *testing.T) {
	h, _ := newAuthHandler()

	rec := postJSON(t, h.IssueToken, "/v1/auth/token",
		`{"username":"ghost","confirmation_code":"deadbeef"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
