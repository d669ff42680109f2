package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/reviewhub/reviewhub-api/internal/model"
)

// newMock returns a repo-ready mock DB that matches SQL by exact string,
// since the repositories build their statements verbatim.
func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func accountRows(a model.Account) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "email", "first_name", "last_name", "bio",
		"role", "is_active", "is_staff", "is_superuser", "created_at", "updated_at",
	}).AddRow(a.ID, a.Username, a.Email, a.FirstName, a.LastName, a.Bio,
		string(a.Role), a.IsActive, a.IsStaff, a.IsSuperuser, a.CreatedAt, a.UpdatedAt)
}

func TestAccountCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepo(db)

	mock.ExpectExec("INSERT INTO accounts (username,email,first_name,last_name,bio,role,is_active,is_staff,is_superuser) VALUES (?,?,?,?,?,?,?,?,?)").
		WithArgs("capote", "truman@example.com", "", "", "", "user", false, false, false).
		WillReturnResult(sqlmock.NewResult(5, 1))

	a := model.Account{Username: "capote", Email: "truman@example.com", Role: model.RoleUser}
	require.NoError(t, repo.Create(context.Background(), &a))
	require.Equal(t, uint64(5), a.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountCreateDuplicate(t *testing.T) {
	cases := []struct {
		name string
		dup  error
		want error
	}{
		{
			"email key",
			errors.New("Error 1062 (23000): Duplicate entry 'truman@example.com' for key 'accounts.uq_accounts_email'"),
			ErrEmailExists,
		},
		{
			"username key",
			errors.New("Error 1062 (23000): Duplicate entry 'capote' for key 'accounts.uq_accounts_username'"),
			ErrUsernameExists,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewAccountRepo(db)

			mock.ExpectExec("INSERT INTO accounts (username,email,first_name,last_name,bio,role,is_active,is_staff,is_superuser) VALUES (?,?,?,?,?,?,?,?,?)").
				WillReturnError(tc.dup)

			a := model.Account{Username: "capote", Email: "truman@example.com", Role: model.RoleUser}
			require.ErrorIs(t, repo.Create(context.Background(), &a), tc.want)
		})
	}
}

func TestAccountGetByUsername(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepo(db)

	now := time.Now().UTC()
	want := model.Account{
		ID: 5, Username: "capote", Email: "truman@example.com",
		Role: model.RoleUser, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	mock.ExpectQuery("SELECT "+accountColumns+" FROM accounts WHERE username=? LIMIT 1").
		WithArgs("capote").
		WillReturnRows(accountRows(want))

	got, err := repo.GetByUsername(context.Background(), "capote")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestAccountGetByUsernameNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepo(db)

	mock.ExpectQuery("SELECT "+accountColumns+" FROM accounts WHERE username=? LIMIT 1").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAccountActivate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE accounts SET is_active=1 WHERE id=?").
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM confirmations WHERE account_id=?").
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Activate(context.Background(), 5))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountListWithSearch(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepo(db)

	mock.ExpectQuery("SELECT COUNT(*) FROM accounts WHERE username LIKE ?").
		WithArgs("%cap%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT "+accountColumns+" FROM accounts WHERE username LIKE ? ORDER BY username LIMIT ? OFFSET ?").
		WithArgs("%cap%", 20, 0).
		WillReturnRows(accountRows(model.Account{ID: 5, Username: "capote", Role: model.RoleUser}))

	accounts, total, err := repo.List(context.Background(), "cap", 20, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, accounts, 1)
	require.Equal(t, "capote", accounts[0].Username)
}

func TestAccountDelete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepo(db)

	mock.ExpectExec("DELETE FROM accounts WHERE username=?").
		WithArgs("capote").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "capote"))

	mock.ExpectExec("DELETE FROM accounts WHERE username=?").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.Delete(context.Background(), "ghost"), ErrNotFound)
}
