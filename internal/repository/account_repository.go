package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/reviewhub/reviewhub-api/internal/model"
)

const accountColumns = "id,username,email,first_name,last_name,bio,role,is_active,is_staff,is_superuser,created_at,updated_at"

// AccountRepo persists identity records in the 'accounts' table.
type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

func scanAccount(row interface{ Scan(...any) error }) (model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.FirstName, &a.LastName, &a.Bio,
		&a.Role, &a.IsActive, &a.IsStaff, &a.IsSuperuser, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// dupErr maps MySQL duplicate-key failures (error 1062) onto the
// username/email sentinels. The unique key names appear in the error text.
func dupErr(err error) error {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return err
	}
	if strings.Contains(msg, "email") {
		return ErrEmailExists
	}
	return ErrUsernameExists
}

// Create inserts a new account and fills in its ID. Uniqueness of username
// and email is arbitrated by the table's unique keys, so concurrent inserts
// of the same identity serialize in the database rather than in Go.
func (r *AccountRepo) Create(ctx context.Context, a *model.Account) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (username,email,first_name,last_name,bio,role,is_active,is_staff,is_superuser) VALUES (?,?,?,?,?,?,?,?,?)",
		a.Username, a.Email, a.FirstName, a.LastName, a.Bio, string(a.Role), a.IsActive, a.IsStaff, a.IsSuperuser)
	if err != nil {
		return dupErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID fetches an account by primary key.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	a, err := scanAccount(r.DB.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return a, ErrNotFound
	}
	return a, err
}

// GetByUsername fetches an account by its unique username.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (model.Account, error) {
	a, err := scanAccount(r.DB.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE username=? LIMIT 1", username))
	if err == sql.ErrNoRows {
		return a, ErrNotFound
	}
	return a, err
}

// GetByUsernameAndEmail fetches an account matching the exact identity
// pair. Registration uses this to recognize a resend request.
func (r *AccountRepo) GetByUsernameAndEmail(ctx context.Context, username, email string) (model.Account, error) {
	a, err := scanAccount(r.DB.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE username=? AND email=? LIMIT 1", username, email))
	if err == sql.ErrNoRows {
		return a, ErrNotFound
	}
	return a, err
}

// UpdateProfile updates the mutable profile attributes of an account.
// Role and the privilege flags are deliberately not part of this
// statement; they change only through the admin surface.
func (r *AccountRepo) UpdateProfile(ctx context.Context, id uint64, username, email, firstName, lastName, bio string) error {
	// RowsAffected is not checked: MySQL reports zero for no-op updates
	// and callers verify existence before calling.
	_, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET username=?, email=?, first_name=?, last_name=?, bio=? WHERE id=?",
		username, email, firstName, lastName, bio, id)
	if err != nil {
		return dupErr(err)
	}
	return nil
}

// Update rewrites all mutable columns including role. Admin surface only.
func (r *AccountRepo) Update(ctx context.Context, a *model.Account) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET username=?, email=?, first_name=?, last_name=?, bio=?, role=?, is_active=? WHERE id=?",
		a.Username, a.Email, a.FirstName, a.LastName, a.Bio, string(a.Role), a.IsActive, a.ID)
	if err != nil {
		return dupErr(err)
	}
	return nil
}

// Activate flips the account to active and removes its confirmation entry
// in a single transaction, so a crash cannot leave an activated account
// with a replayable code.
func (r *AccountRepo) Activate(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "UPDATE accounts SET is_active=1 WHERE id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM confirmations WHERE account_id=?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// List returns a page of accounts ordered by username, optionally filtered
// by a username substring, along with the total match count.
func (r *AccountRepo) List(ctx context.Context, search string, limit, offset int) ([]model.Account, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = " WHERE username LIKE ?"
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+accountColumns+" FROM accounts"+where+" ORDER BY username LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Account, 0, limit)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

// Delete removes an account by username.
func (r *AccountRepo) Delete(ctx context.Context, username string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM accounts WHERE username=?", username)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
