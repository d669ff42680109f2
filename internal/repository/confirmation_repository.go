package repository

import (
	"context"
	"database/sql"

	"github.com/reviewhub/reviewhub-api/internal/model"
)

// ConfirmationRepo is the confirmation ledger: at most one pending code
// hash per account, keyed by account id.
type ConfirmationRepo struct{ DB *sql.DB }

func NewConfirmationRepo(db *sql.DB) *ConfirmationRepo { return &ConfirmationRepo{DB: db} }

// Upsert creates or replaces the account's entry with a new code hash in a
// single atomic statement; concurrent registrations for the same account
// serialize on the primary key.
func (r *ConfirmationRepo) Upsert(ctx context.Context, accountID uint64, codeHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO confirmations (account_id, code_hash) VALUES (?,?) ON DUPLICATE KEY UPDATE code_hash=VALUES(code_hash)",
		accountID, codeHash)
	return err
}

// Get returns the pending entry for an account, or ErrNotFound.
func (r *ConfirmationRepo) Get(ctx context.Context, accountID uint64) (model.Confirmation, error) {
	var e model.Confirmation
	err := r.DB.QueryRowContext(ctx,
		"SELECT account_id, code_hash, created_at, updated_at FROM confirmations WHERE account_id=? LIMIT 1",
		accountID).Scan(&e.AccountID, &e.CodeHash, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return e, ErrNotFound
	}
	return e, err
}

// Delete removes the entry after the code has been consumed.
func (r *ConfirmationRepo) Delete(ctx context.Context, accountID uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM confirmations WHERE account_id=?", accountID)
	return err
}
