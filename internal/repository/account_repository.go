package repository

import (
	"context"
	"database/sql"
	"strings"

	"schooladmin/internal/model"
)

type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

// GetByID fetches an account row by id. Returns ErrNotFound when the id
// matches nothing. The select names only the columns every schema
// generation has; updated_at is absent on old deployments and is never
// read back, so it stays out of the query.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	var a model.Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,password,password_hash FROM users WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.Password, &a.PasswordHash)
	if err == sql.ErrNoRows {
		return a, ErrNotFound
	}
	return a, err
}

// UpdatePassword migrates the account to the current storage scheme: the
// plaintext column takes the new value, the legacy hash is nulled and the
// update timestamp refreshed. Old deployments lack the updated_at column,
// so an unknown-column error (MySQL 1054) retries without it. Returns the
// number of affected rows; zero is a legitimate outcome when the stored
// value already equals the new one.
func (r *AccountRepo) UpdatePassword(ctx context.Context, id uint64, newPassword string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password=?, password_hash=NULL, updated_at=NOW() WHERE id=?",
		newPassword, id)
	if err != nil && strings.Contains(err.Error(), "1054") {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE users SET password=?, password_hash=NULL WHERE id=?",
			newPassword, id)
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
