package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"schooladmin/internal/model"
	"schooladmin/internal/utils"
)

type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

var ErrAdminExists = errors.New("admin already exists")

// Create inserts an active administrator with a bcrypt-hashed password
// and returns its ID. Only the seeding tool calls this; the API itself
// never creates admins.
func (r *AdminRepo) Create(ctx context.Context, username, email, name, password string, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO admins (username, email, name, password_hash, is_active) VALUES (?,?,?,?,1)",
		username, email, name, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrAdminExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// FindByLogin fetches an administrator whose username or email exactly
// equals the given login. The value is passed as a bind parameter on both
// sides; it is never spliced into the SQL text.
func (r *AdminRepo) FindByLogin(ctx context.Context, login string) (model.Admin, error) {
	login = strings.TrimSpace(login)
	var a model.Admin
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,email,name,password_hash,is_active FROM admins WHERE username=? OR email=? LIMIT 1",
		login, login).Scan(&a.ID, &a.Username, &a.Email, &a.Name, &a.PasswordHash, &a.IsActive)
	return a, err
}
