package repository

import (
	"context"
	"database/sql"
	"strings"
)

type SettingRepo struct{ DB *sql.DB }

func NewSettingRepo(db *sql.DB) *SettingRepo { return &SettingRepo{DB: db} }

// CurrentSchoolYear resolves the school year scoping all availability
// queries. A missing row, NULL value or blank string all surface as
// ErrNoSchoolYear.
func (r *SettingRepo) CurrentSchoolYear(ctx context.Context) (string, error) {
	var v sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT value FROM system_settings WHERE name='current_school_year' LIMIT 1").Scan(&v)
	if err == sql.ErrNoRows {
		return "", ErrNoSchoolYear
	}
	if err != nil {
		return "", err
	}
	year := strings.TrimSpace(v.String)
	if !v.Valid || year == "" {
		return "", ErrNoSchoolYear
	}
	return year, nil
}
