package repository

import (
	"context"
	"database/sql"

	"schooladmin/internal/model"
)

// AvailabilityRepo answers the dashboard's coverage questions: which
// professors and subjects in the current school year still lack a
// schedule assignment. Both queries are anti-joins against `schedules`.
type AvailabilityRepo struct{ DB *sql.DB }

func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo { return &AvailabilityRepo{DB: db} }

// TeachersWithoutSubjects returns professors of the given school year that
// have no schedule row for that year, ordered by name. The year filter
// sits on both the professor table and the join condition so a schedule
// from another year does not count as coverage.
func (r *AvailabilityRepo) TeachersWithoutSubjects(ctx context.Context, year string) ([]model.Professor, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT p.id, p.name, p.email
		FROM professors p
		LEFT JOIN schedules s ON s.professor_id = p.id AND s.school_year = ?
		WHERE p.school_year = ? AND s.id IS NULL
		ORDER BY p.name ASC`, year, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Professor
	for rows.Next() {
		var p model.Professor
		var email sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &email); err != nil {
			return nil, err
		}
		p.Email = email.String
		p.SchoolYear = year
		out = append(out, p)
	}
	return out, rows.Err()
}

// SubjectsWithoutRooms returns subjects for which no schedule row of the
// given school year carries a room assignment, ordered by code. A subject
// scheduled that year without a room still counts as uncovered.
func (r *AvailabilityRepo) SubjectsWithoutRooms(ctx context.Context, year string) ([]model.Subject, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT sub.id, sub.code, sub.name
		FROM subjects sub
		LEFT JOIN schedules s ON s.subject_id = sub.id AND s.school_year = ? AND s.room_id IS NOT NULL
		WHERE s.id IS NULL
		ORDER BY sub.code ASC`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Code, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
