package model

// Professor represents a row in the `professors` table. Professors are
// scoped to a school year; the same person appearing in two years is two
// rows with distinct ids.
type Professor struct {
	ID         uint64 // professors.id
	Name       string // professors.name
	Email      string // professors.email (may be empty)
	SchoolYear string // professors.school_year
}

// Subject represents a row in the `subjects` table. Subjects are global;
// they are tied to a school year only through rows in `schedules`, the
// association table the coverage anti-joins probe. Schedule rows are
// never materialized here, so that table gets no struct.
type Subject struct {
	ID   uint64 // subjects.id
	Code string // subjects.code
	Name string // subjects.name
}
