package model

import "database/sql"

// Account is the password-change subject stored in the `users` table.
// Two password columns coexist: `password` holds the current plaintext
// value and `password_hash` holds a legacy bcrypt hash kept only for
// accounts that never migrated. A successful password change writes the
// plaintext column and nulls the legacy hash, so at most one of the two
// is populated afterwards. The table also carries an updated_at column on
// current schemas; it is write-only here and old deployments lack it, so
// it is not modeled.
type Account struct {
	ID           uint64         // users.id
	Password     sql.NullString // users.password (current scheme, plaintext)
	PasswordHash sql.NullString // users.password_hash (legacy bcrypt)
}
