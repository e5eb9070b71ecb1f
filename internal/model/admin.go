package model

import "time"

// Admin represents a row in the `admins` table.  Administrators
// authenticate with a bcrypt password hash; accounts can be switched
// off without being deleted via the IsActive flag.
//
// Fields:
//  ID           – primary key identifier of the administrator.
//  Username     – unique login name.
//  Email        – unique email address; also accepted at login.
//  Name         – display name shown in the dashboard.
//  PasswordHash – bcrypt hashed password.
//  IsActive     – whether the account may authenticate.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Admin struct {
	ID           uint64    // admins.id
	Username     string    // admins.username
	Email        string    // admins.email
	Name         string    // admins.name
	PasswordHash string    // admins.password_hash
	IsActive     bool      // admins.is_active
	CreatedAt    time.Time // admins.created_at
	UpdatedAt    time.Time // admins.updated_at
}
