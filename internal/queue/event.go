// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into an audit log.
package queue

// PasswordChangedEvent is published after a user password change commits.
// It carries enough for downstream consumers to log or alert without
// querying the primary database. The password itself never travels.
type PasswordChangedEvent struct {
	UserID    string `json:"user_id"`
	RemoteIP  string `json:"remote_ip"`
	ChangedAt string `json:"changed_at"`
}
