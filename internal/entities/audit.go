package entities

import "time"

type AuditEntry struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Action    string    `db:"action"`
	Details   string    `db:"details"`
	Timestamp time.Time `db:"timestamp"`
}
