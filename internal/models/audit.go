package models

import "time"

type AuditAction string

const (
	ActionCreateIPB   AuditAction = "CREATE_IPB"
	ActionUpdateIPB   AuditAction = "UPDATE_IPB"
	ActionDeleteIPB   AuditAction = "DELETE_IPB"
	ActionImportItems AuditAction = "IMPORT_ITEMS"
)

type AuditEntry struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Action    AuditAction `json:"action"`
	Details   string      `json:"details"`
	Timestamp time.Time   `json:"timestamp"`
}

type AuditFilter struct {
	Action AuditAction
	Limit  int
}
