package model

import "time"

// AuditEntry records one mutating admin action. Entries are append-only and
// client-timestamped; the authoritative settlement record is the backend
// status column, the audit log is best-effort observability.
type AuditEntry struct {
	ID        string    `json:"id"`
	AdminName string    `json:"admin_name"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Date      time.Time `json:"date"`
}
