package models

import "time"

// AuditFields holds the row timestamps shared by persisted records.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
