package models

import "time"

// Audit action names recorded for mutating operations.
const (
	AuditRecordAdded       = "record.added"
	AuditRecordsImported   = "records.imported"
	AuditEditRequested     = "approval.requested"
	AuditEditApproved      = "approval.approved"
	AuditEditRejected      = "approval.rejected"
	AuditPersonnelApproved = "personnel.approved"
	AuditPersonnelRejected = "personnel.rejected"
	AuditReferenceUpdated  = "reference.updated"
)

// AuditLog is one immutable audit trail entry. Persisted to Postgres when the
// audit database is configured, otherwise dropped.
type AuditLog struct {
	ID        int64     `db:"id" json:"id"`
	Action    string    `db:"action" json:"action"`
	Actor     string    `db:"actor" json:"actor"`
	Subject   string    `db:"subject" json:"subject"`
	Detail    string    `db:"detail" json:"detail"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
