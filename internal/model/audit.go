package model

import "time"

// AuditLog records a mutation performed by a staff member, from the
// `audit_logs` table.  Diff holds a JSON document describing the change;
// RequestID correlates entries produced by the same HTTP request.
type AuditLog struct {
	ID        uint64    // audit_logs.id
	RequestID string    // audit_logs.request_id (uuid)
	ActorID   *uint64   // audit_logs.actor_id (nullable)
	Action    string    // audit_logs.action (create, update, delete, status)
	Entity    string    // audit_logs.entity (reservation, property, ...)
	EntityID  *uint64   // audit_logs.entity_id (nullable)
	Diff      *string   // audit_logs.diff (nullable JSON)
	CreatedAt time.Time // audit_logs.created_at
}
