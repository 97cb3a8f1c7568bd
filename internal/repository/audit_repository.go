package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
)

// AuditRepo appends to the audit_logs table.  Audit writes are
// best-effort: callers log failures but never abort the business
// operation over them.
type AuditRepo struct {
	db *sql.DB
}

// NewAuditRepo returns a new AuditRepo bound to the given database.
func NewAuditRepo(db *sql.DB) *AuditRepo { return &AuditRepo{db: db} }

// Record appends an audit entry.  diff may be any JSON-marshalable
// value or nil.  The returned request ID correlates related entries.
func (r *AuditRepo) Record(ctx context.Context, actorID uint64, action, entity string, entityID uint64, diff any) (string, error) {
	requestID := uuid.NewString()
	var diffJSON any
	if diff != nil {
		b, err := json.Marshal(diff)
		if err != nil {
			return "", err
		}
		diffJSON = string(b)
	}
	const q = `INSERT INTO audit_logs (request_id, actor_id, action, entity, entity_id, diff)
	           VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, requestID, actorID, action, entity, entityID, diffJSON); err != nil {
		return "", err
	}
	return requestID, nil
}
