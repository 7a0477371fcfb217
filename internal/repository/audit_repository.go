package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Alkan41/yakit-takip-api/internal/models"
)

// AuditRepository persists audit trail entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry models.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error)
}

type auditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository builds the Postgres audit repository.
func NewAuditRepository(db *sqlx.DB) AuditRepository {
	return &auditRepository{db: db}
}

const insertAuditQuery = `
	INSERT INTO audit_logs (action, actor, subject, detail, created_at)
	VALUES (:action, :actor, :subject, :detail, :created_at)`

func (r *auditRepository) Insert(ctx context.Context, entry models.AuditLog) error {
	if _, err := r.db.NamedExecContext(ctx, insertAuditQuery, entry); err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

const listAuditQuery = `
	SELECT id, action, actor, subject, detail, created_at
	FROM audit_logs
	ORDER BY created_at DESC
	LIMIT $1`

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	entries := []models.AuditLog{}
	if err := r.db.SelectContext(ctx, &entries, listAuditQuery, limit); err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return entries, nil
}
