package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Alkan41/yakit-takip-api/internal/models"
	"github.com/Alkan41/yakit-takip-api/internal/repository"
)

// PanelCacheKey stores the admin panel bootstrap snapshot.
const PanelCacheKey = "panel:snapshot"

// emitAudit records an audit entry when the audit database is configured.
// Failures are logged and swallowed; auditing never blocks the operation.
func emitAudit(ctx context.Context, audit repository.AuditRepository, log *zap.Logger, action, actor, subject, detail string) {
	if audit == nil {
		return
	}
	entry := models.AuditLog{
		Action:    action,
		Actor:     actor,
		Subject:   subject,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
	if err := audit.Insert(ctx, entry); err != nil {
		log.Warn("audit insert failed",
			zap.String("action", action),
			zap.String("subject", subject),
			zap.Error(err))
	}
}

// invalidatePanelCache drops the cached panel snapshot after a mutation.
func invalidatePanelCache(ctx context.Context, cache repository.CacheRepository, log *zap.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Delete(ctx, PanelCacheKey); err != nil {
		log.Warn("panel cache invalidation failed", zap.Error(err))
	}
}
