package auditrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/payportal/internal/domain"
	"github.com/GlebRadaev/payportal/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, event domain.AuditEvent) error {
	query := "INSERT INTO audit_logs (username, event, ip_address, occurred_at) VALUES ($1, $2, $3, $4)"
	_, err := r.db.Exec(ctx, query, event.Username, string(event.Kind), event.SourceAddress, event.OccurredAt)
	if err != nil {
		zap.L().Error("can't save audit event", zap.Error(err))
		return err
	}
	return nil
}
