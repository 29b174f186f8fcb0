package auditrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/payportal/internal/domain"
)

func TestRepository_Insert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()
	repo := New(mock)

	at := time.Now()
	event := domain.AuditEvent{Username: "alice", Kind: domain.AuditLoginFailed, SourceAddress: "10.0.0.1", OccurredAt: at}
	query := regexp.QuoteMeta("INSERT INTO audit_logs (username, event, ip_address, occurred_at) VALUES ($1, $2, $3, $4)")

	mock.ExpectExec(query).
		WithArgs("alice", "login_failed", "10.0.0.1", at).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	assert.NoError(t, repo.Insert(context.Background(), event))

	mock.ExpectExec(query).
		WithArgs("alice", "login_failed", "10.0.0.1", at).
		WillReturnError(errors.New("database error"))
	assert.Error(t, repo.Insert(context.Background(), event))

	assert.NoError(t, mock.ExpectationsWereMet())
}
