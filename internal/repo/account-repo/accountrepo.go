package accountrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payportal/internal/domain"
	"github.com/GlebRadaev/payportal/internal/pg"
)

const uniqueViolation = "23505"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var account domain.Account
	query := "SELECT id, username, email, password_hash, failed_attempts, lockout_until, created_at FROM accounts WHERE username = $1"
	err := repo.db.QueryRow(ctx, query, username).Scan(
		&account.ID, &account.Username, &account.Email, &account.PasswordHash,
		&account.FailedAttempts, &account.LockoutUntil, &account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find account", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

func (repo *Repository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := repo.db.QueryRow(ctx, query, account.Username, account.Email, account.PasswordHash).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrConflict
		}
		zap.L().Error("can't save account", zap.Error(err))
		return nil, err
	}
	return account, nil
}

// RegisterFailure counts one failed login and locks the account when the count
// reaches maxFailures. An expired lock restarts the count. It returns nil when the
// account is currently locked or missing, in which case nothing was changed.
func (repo *Repository) RegisterFailure(ctx context.Context, username string, maxFailures int, lockUntil, now time.Time) (*domain.Account, error) {
	query := `
		UPDATE accounts
		SET failed_attempts = CASE WHEN lockout_until IS NULL THEN failed_attempts + 1 ELSE 1 END,
			lockout_until = CASE WHEN (CASE WHEN lockout_until IS NULL THEN failed_attempts + 1 ELSE 1 END) >= $2 THEN $3::timestamptz ELSE NULL END
		WHERE username = $1 AND (lockout_until IS NULL OR lockout_until <= $4)
		RETURNING failed_attempts, lockout_until
	`
	account := domain.Account{Username: username}
	err := repo.db.QueryRow(ctx, query, username, maxFailures, lockUntil, now).Scan(&account.FailedAttempts, &account.LockoutUntil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't register failed login", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

func (repo *Repository) ResetFailures(ctx context.Context, username string) error {
	query := "UPDATE accounts SET failed_attempts = 0, lockout_until = NULL WHERE username = $1"
	if _, err := repo.db.Exec(ctx, query, username); err != nil {
		zap.L().Error("can't reset failed logins", zap.Error(err))
		return err
	}
	return nil
}
