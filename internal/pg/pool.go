package pg

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/GlebRadaev/payportal/internal/secrets"
)

var ErrConnection = errors.New("database connection failed")

type CredentialSource interface {
	Resolve(ctx context.Context) secrets.CredentialBundle
}

type ConnectFunc func(ctx context.Context) (*pgxpool.Pool, error)

// Manager owns the process-wide pool. The pool is created lazily and exactly once
// per successful attempt, no matter how many callers race on the first Get.
type Manager struct {
	connect ConnectFunc
	pool    atomic.Pointer[pgxpool.Pool]
	group   singleflight.Group
}

func NewManager(creds CredentialSource, maxConns int32) *Manager {
	return NewManagerWithConnect(func(ctx context.Context) (*pgxpool.Pool, error) {
		return connect(ctx, creds.Resolve(ctx), maxConns)
	})
}

func NewManagerWithConnect(fn ConnectFunc) *Manager {
	return &Manager{connect: fn}
}

func (m *Manager) Get(ctx context.Context) (*pgxpool.Pool, error) {
	if pool := m.pool.Load(); pool != nil {
		return pool, nil
	}

	v, err, _ := m.group.Do("pool", func() (any, error) {
		if pool := m.pool.Load(); pool != nil {
			return pool, nil
		}
		pool, err := m.connect(ctx)
		if err != nil {
			return nil, err
		}
		m.pool.Store(pool)
		return pool, nil
	})
	if err != nil {
		zap.L().Error("can't create connection pool", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return v.(*pgxpool.Pool), nil
}

func (m *Manager) Conn(ctx context.Context) (Pool, error) {
	pool, err := m.Get(ctx)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

func (m *Manager) Close() {
	if pool := m.pool.Swap(nil); pool != nil {
		pool.Close()
	}
}

func connect(ctx context.Context, bundle secrets.CredentialBundle, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(bundle.DSN())
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	zap.L().Info("connection pool created", zap.String("target", bundle.String()))
	return pool, nil
}
