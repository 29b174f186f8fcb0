package healthservice

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	StatusOK         = "OK"
	StatusDBError    = "DB Connection Error"
	StoreConnected   = "connected"
	StoreUnreachable = "unreachable"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Report struct {
	Status      string
	StoreStatus string
}

func (r Report) Healthy() bool {
	return r.Status == StatusOK
}

type Service struct {
	db      Pinger
	timeout time.Duration
}

func New(db Pinger, timeout time.Duration) *Service {
	return &Service{db: db, timeout: timeout}
}

// Check pings the store within the configured timeout.
func (s *Service) Check(ctx context.Context) Report {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if err := s.db.Ping(ctx); err != nil {
		zap.L().Error("health check failed", zap.Error(err))
		return Report{Status: StatusDBError, StoreStatus: StoreUnreachable}
	}
	return Report{Status: StatusOK, StoreStatus: StoreConnected}
}
