package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/payportal/internal/config"
	"github.com/GlebRadaev/payportal/internal/metrics"
	"github.com/GlebRadaev/payportal/internal/ratelimit"
	"github.com/GlebRadaev/payportal/internal/repo"
	"github.com/GlebRadaev/payportal/internal/service/authservice"
	"github.com/GlebRadaev/payportal/internal/service/healthservice"
	"github.com/GlebRadaev/payportal/internal/service/paymentservice"
	"github.com/GlebRadaev/payportal/internal/settlement"
	"github.com/GlebRadaev/payportal/pkg/auth"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	repos := &repo.Repositories{
		AccountRepo: authservice.NewMockRepo(ctrl),
		PaymentRepo: paymentservice.NewMockRepo(ctrl),
	}
	pool := settlement.NewWorkerPool(1)
	defer pool.Close()

	cfg := &config.Config{
		TokenTTL:           time.Hour,
		LockoutMaxFailures: 5,
		LockoutDuration:    15 * time.Minute,
		StoreTTL:           time.Second,
	}
	services := New(cfg, Deps{
		Repos:      repos,
		DB:         healthservice.Pinger(nil),
		Limiter:    ratelimit.NewMemory(5, 15*time.Minute),
		Audit:      authservice.NewMockAuditRecorder(ctrl),
		Publisher:  paymentservice.NewMockPublisher(ctrl),
		Sealer:     paymentservice.NewMockSealer(ctrl),
		JWT:        auth.NewJWTService("secret"),
		WorkerPool: pool,
		Metrics:    metrics.New(),
	})

	assert.IsType(t, &authservice.Service{}, services.AuthService)
	assert.IsType(t, &paymentservice.Service{}, services.PaymentService)
	assert.IsType(t, &healthservice.Service{}, services.HealthService)
	assert.IsType(t, &settlement.Service{}, services.SettlementService)
}
