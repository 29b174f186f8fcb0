package service

import (
	"github.com/GlebRadaev/payportal/internal/config"
	"github.com/GlebRadaev/payportal/internal/handlers/auth"
	"github.com/GlebRadaev/payportal/internal/handlers/health"
	"github.com/GlebRadaev/payportal/internal/handlers/payments"
	"github.com/GlebRadaev/payportal/internal/handlers/webhook"
	"github.com/GlebRadaev/payportal/internal/metrics"
	"github.com/GlebRadaev/payportal/internal/ratelimit"
	"github.com/GlebRadaev/payportal/internal/repo"
	"github.com/GlebRadaev/payportal/internal/service/authservice"
	"github.com/GlebRadaev/payportal/internal/service/healthservice"
	"github.com/GlebRadaev/payportal/internal/service/paymentservice"
	"github.com/GlebRadaev/payportal/internal/settlement"
	pkgauth "github.com/GlebRadaev/payportal/pkg/auth"
)

type Services struct {
	AuthService       auth.Service
	PaymentService    payments.Service
	HealthService     health.Service
	SettlementService webhook.Service
}

// Deps are the shared collaborators the services are built from.
type Deps struct {
	Repos      *repo.Repositories
	DB         healthservice.Pinger
	Limiter    ratelimit.Limiter
	Audit      authservice.AuditRecorder
	Publisher  paymentservice.Publisher
	Sealer     paymentservice.Sealer
	JWT        pkgauth.JWTServiceInterface
	WorkerPool settlement.WorkerPoolI
	Metrics    *metrics.Registry
}

func New(cfg *config.Config, d Deps) *Services {
	authService := authservice.New(d.Repos.AccountRepo, d.Limiter, d.Audit, pkgauth.NewHashService(), d.JWT, d.Metrics, authservice.Policy{
		TokenTTL:        cfg.TokenTTL,
		MaxFailures:     cfg.LockoutMaxFailures,
		LockoutDuration: cfg.LockoutDuration,
		StoreTimeout:    cfg.StoreTTL,
	})
	paymentService := paymentservice.New(d.Repos.PaymentRepo, d.Sealer, d.Publisher, d.Audit, d.Metrics, paymentservice.Policy{
		ImmediateSettlement: cfg.ImmediateSettlement,
		StoreTimeout:        cfg.StoreTTL,
	})

	return &Services{
		AuthService:       authService,
		PaymentService:    paymentService,
		HealthService:     healthservice.New(d.DB, cfg.StoreTTL),
		SettlementService: settlement.New(cfg.StripeWebhookSecret, paymentService, d.WorkerPool, d.Metrics),
	}
}
