package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payportal/internal/audit"
	"github.com/GlebRadaev/payportal/internal/config"
	"github.com/GlebRadaev/payportal/internal/handlers"
	"github.com/GlebRadaev/payportal/internal/metrics"
	"github.com/GlebRadaev/payportal/internal/notify"
	"github.com/GlebRadaev/payportal/internal/pg"
	"github.com/GlebRadaev/payportal/internal/ratelimit"
	"github.com/GlebRadaev/payportal/internal/repo"
	"github.com/GlebRadaev/payportal/internal/secrets"
	"github.com/GlebRadaev/payportal/internal/service"
	"github.com/GlebRadaev/payportal/internal/settlement"
	"github.com/GlebRadaev/payportal/pkg/auth"
	"github.com/GlebRadaev/payportal/pkg/cardvault"
	"github.com/GlebRadaev/payportal/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories

	// closers run in reverse order once the http server has stopped.
	closers []func()

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}
	return a.start(ctx, cfg)
}

// start builds every component. On failure the components built so far are
// closed before the error is returned.
func (a *Application) start(ctx context.Context, cfg *config.Config) (err error) {
	a.cfg = cfg
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	provider := secrets.NewProvider(newSecretReader(cfg), cfg.AWSSecretName, secrets.StaticBundle(cfg))
	manager := pg.NewManager(provider, cfg.DBMaxConns)
	a.onClose(manager.Close)

	pool, err := manager.Get(ctx)
	if err != nil {
		zap.L().Error("build pgx pool failed", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}

	conn := pg.New(manager)
	txManager := pg.NewTXManager(manager)
	a.repo = repo.New(conn, txManager)

	reg := metrics.New()

	auditLogger := audit.New(a.repo.AuditRepo, reg, 0, cfg.AuditBuffer)
	a.onClose(auditLogger.Close)

	limiter := newLimiter(cfg)
	if closer, ok := limiter.(interface{ Close() error }); ok {
		a.onClose(func() { closer.Close() })
	}

	hub := notify.NewHub(cfg.CORSOrigins)
	a.onClose(hub.Close)
	broadcaster := notify.NewBroadcaster(reg, a.sinks(cfg, hub)...)
	a.onClose(broadcaster.Close)

	vault, err := cardvault.New(cfg.CardDataKey)
	if err != nil {
		return fmt.Errorf("can't init card vault: %w", err)
	}
	if vault.Ephemeral() {
		zap.L().Warn("CARD_DATA_KEY is not set, card data sealed by this process can't be opened after restart")
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	workerPool := settlement.NewWorkerPool(cfg.SettlementWorkers)
	a.onClose(workerPool.Close)

	a.srv = service.New(cfg, service.Deps{
		Repos:      a.repo,
		DB:         conn,
		Limiter:    limiter,
		Audit:      auditLogger,
		Publisher:  broadcaster,
		Sealer:     vault,
		JWT:        jwtService,
		WorkerPool: workerPool,
		Metrics:    reg,
	})
	a.api = handlers.New(a.srv, handlers.Options{
		JWT:         jwtService,
		Listeners:   hub,
		Metrics:     reg,
		CORSOrigins: cfg.CORSOrigins,
		HTTPSOnly:   cfg.HTTPSOnly,
	})

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully",
		zap.String("credentials", string(provider.Source())),
		zap.Bool("immediate_settlement", cfg.ImmediateSettlement))
	return nil
}

func (a *Application) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

func (a *Application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func newSecretReader(cfg *config.Config) secrets.SecretReader {
	if cfg.AWSSecretName == "" {
		return nil
	}
	reader, err := secrets.NewAWSReader(cfg.AWSRegion)
	if err != nil {
		zap.L().Warn("can't create secret store client", zap.Error(err))
		return nil
	}
	return reader
}

func newLimiter(cfg *config.Config) ratelimit.Limiter {
	if cfg.RateLimitRedisURL != "" {
		limiter, err := ratelimit.NewRedisFromURL(cfg.RateLimitRedisURL, cfg.LoginMaxAttempts, cfg.LoginWindow)
		if err == nil {
			return limiter
		}
		zap.L().Warn("can't use redis rate limiter, falling back to memory", zap.Error(err))
	}
	return ratelimit.NewMemory(cfg.LoginMaxAttempts, cfg.LoginWindow)
}

func (a *Application) sinks(cfg *config.Config, hub *notify.Hub) []notify.Sink {
	sinks := []notify.Sink{hub}
	if cfg.RabbitMQURL == "" {
		return sinks
	}
	publisher, err := notify.DialAMQP(cfg.RabbitMQURL, cfg.PaymentExchange)
	if err != nil {
		zap.L().Warn("can't connect to message broker, status events stay local", zap.Error(err))
		return sinks
	}
	a.onClose(publisher.Close)
	return append(sinks, publisher)
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
		a.close()
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port",
			zap.String("port", a.cfg.Address), zap.Bool("tls", a.tlsEnabled()))
		if err := a.listen(&server); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) tlsEnabled() bool {
	return a.cfg.TLSCertFile != "" && a.cfg.TLSKeyFile != ""
}

func (a *Application) listen(server *http.Server) error {
	if a.tlsEnabled() {
		return server.ListenAndServeTLS(a.cfg.TLSCertFile, a.cfg.TLSKeyFile)
	}
	return server.ListenAndServe()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
