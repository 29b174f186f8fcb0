package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/unrolled/secure"

	_ "github.com/GlebRadaev/payportal/docs"
	authhandlers "github.com/GlebRadaev/payportal/internal/handlers/auth"
	healthhandlers "github.com/GlebRadaev/payportal/internal/handlers/health"
	paymenthandlers "github.com/GlebRadaev/payportal/internal/handlers/payments"
	webhookhandlers "github.com/GlebRadaev/payportal/internal/handlers/webhook"
	"github.com/GlebRadaev/payportal/internal/metrics"
	"github.com/GlebRadaev/payportal/internal/service"
	"github.com/GlebRadaev/payportal/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type HealthHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
}

type WebhookHandler interface {
	Receive(w http.ResponseWriter, r *http.Request)
}

// Options carries the routes that are not backed by a service.
type Options struct {
	JWT         auth.JWTServiceInterface
	Listeners   http.Handler
	Metrics     *metrics.Registry
	CORSOrigins []string
	// HTTPSOnly redirects plain http requests and enables HSTS.
	HTTPSOnly bool
}

type Handlers struct {
	AuthHandler    AuthHandler
	PaymentHandler PaymentHandler
	HealthHandler  HealthHandler
	WebhookHandler WebhookHandler

	opts Options
}

func New(s *service.Services, opts Options) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		PaymentHandler: paymenthandlers.New(s.PaymentService),
		HealthHandler:  healthhandlers.New(s.HealthService),
		WebhookHandler: webhookhandlers.New(s.SettlementService),
		opts:           opts,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		h.securityHeaders(),
		middleware.Recoverer,
		middleware.Logger,
		h.opts.Metrics.Middleware,
		cors.Handler(cors.Options{
			AllowedOrigins:   h.opts.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Authorization", "Retry-After"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	if h.opts.Metrics != nil {
		r.Handle("/metrics", h.opts.Metrics.Handler())
	}
	if h.opts.Listeners != nil {
		r.With(auth.Middleware(h.opts.JWT)).Handle("/ws", h.opts.Listeners)
	}

	r.Get("/health", h.HealthHandler.Health)
	r.Post("/webhook", h.WebhookHandler.Receive)
	r.Post("/register", h.AuthHandler.Register)
	r.Post("/login", h.AuthHandler.Login)

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(h.opts.JWT))
		r.Post("/payment", h.PaymentHandler.Submit)
		r.Get("/transactions/{username}", h.PaymentHandler.List)
	})

	return r
}

func (h *Handlers) securityHeaders() func(http.Handler) http.Handler {
	return secure.New(secure.Options{
		SSLRedirect:          h.opts.HTTPSOnly,
		SSLProxyHeaders:      map[string]string{"X-Forwarded-Proto": "https"},
		STSSeconds:           31536000,
		STSIncludeSubdomains: true,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		BrowserXssFilter:     true,
		ReferrerPolicy:       "no-referrer",
	}).Handler
}
