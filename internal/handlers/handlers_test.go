package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/payportal/internal/handlers/auth"
	"github.com/GlebRadaev/payportal/internal/handlers/health"
	"github.com/GlebRadaev/payportal/internal/handlers/payments"
	"github.com/GlebRadaev/payportal/internal/handlers/webhook"
	"github.com/GlebRadaev/payportal/internal/metrics"
	"github.com/GlebRadaev/payportal/internal/service"
	pkgauth "github.com/GlebRadaev/payportal/pkg/auth"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	services := &service.Services{
		AuthService:       auth.NewMockService(ctrl),
		PaymentService:    payments.NewMockService(ctrl),
		HealthService:     health.NewMockService(ctrl),
		SettlementService: webhook.NewMockService(ctrl),
	}

	h := New(services, Options{})
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.IsType(t, &auth.AuthHandler{}, h.AuthHandler)
	assert.IsType(t, &payments.PaymentHandler{}, h.PaymentHandler)
	assert.IsType(t, &health.HealthHandler{}, h.HealthHandler)
	assert.IsType(t, &webhook.WebhookHandler{}, h.WebhookHandler)
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockPaymentHandler := NewMockPaymentHandler(ctrl)
	mockHealthHandler := NewMockHealthHandler(ctrl)
	mockWebhookHandler := NewMockWebhookHandler(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentHandler.EXPECT().Submit(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentHandler.EXPECT().List(gomock.Any(), gomock.Any()).AnyTimes()
	mockHealthHandler.EXPECT().Health(gomock.Any(), gomock.Any()).AnyTimes()
	mockWebhookHandler.EXPECT().Receive(gomock.Any(), gomock.Any()).AnyTimes()

	jwtService := pkgauth.NewJWTService("test-secret")
	token, err := jwtService.GenerateJWT("alice", time.Now().Add(time.Hour))
	require.NoError(t, err)

	h := &Handlers{
		AuthHandler:    mockAuthHandler,
		PaymentHandler: mockPaymentHandler,
		HealthHandler:  mockHealthHandler,
		WebhookHandler: mockWebhookHandler,
		opts: Options{
			JWT:         jwtService,
			Listeners:   http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusSwitchingProtocols) }),
			Metrics:     metrics.New(),
			CORSOrigins: []string{"http://localhost:3000"},
		},
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		token  string
		status int
	}{
		{"POST", "/register", "", http.StatusOK},
		{"POST", "/login", "", http.StatusOK},
		{"GET", "/health", "", http.StatusOK},
		{"POST", "/webhook", "", http.StatusOK},
		{"GET", "/ws", "", http.StatusUnauthorized},
		{"GET", "/ws", token, http.StatusSwitchingProtocols},
		{"GET", "/metrics", "", http.StatusOK},
		{"GET", "/swagger/doc.json", "", http.StatusOK},
		{"POST", "/api/payment", "", http.StatusUnauthorized},
		{"GET", "/api/transactions/alice", "", http.StatusUnauthorized},
		{"POST", "/api/payment", "not-a-token", http.StatusUnauthorized},
		{"POST", "/api/payment", token, http.StatusOK},
		{"GET", "/api/transactions/alice", token, http.StatusOK},
		{"GET", "/api/unknown", token, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestInitRoutes_CORSPreflight(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := &Handlers{
		AuthHandler:    NewMockAuthHandler(ctrl),
		PaymentHandler: NewMockPaymentHandler(ctrl),
		HealthHandler:  NewMockHealthHandler(ctrl),
		WebhookHandler: NewMockWebhookHandler(ctrl),
		opts:           Options{JWT: pkgauth.NewJWTService("s"), CORSOrigins: []string{"http://localhost:3000"}},
	}
	router := chi.NewRouter()
	h.InitRoutes(router)

	req := httptest.NewRequest(http.MethodOptions, "/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestInitRoutes_SecurityHeaders(t *testing.T) {
	tests := []struct {
		name             string
		httpsOnly        bool
		forwardedProto   string
		expectedStatus   int
		expectedLocation string
		expectedSTS      string
	}{
		{
			name:           "Plain http allowed",
			expectedStatus: http.StatusOK,
		},
		{
			name:             "Plain http redirected",
			httpsOnly:        true,
			expectedStatus:   http.StatusMovedPermanently,
			expectedLocation: "https://example.com/health",
		},
		{
			name:           "Https behind proxy",
			httpsOnly:      true,
			forwardedProto: "https",
			expectedStatus: http.StatusOK,
			expectedSTS:    "max-age=31536000; includeSubDomains",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockHealthHandler := NewMockHealthHandler(ctrl)
			mockHealthHandler.EXPECT().Health(gomock.Any(), gomock.Any()).AnyTimes()

			h := &Handlers{
				AuthHandler:    NewMockAuthHandler(ctrl),
				PaymentHandler: NewMockPaymentHandler(ctrl),
				HealthHandler:  mockHealthHandler,
				WebhookHandler: NewMockWebhookHandler(ctrl),
				opts:           Options{JWT: pkgauth.NewJWTService("s"), HTTPSOnly: tt.httpsOnly},
			}
			router := chi.NewRouter()
			h.InitRoutes(router)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if tt.forwardedProto != "" {
				req.Header.Set("X-Forwarded-Proto", tt.forwardedProto)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedLocation, rec.Header().Get("Location"))
			assert.Equal(t, tt.expectedSTS, rec.Header().Get("Strict-Transport-Security"))
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
				assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
			}
		})
	}
}
