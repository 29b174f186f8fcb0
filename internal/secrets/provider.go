package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const resolveTimeout = 10 * time.Second

var ErrSecretUnavailable = errors.New("secret unavailable")

type SecretReader interface {
	GetSecret(ctx context.Context, id string) (string, error)
}

type Source string

const (
	SourceSecretStore Source = "secret_store"
	SourceStatic      Source = "static"
)

type secretPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	DBName   string `json:"dbname"`
}

// Provider resolves database credentials once per process, preferring the secret
// store and falling back to static configuration on any error.
type Provider struct {
	reader   SecretReader
	secretID string
	static   CredentialBundle

	mu     sync.Mutex
	bundle *CredentialBundle
	source Source
}

// NewProvider accepts a nil reader, which always falls back to static.
func NewProvider(reader SecretReader, secretID string, static CredentialBundle) *Provider {
	return &Provider{
		reader:   reader,
		secretID: secretID,
		static:   static,
	}
}

// Resolve returns the cached bundle, resolving it on first use. It never fails.
func (p *Provider) Resolve(ctx context.Context) CredentialBundle {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bundle != nil {
		return *p.bundle
	}
	p.load(ctx)
	return *p.bundle
}

// Reload discards the cached bundle and resolves again.
func (p *Provider) Reload(ctx context.Context) CredentialBundle {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.load(ctx)
	return *p.bundle
}

func (p *Provider) Source() Source {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source
}

func (p *Provider) load(ctx context.Context) {
	bundle, err := p.fromSecretStore(ctx)
	if err != nil {
		zap.L().Warn("falling back to static db config", zap.String("secret", p.secretID), zap.Error(err))
		static := p.static
		p.bundle = &static
		p.source = SourceStatic
		return
	}
	zap.L().Info("db credentials loaded from secret store", zap.String("secret", p.secretID))
	p.bundle = &bundle
	p.source = SourceSecretStore
}

func (p *Provider) fromSecretStore(ctx context.Context) (CredentialBundle, error) {
	if p.reader == nil || p.secretID == "" {
		return CredentialBundle{}, fmt.Errorf("%w: secret store not configured", ErrSecretUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	raw, err := p.reader.GetSecret(ctx, p.secretID)
	if err != nil {
		return CredentialBundle{}, fmt.Errorf("%w: %w", ErrSecretUnavailable, err)
	}

	var payload secretPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return CredentialBundle{}, fmt.Errorf("%w: malformed payload: %w", ErrSecretUnavailable, err)
	}
	if payload.Username == "" || payload.Password == "" || payload.Host == "" || payload.DBName == "" {
		return CredentialBundle{}, fmt.Errorf("%w: payload is missing required fields", ErrSecretUnavailable)
	}

	bundle := CredentialBundle{
		User:     payload.Username,
		Password: payload.Password,
		Host:     payload.Host,
		Port:     payload.Port,
		Database: payload.DBName,
		SSLMode:  p.static.SSLMode,
	}
	if bundle.Port == 0 {
		bundle.Port = p.static.Port
	}
	return bundle, nil
}
