package authservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/payportal/internal/domain"
	"github.com/GlebRadaev/payportal/internal/metrics"
	"github.com/GlebRadaev/payportal/internal/ratelimit"
	"github.com/GlebRadaev/payportal/pkg/auth"
	"github.com/GlebRadaev/payportal/pkg/validate"
)

const (
	msgRegisterMissing = "Username, password, and email are required"
	msgLoginMissing    = "Username and password are required"
	msgBadUsername     = "Username must be 3-20 alphanumeric characters."
	msgBadEmail        = "Invalid email format."
	msgWeakPassword    = "Password must be at least 8 characters and include uppercase, lowercase, number, and special character."
)

type Repo interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	RegisterFailure(ctx context.Context, username string, maxFailures int, lockUntil, now time.Time) (*domain.Account, error)
	ResetFailures(ctx context.Context, username string) error
}

type AuditRecorder interface {
	Record(ctx context.Context, username string, kind domain.AuditKind, sourceAddress string)
}

type Policy struct {
	TokenTTL        time.Duration
	MaxFailures     int
	LockoutDuration time.Duration
	StoreTimeout    time.Duration
}

type Service struct {
	repo        Repo
	limiter     ratelimit.Limiter
	audit       AuditRecorder
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	metrics     *metrics.Registry
	policy      Policy
	now         func() time.Time
}

func New(repo Repo, limiter ratelimit.Limiter, audit AuditRecorder, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, reg *metrics.Registry, policy Policy) *Service {
	return &Service{
		repo:        repo,
		limiter:     limiter,
		audit:       audit,
		hashService: hashService,
		jwtService:  jwtService,
		metrics:     reg,
		policy:      policy,
		now:         time.Now,
	}
}

func (s *Service) withStoreTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.policy.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.policy.StoreTimeout)
}

func storeError(op string, err error) error {
	zap.L().Error("store call failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, domain.ErrStoreUnavailable)
}

func validateRegistration(in domain.Registration) error {
	if field, missing := validate.FirstMissing(in); missing {
		return domain.NewValidationError(strings.ToLower(field), domain.MissingField, msgRegisterMissing)
	}
	if !validate.IsUsername(in.Username) {
		return domain.NewValidationError("username", domain.BadUsername, msgBadUsername)
	}
	if !validate.IsEmail(in.Email) {
		return domain.NewValidationError("email", domain.BadEmail, msgBadEmail)
	}
	if !validate.IsStrongPassword(in.Password) {
		return domain.NewValidationError("password", domain.WeakPassword, msgWeakPassword)
	}
	return nil
}

// Register creates an account and returns a session token for it.
func (s *Service) Register(ctx context.Context, in domain.Registration, sourceAddress string) (string, error) {
	if err := validateRegistration(in); err != nil {
		return "", err
	}

	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()

	existing, err := s.repo.FindByUsername(ctx, in.Username)
	if err != nil {
		return "", storeError("find account", err)
	}
	if existing != nil {
		zap.L().Info("username already taken", zap.String("username", in.Username))
		return "", domain.ErrConflict
	}

	hashedPassword, err := s.hashService.HashPassword(in.Password)
	if err != nil {
		zap.L().Error("can't hash password", zap.Error(err))
		return "", domain.ErrInternal
	}

	account, err := s.repo.Create(ctx, &domain.Account{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return "", domain.ErrConflict
		}
		return "", storeError("create account", err)
	}

	token, err := s.issueToken(account.Username)
	if err != nil {
		return "", err
	}

	s.audit.Record(ctx, account.Username, domain.AuditRegistration, sourceAddress)
	zap.L().Info("account registered", zap.String("username", account.Username))
	return token, nil
}

// Login authenticates the credentials and returns a session token. Unknown
// usernames and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, in domain.Credentials, sourceAddress string) (string, error) {
	allowed, retryAfter, err := s.limiter.Allow(ctx, sourceAddress)
	if err != nil {
		zap.L().Warn("rate limiter failed, allowing attempt", zap.Error(err))
	} else if !allowed {
		s.metrics.Login("rate_limited")
		return "", &domain.RateLimitedError{RetryAfter: retryAfter}
	}

	if field, missing := validate.FirstMissing(in); missing {
		return "", domain.NewValidationError(strings.ToLower(field), domain.MissingField, msgLoginMissing)
	}

	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()

	account, err := s.repo.FindByUsername(ctx, in.Username)
	if err != nil {
		return "", storeError("find account", err)
	}
	if account == nil {
		s.hashService.ComparePassword("", in.Password)
		s.audit.Record(ctx, in.Username, domain.AuditLoginFailed, sourceAddress)
		s.metrics.Login("invalid")
		return "", domain.ErrInvalidCredentials
	}

	now := s.now()
	if account.IsLocked(now) {
		s.metrics.Login("locked")
		return "", &domain.LockedError{Until: *account.LockoutUntil}
	}

	if !s.hashService.ComparePassword(account.PasswordHash, in.Password) {
		return "", s.registerFailure(ctx, account.Username, now, sourceAddress)
	}

	if account.FailedAttempts > 0 || account.LockoutUntil != nil {
		if err := s.repo.ResetFailures(ctx, account.Username); err != nil {
			return "", storeError("reset failures", err)
		}
	}

	token, err := s.issueToken(account.Username)
	if err != nil {
		return "", err
	}

	s.audit.Record(ctx, account.Username, domain.AuditLoginSuccess, sourceAddress)
	s.metrics.Login("success")
	zap.L().Info("account authenticated", zap.String("username", account.Username))
	return token, nil
}

func (s *Service) registerFailure(ctx context.Context, username string, now time.Time, sourceAddress string) error {
	updated, err := s.repo.RegisterFailure(ctx, username, s.policy.MaxFailures, now.Add(s.policy.LockoutDuration), now)
	if err != nil {
		return storeError("register failure", err)
	}
	s.audit.Record(ctx, username, domain.AuditLoginFailed, sourceAddress)

	if updated == nil {
		// Another request locked the account between the lookup and the update.
		current, err := s.repo.FindByUsername(ctx, username)
		if err != nil {
			return storeError("find account", err)
		}
		if current != nil && current.IsLocked(now) {
			s.metrics.Login("locked")
			return &domain.LockedError{Until: *current.LockoutUntil}
		}
		s.metrics.Login("invalid")
		return domain.ErrInvalidCredentials
	}

	if updated.LockoutUntil != nil {
		zap.L().Warn("account locked", zap.String("username", username), zap.Time("until", *updated.LockoutUntil))
		s.metrics.Login("locked")
		return &domain.LockedError{Until: *updated.LockoutUntil}
	}
	s.metrics.Login("invalid")
	return domain.ErrInvalidCredentials
}

func (s *Service) issueToken(username string) (string, error) {
	token, err := s.jwtService.GenerateJWT(username, s.now().Add(s.policy.TokenTTL))
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", domain.ErrInternal
	}
	return token, nil
}
