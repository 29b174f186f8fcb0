package paymentservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payportal/internal/domain"
	"github.com/GlebRadaev/payportal/internal/metrics"
	"github.com/GlebRadaev/payportal/internal/notify"
	"github.com/GlebRadaev/payportal/pkg/cardvault"
	"github.com/GlebRadaev/payportal/pkg/validate"
)

const (
	msgMissing        = "All payment fields are required."
	msgBadAmount      = "Amount must be a valid number with up to 2 decimals."
	msgBadInstrument  = "Card number must be 13 to 19 digits."
	msgBadExpiry      = "Expiry date must be in MM/YY or MM/YYYY format."
	msgBadCode        = "CVV must be 3 or 4 digits."
	defaultStoreLimit = 5 * time.Second
)

// fieldNames maps submission fields to the names clients send.
var fieldNames = map[string]string{
	"Username":         "username",
	"FullName":         "fullName",
	"InstrumentNumber": "cardNumber",
	"Expiry":           "expiry",
	"Code":             "cvv",
	"Amount":           "amount",
}

type Repo interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	MarkStatus(ctx context.Context, reference string, status domain.PaymentStatus) (*domain.Payment, bool, error)
	ListByUsername(ctx context.Context, username string) ([]domain.Payment, error)
}

type Sealer interface {
	Seal(plain string) ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event notify.Event)
}

type AuditRecorder interface {
	Record(ctx context.Context, username string, kind domain.AuditKind, sourceAddress string)
}

type Policy struct {
	ImmediateSettlement bool
	StoreTimeout        time.Duration
}

type Service struct {
	repo      Repo
	sealer    Sealer
	publisher Publisher
	audit     AuditRecorder
	metrics   *metrics.Registry
	policy    Policy
	now       func() time.Time
}

func New(repo Repo, sealer Sealer, publisher Publisher, audit AuditRecorder, reg *metrics.Registry, policy Policy) *Service {
	if policy.StoreTimeout <= 0 {
		policy.StoreTimeout = defaultStoreLimit
	}
	return &Service{
		repo:      repo,
		sealer:    sealer,
		publisher: publisher,
		audit:     audit,
		metrics:   reg,
		policy:    policy,
		now:       time.Now,
	}
}

func storeError(op string, err error) error {
	zap.L().Error("store call failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, domain.ErrStoreUnavailable)
}

func validateSubmission(in domain.PaymentSubmission) error {
	if field, missing := validate.FirstMissing(in); missing {
		return domain.NewValidationError(fieldNames[field], domain.MissingField, msgMissing)
	}
	if !validate.IsAmount(in.Amount) {
		return domain.NewValidationError("amount", domain.BadAmount, msgBadAmount)
	}
	if !validate.IsInstrumentNumber(in.InstrumentNumber) {
		return domain.NewValidationError("cardNumber", domain.BadInstrument, msgBadInstrument)
	}
	if !validate.IsExpiry(in.Expiry) {
		return domain.NewValidationError("expiry", domain.BadExpiry, msgBadExpiry)
	}
	if !validate.IsVerificationCode(in.Code) {
		return domain.NewValidationError("cvv", domain.BadCode, msgBadCode)
	}
	return nil
}

// Submit validates and stores a payment for actor. With immediate settlement the
// record is written as Success in the same insert, so a failed write leaves
// nothing behind.
func (s *Service) Submit(ctx context.Context, actor string, in domain.PaymentSubmission, sourceAddress string) (*domain.Payment, error) {
	if err := validateSubmission(in); err != nil {
		return nil, err
	}
	if actor != in.Username {
		zap.L().Warn("payment submitted for another account",
			zap.String("actor", actor), zap.String("username", in.Username))
		return nil, domain.ErrForbidden
	}

	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return nil, domain.NewValidationError("amount", domain.BadAmount, msgBadAmount)
	}

	instrumentSealed, err := s.sealer.Seal(in.InstrumentNumber)
	if err != nil {
		zap.L().Error("can't seal card number", zap.Error(err))
		return nil, domain.ErrInternal
	}
	codeSealed, err := s.sealer.Seal(in.Code)
	if err != nil {
		zap.L().Error("can't seal verification code", zap.Error(err))
		return nil, domain.ErrInternal
	}

	status := domain.PaymentPending
	if s.policy.ImmediateSettlement {
		status = domain.PaymentSuccess
	}

	ctx, cancel := context.WithTimeout(ctx, s.policy.StoreTimeout)
	defer cancel()

	payment, err := s.repo.Create(ctx, &domain.Payment{
		Reference:        uuid.NewString(),
		Username:         in.Username,
		FullName:         in.FullName,
		InstrumentLast4:  cardvault.Last4(in.InstrumentNumber),
		InstrumentSealed: instrumentSealed,
		CodeSealed:       codeSealed,
		ChecksumValid:    validate.IsLuna(in.InstrumentNumber),
		Expiry:           in.Expiry,
		Amount:           amount,
		Status:           status,
	})
	if err != nil {
		return nil, storeError("create payment", err)
	}
	s.audit.Record(ctx, payment.Username, domain.AuditPaymentInitiated, sourceAddress)
	zap.L().Info("payment initiated",
		zap.String("reference", payment.Reference),
		zap.String("status", string(payment.Status)),
		zap.String("card", cardvault.Mask(payment.InstrumentLast4)),
		zap.Bool("checksum_valid", payment.ChecksumValid))

	if payment.Status.Terminal() {
		s.publisher.Publish(ctx, notify.PaymentStatusEvent(payment, s.now()))
	}
	s.metrics.Payment(string(payment.Status))
	return payment, nil
}

// ListForUser returns username's payments, newest first. The caller may only
// read its own history.
func (s *Service) ListForUser(ctx context.Context, actor, username string) ([]domain.Payment, error) {
	if actor != username {
		return nil, domain.ErrForbidden
	}

	ctx, cancel := context.WithTimeout(ctx, s.policy.StoreTimeout)
	defer cancel()

	payments, err := s.repo.ListByUsername(ctx, username)
	if err != nil {
		return nil, storeError("list payments", err)
	}
	if payments == nil {
		payments = make([]domain.Payment, 0)
	}
	return payments, nil
}

// ApplySettlement moves a Pending payment to a terminal status reported by the
// payment network. Repeated or late events leave the record as it is.
func (s *Service) ApplySettlement(ctx context.Context, reference string, status domain.PaymentStatus) error {
	if !status.Terminal() {
		return fmt.Errorf("settlement status %q is not terminal", status)
	}

	ctx, cancel := context.WithTimeout(ctx, s.policy.StoreTimeout)
	defer cancel()

	payment, changed, err := s.repo.MarkStatus(ctx, reference, status)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			zap.L().Warn("settlement for unknown payment", zap.String("reference", reference))
			return err
		}
		return storeError("settle payment", err)
	}
	if !changed {
		zap.L().Info("payment already settled",
			zap.String("reference", reference), zap.String("status", string(payment.Status)))
		return nil
	}

	s.metrics.Payment(string(payment.Status))
	s.publisher.Publish(ctx, notify.PaymentStatusEvent(payment, s.now()))
	return nil
}
