package settlement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payportal/internal/domain"
	"github.com/GlebRadaev/payportal/internal/metrics"
)

const (
	ReferenceMetadataKey = "payment_reference"
	taskTimeout          = 10 * time.Second
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

type Applier interface {
	ApplySettlement(ctx context.Context, reference string, status domain.PaymentStatus) error
}

// Outcome is the closed set of payment-network event kinds the portal reacts to.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeSucceeded
	OutcomeFailed
)

func Classify(t stripe.EventType) Outcome {
	switch t {
	case stripe.EventTypePaymentIntentSucceeded:
		return OutcomeSucceeded
	case stripe.EventTypePaymentIntentPaymentFailed, stripe.EventTypePaymentIntentCanceled:
		return OutcomeFailed
	default:
		return OutcomeIgnored
	}
}

func (o Outcome) Status() domain.PaymentStatus {
	switch o {
	case OutcomeSucceeded:
		return domain.PaymentSuccess
	case OutcomeFailed:
		return domain.PaymentFailed
	default:
		return domain.PaymentPending
	}
}

type Service struct {
	secret     string
	applier    Applier
	workerPool WorkerPoolI
	metrics    *metrics.Registry
}

func New(secret string, applier Applier, pool WorkerPoolI, reg *metrics.Registry) *Service {
	if secret == "" {
		zap.L().Warn("webhook secret is not configured, every webhook will be rejected")
	}
	return &Service{
		secret:     secret,
		applier:    applier,
		workerPool: pool,
		metrics:    reg,
	}
}

// Dispatch verifies a signed payment-network payload and queues the resulting
// status transition. Unknown event kinds are acknowledged without side effects.
func (s *Service) Dispatch(ctx context.Context, payload []byte, signature string) error {
	if s.secret == "" {
		return ErrInvalidSignature
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	outcome := Classify(event.Type)
	s.metrics.Settlement(string(event.Type))
	if outcome == OutcomeIgnored {
		zap.L().Info("unhandled webhook event", zap.String("type", string(event.Type)), zap.String("id", event.ID))
		return nil
	}

	reference, err := paymentReference(event)
	if err != nil {
		zap.L().Warn("webhook event without payment reference", zap.String("id", event.ID), zap.Error(err))
		return nil
	}

	status := outcome.Status()
	return s.workerPool.AddTask(ctx, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
		defer cancel()
		if err := s.applier.ApplySettlement(ctx, reference, status); err != nil {
			return fmt.Errorf("failed to settle payment %s: %w", reference, err)
		}
		return nil
	})
}

func paymentReference(event stripe.Event) (string, error) {
	if event.Data == nil {
		return "", errors.New("event has no data")
	}
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return "", fmt.Errorf("failed to parse payment intent: %w", err)
	}
	reference := intent.Metadata[ReferenceMetadataKey]
	if reference == "" {
		return "", fmt.Errorf("payment intent %s has no %s metadata", intent.ID, ReferenceMetadataKey)
	}
	return reference, nil
}

func (s *Service) Close() {
	s.workerPool.Close()
}
