package notify

import (
	"context"
	"time"

	"github.com/GlebRadaev/payportal/internal/domain"
)

const KindPaymentStatus = "payment_status"

// Event is a payment status change pushed to listeners.
type Event struct {
	Kind      string               `json:"event"`
	Reference string               `json:"reference"`
	Username  string               `json:"-"`
	Status    domain.PaymentStatus `json:"status"`
	At        time.Time            `json:"at"`
}

func PaymentStatusEvent(p *domain.Payment, at time.Time) Event {
	return Event{
		Kind:      KindPaymentStatus,
		Reference: p.Reference,
		Username:  p.Username,
		Status:    p.Status,
		At:        at,
	}
}

type Sink interface {
	Name() string
	Send(ctx context.Context, event Event) error
}
