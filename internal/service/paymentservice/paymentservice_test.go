package paymentservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/payportal/internal/domain"
	"github.com/GlebRadaev/payportal/internal/notify"
)

const addr = "10.0.0.1"

type mocks struct {
	repo      *MockRepo
	sealer    *MockSealer
	publisher *MockPublisher
	audit     *MockAuditRecorder
}

func NewMock(t *testing.T, immediate bool) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		repo:      NewMockRepo(ctrl),
		sealer:    NewMockSealer(ctrl),
		publisher: NewMockPublisher(ctrl),
		audit:     NewMockAuditRecorder(ctrl),
	}
	service := New(m.repo, m.sealer, m.publisher, m.audit, nil, Policy{ImmediateSettlement: immediate, StoreTimeout: time.Second})
	return service, m
}

func validSubmission() domain.PaymentSubmission {
	return domain.PaymentSubmission{
		Username:         "alice",
		FullName:         "Alice Liddell",
		InstrumentNumber: "4242424242424242",
		Expiry:           "12/27",
		Code:             "123",
		Amount:           "12.34",
	}
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *domain.PaymentSubmission)
		field  string
		reason domain.ValidationReason
		msg    string
	}{
		{
			name:   "Missing full name",
			modify: func(in *domain.PaymentSubmission) { in.FullName = "" },
			field:  "fullName",
			reason: domain.MissingField,
			msg:    "All payment fields are required.",
		},
		{
			name:   "Too many decimals",
			modify: func(in *domain.PaymentSubmission) { in.Amount = "12.345" },
			field:  "amount",
			reason: domain.BadAmount,
			msg:    "Amount must be a valid number with up to 2 decimals.",
		},
		{
			name:   "Negative amount",
			modify: func(in *domain.PaymentSubmission) { in.Amount = "-5" },
			field:  "amount",
			reason: domain.BadAmount,
		},
		{
			name:   "Short card number",
			modify: func(in *domain.PaymentSubmission) { in.InstrumentNumber = "1234" },
			field:  "cardNumber",
			reason: domain.BadInstrument,
			msg:    "Card number must be 13 to 19 digits.",
		},
		{
			name:   "Bad expiry",
			modify: func(in *domain.PaymentSubmission) { in.Expiry = "13/27" },
			field:  "expiry",
			reason: domain.BadExpiry,
		},
		{
			name:   "Bad cvv",
			modify: func(in *domain.PaymentSubmission) { in.Code = "12" },
			field:  "cvv",
			reason: domain.BadCode,
		},
		{
			name: "Amount checked before card number",
			modify: func(in *domain.PaymentSubmission) {
				in.Amount = "abc"
				in.InstrumentNumber = "1"
			},
			field:  "amount",
			reason: domain.BadAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := NewMock(t, false)
			in := validSubmission()
			tt.modify(&in)

			payment, err := service.Submit(context.Background(), "alice", in, addr)
			assert.Nil(t, payment)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.reason, ve.Reason)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, ve.Error())
			}
		})
	}
}

func TestSubmit_Pending(t *testing.T) {
	service, m := NewMock(t, false)

	gomock.InOrder(
		m.sealer.EXPECT().Seal("4242424242424242").Return([]byte("sealed-card"), nil),
		m.sealer.EXPECT().Seal("123").Return([]byte("sealed-code"), nil),
	)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
		_, err := uuid.Parse(p.Reference)
		assert.NoError(t, err)
		assert.Equal(t, "alice", p.Username)
		assert.Equal(t, "4242", p.InstrumentLast4)
		assert.Equal(t, []byte("sealed-card"), p.InstrumentSealed)
		assert.Equal(t, []byte("sealed-code"), p.CodeSealed)
		assert.True(t, p.ChecksumValid)
		assert.True(t, decimal.RequireFromString("12.34").Equal(p.Amount))
		assert.Equal(t, domain.PaymentPending, p.Status)
		p.ID = 7
		return p, nil
	})
	m.audit.EXPECT().Record(gomock.Any(), "alice", domain.AuditPaymentInitiated, addr)

	payment, err := service.Submit(context.Background(), "alice", validSubmission(), addr)
	require.NoError(t, err)
	assert.Equal(t, 7, payment.ID)
	assert.Equal(t, domain.PaymentPending, payment.Status)
}

func TestSubmit_BadChecksumIsAccepted(t *testing.T) {
	service, m := NewMock(t, false)
	in := validSubmission()
	in.InstrumentNumber = "4242424242424241"

	m.sealer.EXPECT().Seal(gomock.Any()).Return([]byte("x"), nil).Times(2)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
		assert.False(t, p.ChecksumValid)
		return p, nil
	})
	m.audit.EXPECT().Record(gomock.Any(), "alice", domain.AuditPaymentInitiated, addr)

	_, err := service.Submit(context.Background(), "alice", in, addr)
	assert.NoError(t, err)
}

func TestSubmit_Immediate(t *testing.T) {
	service, m := NewMock(t, true)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return at }

	m.sealer.EXPECT().Seal(gomock.Any()).Return([]byte("x"), nil).Times(2)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
		assert.Equal(t, domain.PaymentSuccess, p.Status)
		p.Reference = "ref-1"
		return p, nil
	})
	m.audit.EXPECT().Record(gomock.Any(), "alice", domain.AuditPaymentInitiated, addr)
	m.publisher.EXPECT().Publish(gomock.Any(), notify.Event{
		Kind:      notify.KindPaymentStatus,
		Reference: "ref-1",
		Username:  "alice",
		Status:    domain.PaymentSuccess,
		At:        at,
	})

	payment, err := service.Submit(context.Background(), "alice", validSubmission(), addr)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccess, payment.Status)
}

func TestSubmit_Failures(t *testing.T) {
	tests := []struct {
		name          string
		actor         string
		immediate     bool
		prepareMock   func(m *mocks)
		expectedError error
	}{
		{
			name:          "Submitting for another account",
			actor:         "mallory",
			prepareMock:   func(m *mocks) {},
			expectedError: domain.ErrForbidden,
		},
		{
			name:  "Sealing fails",
			actor: "alice",
			prepareMock: func(m *mocks) {
				m.sealer.EXPECT().Seal(gomock.Any()).Return(nil, errors.New("rand failure"))
			},
			expectedError: domain.ErrInternal,
		},
		{
			name:  "Store unavailable",
			actor: "alice",
			prepareMock: func(m *mocks) {
				m.sealer.EXPECT().Seal(gomock.Any()).Return([]byte("x"), nil).Times(2)
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
			},
			expectedError: domain.ErrStoreUnavailable,
		},
		{
			name:      "Settled insert fails",
			actor:     "alice",
			immediate: true,
			prepareMock: func(m *mocks) {
				m.sealer.EXPECT().Seal(gomock.Any()).Return([]byte("x"), nil).Times(2)
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
			},
			expectedError: domain.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t, tt.immediate)
			tt.prepareMock(m)

			payment, err := service.Submit(context.Background(), tt.actor, validSubmission(), addr)
			assert.Nil(t, payment)
			assert.ErrorIs(t, err, tt.expectedError)
		})
	}
}

func TestListForUser(t *testing.T) {
	newer := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)

	tests := []struct {
		name          string
		actor         string
		prepareMock   func(m *mocks)
		expected      []domain.Payment
		expectedError error
	}{
		{
			name:  "Payments newest first",
			actor: "alice",
			prepareMock: func(m *mocks) {
				m.repo.EXPECT().ListByUsername(gomock.Any(), "alice").Return([]domain.Payment{
					{ID: 2, SubmittedAt: newer},
					{ID: 1, SubmittedAt: older},
				}, nil)
			},
			expected: []domain.Payment{{ID: 2, SubmittedAt: newer}, {ID: 1, SubmittedAt: older}},
		},
		{
			name:  "No payments",
			actor: "alice",
			prepareMock: func(m *mocks) {
				m.repo.EXPECT().ListByUsername(gomock.Any(), "alice").Return(nil, nil)
			},
			expected: []domain.Payment{},
		},
		{
			name:          "Another account",
			actor:         "mallory",
			prepareMock:   func(m *mocks) {},
			expectedError: domain.ErrForbidden,
		},
		{
			name:  "Store unavailable",
			actor: "alice",
			prepareMock: func(m *mocks) {
				m.repo.EXPECT().ListByUsername(gomock.Any(), "alice").Return(nil, errors.New("timeout"))
			},
			expectedError: domain.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t, false)
			tt.prepareMock(m)

			payments, err := service.ListForUser(context.Background(), tt.actor, "alice")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, payments)
			assert.Equal(t, tt.expected, payments)
		})
	}
}

func TestApplySettlement(t *testing.T) {
	tests := []struct {
		name          string
		status        domain.PaymentStatus
		prepareMock   func(m *mocks)
		expectedError error
	}{
		{
			name:   "Pending payment succeeds",
			status: domain.PaymentSuccess,
			prepareMock: func(m *mocks) {
				m.repo.EXPECT().MarkStatus(gomock.Any(), "ref-1", domain.PaymentSuccess).
					Return(&domain.Payment{Reference: "ref-1", Status: domain.PaymentSuccess}, true, nil)
				m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Do(func(_ context.Context, e notify.Event) {
					assert.Equal(t, "ref-1", e.Reference)
					assert.Equal(t, domain.PaymentSuccess, e.Status)
				})
			},
		},
		{
			name:   "Already settled is left alone",
			status: domain.PaymentFailed,
			prepareMock: func(m *mocks) {
				m.repo.EXPECT().MarkStatus(gomock.Any(), "ref-1", domain.PaymentFailed).
					Return(&domain.Payment{Reference: "ref-1", Status: domain.PaymentSuccess}, false, nil)
			},
		},
		{
			name:          "Pending is not a settlement",
			status:        domain.PaymentPending,
			prepareMock:   func(m *mocks) {},
			expectedError: errors.New("settlement status \"Pending\" is not terminal"),
		},
		{
			name:   "Unknown reference",
			status: domain.PaymentSuccess,
			prepareMock: func(m *mocks) {
				m.repo.EXPECT().MarkStatus(gomock.Any(), "ref-1", domain.PaymentSuccess).Return(nil, false, domain.ErrPaymentNotFound)
			},
			expectedError: domain.ErrPaymentNotFound,
		},
		{
			name:   "Store unavailable",
			status: domain.PaymentSuccess,
			prepareMock: func(m *mocks) {
				m.repo.EXPECT().MarkStatus(gomock.Any(), "ref-1", domain.PaymentSuccess).Return(nil, false, errors.New("timeout"))
			},
			expectedError: domain.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t, false)
			tt.prepareMock(m)

			err := service.ApplySettlement(context.Background(), "ref-1", tt.status)
			switch {
			case tt.expectedError == nil:
				assert.NoError(t, err)
			case errors.Is(tt.expectedError, domain.ErrPaymentNotFound), errors.Is(tt.expectedError, domain.ErrStoreUnavailable):
				assert.ErrorIs(t, err, tt.expectedError)
			default:
				assert.EqualError(t, err, tt.expectedError.Error())
			}
		})
	}
}
