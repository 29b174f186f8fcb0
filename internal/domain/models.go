package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID             int        `db:"id"`
	Username       string     `db:"username"`
	Email          string     `db:"email"`
	PasswordHash   string     `db:"password_hash"`
	FailedAttempts int        `db:"failed_attempts"`
	LockoutUntil   *time.Time `db:"lockout_until"`
	CreatedAt      time.Time  `db:"created_at"`
}

// IsLocked reports whether the account rejects logins at now.
func (a *Account) IsLocked(now time.Time) bool {
	return a.LockoutUntil != nil && now.Before(*a.LockoutUntil)
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentSuccess PaymentStatus = "Success"
	PaymentFailed  PaymentStatus = "Failed"
)

// Terminal statuses never change again.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentSuccess || s == PaymentFailed
}

type Payment struct {
	ID               int             `db:"id"`
	Reference        string          `db:"reference"`
	Username         string          `db:"username"`
	FullName         string          `db:"full_name"`
	InstrumentLast4  string          `db:"instrument_last4"`
	InstrumentSealed []byte          `db:"instrument_sealed"`
	CodeSealed       []byte          `db:"code_sealed"`
	ChecksumValid    bool            `db:"checksum_valid"`
	Expiry           string          `db:"expiry"`
	Amount           decimal.Decimal `db:"amount"`
	Status           PaymentStatus   `db:"status"`
	SubmittedAt      time.Time       `db:"submitted_at"`
}

type Registration struct {
	Username string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type Credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// PaymentSubmission is the raw intake as received from the client.
type PaymentSubmission struct {
	Username         string `validate:"required"`
	FullName         string `validate:"required"`
	InstrumentNumber string `validate:"required"`
	Expiry           string `validate:"required"`
	Code             string `validate:"required"`
	Amount           string `validate:"required"`
}

type AuditKind string

const (
	AuditRegistration     AuditKind = "registration"
	AuditLoginSuccess     AuditKind = "login_success"
	AuditLoginFailed      AuditKind = "login_failed"
	AuditPaymentInitiated AuditKind = "payment_initiated"
)

type AuditEvent struct {
	ID            int       `db:"id"`
	Username      string    `db:"username"`
	Kind          AuditKind `db:"event"`
	SourceAddress string    `db:"ip_address"`
	OccurredAt    time.Time `db:"occurred_at"`
}
