package repo

import (
	"github.com/GlebRadaev/payportal/internal/audit"
	"github.com/GlebRadaev/payportal/internal/pg"
	accountrepo "github.com/GlebRadaev/payportal/internal/repo/account-repo"
	auditrepo "github.com/GlebRadaev/payportal/internal/repo/audit-repo"
	paymentrepo "github.com/GlebRadaev/payportal/internal/repo/payment-repo"
	"github.com/GlebRadaev/payportal/internal/service/authservice"
	"github.com/GlebRadaev/payportal/internal/service/paymentservice"
)

type Repositories struct {
	AccountRepo authservice.Repo
	PaymentRepo paymentservice.Repo
	AuditRepo   audit.Store
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		AccountRepo: accountrepo.New(conn),
		PaymentRepo: paymentrepo.New(conn, txManager),
		AuditRepo:   auditrepo.New(conn),
	}
}
