package secrets

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/GlebRadaev/payportal/internal/config"
)

// CredentialBundle holds database connection parameters. It is treated as
// immutable once resolved.
type CredentialBundle struct {
	User     string
	Password string
	Host     string
	Port     int
	Database string
	SSLMode  string
}

// StaticBundle is the fallback built from environment configuration.
func StaticBundle(cfg *config.Config) CredentialBundle {
	return CredentialBundle{
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Database: cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}
}

func (b CredentialBundle) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(b.User, b.Password),
		Host:   b.Host,
		Path:   "/" + b.Database,
	}
	if b.Port != 0 {
		u.Host = fmt.Sprintf("%s:%s", b.Host, strconv.Itoa(b.Port))
	}
	if b.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{b.SSLMode}}.Encode()
	}
	return u.String()
}

// String never includes the password.
func (b CredentialBundle) String() string {
	return fmt.Sprintf("%s@%s:%d/%s", b.User, b.Host, b.Port, b.Database)
}
