package config

import (
	"flag"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Address string `env:"RUN_ADDRESS" envDefault:"localhost:3001"`
	LogLvl  string `env:"LOG_LVL"     envDefault:"info"`

	// TLS is served when both files are set.
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`
	HTTPSOnly   bool   `env:"HTTPS_ONLY" envDefault:"false"`

	// Static database settings, used when the secret store can't be read.
	DBUser     string        `env:"DB_USER"       envDefault:"portal"`
	DBPassword string        `env:"DB_PASSWORD"   envDefault:"portal"`
	DBHost     string        `env:"DB_HOST"       envDefault:"localhost"`
	DBPort     int           `env:"DB_PORT"       envDefault:"5432"`
	DBName     string        `env:"DB_NAME"       envDefault:"portal"`
	DBSSLMode  string        `env:"DB_SSLMODE"    envDefault:"disable"`
	DBMaxConns int32         `env:"DB_MAX_CONNS"  envDefault:"10"`
	StoreTTL   time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`

	AWSRegion     string `env:"AWS_REGION"`
	AWSSecretName string `env:"AWS_SECRET_NAME"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL"  envDefault:"1h"`

	LoginMaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS"   envDefault:"5"`
	LoginWindow        time.Duration `env:"LOGIN_WINDOW"         envDefault:"15m"`
	LockoutMaxFailures int           `env:"LOCKOUT_MAX_FAILURES" envDefault:"5"`
	LockoutDuration    time.Duration `env:"LOCKOUT_DURATION"     envDefault:"15m"`
	RateLimitRedisURL  string        `env:"RATE_LIMIT_REDIS_URL"`

	ImmediateSettlement bool   `env:"IMMEDIATE_SETTLEMENT" envDefault:"false"`
	CardDataKey         string `env:"CARD_DATA_KEY"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
	SettlementWorkers   int    `env:"SETTLEMENT_WORKERS" envDefault:"4"`

	RabbitMQURL     string `env:"RABBITMQ_URL"`
	PaymentExchange string `env:"PAYMENT_EXCHANGE" envDefault:"payments"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	AuditBuffer int      `env:"AUDIT_BUFFER" envDefault:"256"`
}

func New() *Config {
	cfg := &Config{}

	env.Parse(cfg)

	flag.StringVar(&cfg.Address, "a", cfg.Address, "address and port to run server")
	flag.StringVar(&cfg.DBHost, "h", cfg.DBHost, "database host")
	flag.StringVar(&cfg.DBName, "d", cfg.DBName, "database name")
	flag.StringVar(&cfg.AWSSecretName, "s", cfg.AWSSecretName, "secret store identifier for database credentials")
	flag.StringVar(&cfg.LogLvl, "l", cfg.LogLvl, "log level")
	flag.BoolVar(&cfg.ImmediateSettlement, "i", cfg.ImmediateSettlement, "settle payments immediately on intake")
	flag.Parse()

	cfg.AWSSecretName = strings.TrimSpace(cfg.AWSSecretName)

	return cfg
}
