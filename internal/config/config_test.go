package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func resetFlagsAndArgs() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	os.Args = []string{"cmd"}
}

func setEnv(t *testing.T) {
	t.Setenv("RUN_ADDRESS", "localhost:9000")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "payments")
	t.Setenv("AWS_SECRET_NAME", " portal/db ")
	t.Setenv("LOG_LVL", "debug")
	t.Setenv("IMMEDIATE_SETTLEMENT", "true")
	t.Setenv("LOCKOUT_DURATION", "30m")
	t.Setenv("CORS_ORIGINS", "http://a.example,http://b.example")
	t.Setenv("TLS_CERT_FILE", "/etc/portal/tls.crt")
	t.Setenv("TLS_KEY_FILE", "/etc/portal/tls.key")
	t.Setenv("HTTPS_ONLY", "true")
}

func TestNew(t *testing.T) {
	resetFlagsAndArgs()
	setEnv(t)
	os.Args = []string{
		"cmd",
		"-a", "localhost:8080",
		"-h", "flag-host",
		"-d", "flagdb",
		"-l", "error",
		"-i=false",
	}
	cfg := New()

	assert.Equal(t, "localhost:8080", cfg.Address)
	assert.Equal(t, "flag-host", cfg.DBHost)
	assert.Equal(t, "flagdb", cfg.DBName)
	assert.Equal(t, "error", cfg.LogLvl)
	assert.False(t, cfg.ImmediateSettlement)
	assert.Equal(t, "portal/db", cfg.AWSSecretName)
}

func TestDefaultsAndEnv(t *testing.T) {
	resetFlagsAndArgs()
	setEnv(t)

	cfg := New()

	assert.Equal(t, "localhost:9000", cfg.Address)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.True(t, cfg.ImmediateSettlement)
	assert.Equal(t, 30*time.Minute, cfg.LockoutDuration)
	assert.Equal(t, 5, cfg.LoginMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LoginWindow)
	assert.Equal(t, 5, cfg.LockoutMaxFailures)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5*time.Second, cfg.StoreTTL)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "/etc/portal/tls.crt", cfg.TLSCertFile)
	assert.Equal(t, "/etc/portal/tls.key", cfg.TLSKeyFile)
	assert.True(t, cfg.HTTPSOnly)
}
