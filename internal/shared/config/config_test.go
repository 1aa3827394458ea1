package config

import (
	"net"
	"os"
	"testing"
	"time"
)

func setRequiredEnvVars(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_ACCESS_SECRET", "test-access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "test-refresh-secret")
}

func TestLoad_Success(t *testing.T) {
	setRequiredEnvVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.JWT.AccessSecret != "test-access-secret" {
		t.Errorf("JWT.AccessSecret = %q, want %q", cfg.JWT.AccessSecret, "test-access-secret")
	}
	if cfg.Server.Port != "5000" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "5000")
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want %d", cfg.Database.Port, 5432)
	}
	if cfg.JWT.AccessTTL != 15*time.Minute {
		t.Errorf("JWT.AccessTTL = %v, want 15m", cfg.JWT.AccessTTL)
	}
	if cfg.JWT.RefreshTTL != 7*24*time.Hour {
		t.Errorf("JWT.RefreshTTL = %v, want 168h", cfg.JWT.RefreshTTL)
	}
	if cfg.AMQP.Enabled() {
		t.Error("AMQP.Enabled() = true without AMQP_URL")
	}
}

func TestLoad_MissingAccessSecret(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
	os.Unsetenv("JWT_ACCESS_SECRET")

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error for missing JWT_ACCESS_SECRET, got nil")
	}
}

func TestLoad_MissingRefreshSecret(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "")
	os.Unsetenv("JWT_REFRESH_SECRET")

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error for missing JWT_REFRESH_SECRET, got nil")
	}
}

func TestLoad_SameSecrets(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "same")
	t.Setenv("JWT_REFRESH_SECRET", "same")

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error when access and refresh secrets match, got nil")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid DB_PORT", "DB_PORT", "not-a-number"},
		{"invalid ACCESS_TOKEN_TTL", "ACCESS_TOKEN_TTL", "soon"},
		{"invalid REFRESH_TOKEN_TTL", "REFRESH_TOKEN_TTL", "later"},
		{"invalid SCHEDULER_WORKERS", "SCHEDULER_WORKERS", "many"},
		{"invalid REMINDER_LEAD_TIME", "REMINDER_LEAD_TIME", "1 day"},
		{"invalid AUTH_RATE_LIMIT_RPS", "AUTH_RATE_LIMIT_RPS", "fast"},
		{"invalid TRUSTED_PROXIES", "TRUSTED_PROXIES", "10.0.0.0/8,gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnvVars(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() expected error for %s=%q, got nil", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_TLSValidation(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("TLS_ENABLED", "true")
	t.Setenv("TLS_CERT_PATH", "")
	t.Setenv("TLS_KEY_PATH", "")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for TLS without cert path, got nil")
	}

	t.Setenv("TLS_CERT_PATH", "/tmp/cert.pem")
	if _, err := Load(); err == nil {
		t.Error("Load() expected error for TLS without key path, got nil")
	}

	t.Setenv("TLS_KEY_PATH", "/tmp/key.pem")
	if _, err := Load(); err != nil {
		t.Errorf("Load() unexpected error with full TLS config: %v", err)
	}
}

func TestLoad_Lists(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", " app.example.com , ,localhost:5173")
	t.Setenv("SCHEDULER_TIMES", "07:30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := []string{"app.example.com", "localhost:5173"}
	if len(cfg.Server.AllowedOrigins) != len(want) {
		t.Fatalf("AllowedOrigins = %v, want %v", cfg.Server.AllowedOrigins, want)
	}
	for i := range want {
		if cfg.Server.AllowedOrigins[i] != want[i] {
			t.Errorf("AllowedOrigins[%d] = %q, want %q", i, cfg.Server.AllowedOrigins[i], want[i])
		}
	}
	if len(cfg.Scheduler.ScheduleTimes) != 1 || cfg.Scheduler.ScheduleTimes[0] != "07:30" {
		t.Errorf("ScheduleTimes = %v, want [07:30]", cfg.Scheduler.ScheduleTimes)
	}
}

func TestGetBoolEnv(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"", true, true},
		{"yes", false, true},
		{"1", false, true},
		{"FALSE", true, false},
		{"no", true, false},
		{"maybe", true, true},
	}

	for _, tt := range tests {
		t.Setenv("TEST_BOOL", tt.value)
		if got := getBoolEnv("TEST_BOOL", tt.def); got != tt.want {
			t.Errorf("getBoolEnv(%q, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
		}
	}
}

func TestDatabaseConfig_URL(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5433, User: "app", Password: "p@ss", DBName: "expensync", SSLMode: "disable"}

	want := "postgres://app:p%40ss@db:5433/expensync?sslmode=disable"
	if got := c.URL(); got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

func TestLoad_TrustedProxies(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.7 ,::1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(cfg.Server.TrustedProxies) != 3 {
		t.Fatalf("TrustedProxies = %v, want 3 networks", cfg.Server.TrustedProxies)
	}
	if !cfg.Server.TrustedProxies[0].Contains(net.ParseIP("10.1.2.3")) {
		t.Errorf("10.0.0.0/8 should contain 10.1.2.3")
	}
	if got := cfg.Server.TrustedProxies[1].String(); got != "192.0.2.7/32" {
		t.Errorf("bare IPv4 = %q, want 192.0.2.7/32", got)
	}
	if got := cfg.Server.TrustedProxies[2].String(); got != "::1/128" {
		t.Errorf("bare IPv6 = %q, want ::1/128", got)
	}
}

func TestLoad_NoTrustedProxiesByDefault(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("TRUSTED_PROXIES", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(cfg.Server.TrustedProxies) != 0 {
		t.Errorf("TrustedProxies = %v, want none", cfg.Server.TrustedProxies)
	}
}
