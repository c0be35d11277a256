package config

import (
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Accounts.EnforceDateOrder {
		t.Error("date order should not be enforced by default")
	}
	if cfg.Database.ConnMaxLifetime != 5*time.Minute {
		t.Errorf("ConnMaxLifetime = %v", cfg.Database.ConnMaxLifetime)
	}
	if cfg.Backup.Enabled() {
		t.Error("backups should be off without a bucket")
	}
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("ACCOUNTS_ENFORCE_DATE_ORDER", "true")
	t.Setenv("BACKUP_S3_BUCKET", "vault-backups")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Server.Address() != "0.0.0.0:9090" {
		t.Errorf("Address() = %q", cfg.Server.Address())
	}
	if cfg.Database.Driver != DriverMySQL || !cfg.Accounts.EnforceDateOrder {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if !cfg.Backup.Enabled() || cfg.Backup.Schedule != "@daily" {
		t.Errorf("Backup = %+v", cfg.Backup)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Parse()
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"bad driver", func(c *Config) { c.Database.Driver = "oracle" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"bad scan cron", func(c *Config) { c.Accounts.ExpiryScanCron = "every hour" }},
		{"bad rate limit", func(c *Config) { c.RateLimit.RPS = 0 }},
		{"half backup credentials", func(c *Config) {
			c.Backup.Bucket = "b"
			c.Backup.AccessKeyID = "AKIA"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() expected error")
			}
		})
	}
}
