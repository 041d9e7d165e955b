package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Ensure envs are clean to use defaults
	for _, k := range []string{"DB_TYPE", "SEED_USERS", "BCRYPT_COST", "CSRF_ENABLED", "SESSION_TTL", "LOGIN_SUCCESS_PATH"} {
		os.Unsetenv(k)
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DBType != "sqlite" || cfg.Port == "" || cfg.BcryptCost != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.CSRFEnabled {
		t.Fatalf("csrf protection must default to on")
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("session ttl = %s", cfg.SessionTTL)
	}
	seeds, err := cfg.Seeds()
	if err != nil || len(seeds) != 2 {
		t.Fatalf("seeds: %v %+v", err, seeds)
	}
	if seeds[1].Username != "admin" || seeds[1].Role != "ADMIN" {
		t.Fatalf("unexpected admin seed: %+v", seeds[1])
	}
}

func TestLoadConfig_PostgresRequiresURL(t *testing.T) {
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("POSTGRES_URL", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when POSTGRES_URL is not set")
	}
	t.Setenv("POSTGRES_URL", "postgres://localhost/ems")
	if _, err := LoadConfig(); err != nil {
		t.Fatalf("LoadConfig with url: %v", err)
	}
}

func TestValidate_BcryptCostRange(t *testing.T) {
	for _, cost := range []int{4, 9, 13} {
		cfg := &Config{DBType: "sqlite", BcryptCost: cost, SessionTTL: time.Minute, LoginSuccessPath: "/", SeedUsers: []string{"a:b:USER"}}
		if err := cfg.Validate(); err == nil {
			t.Fatalf("cost %d accepted", cost)
		}
	}
}

func TestSeeds_Parsing(t *testing.T) {
	cfg := &Config{SeedUsers: []string{"bob:pa:ss:word:user"}}
	seeds, err := cfg.Seeds()
	if err != nil {
		t.Fatalf("Seeds: %v", err)
	}
	if seeds[0].Username != "bob" || seeds[0].Password != "pa:ss:word" || seeds[0].Role != "USER" {
		t.Fatalf("parsed %+v", seeds[0])
	}

	for _, bad := range []string{"nocolon", ":pw:USER", "bob:USER", "bob:pw:"} {
		cfg := &Config{SeedUsers: []string{bad}}
		if _, err := cfg.Seeds(); err == nil {
			t.Fatalf("entry %q accepted", bad)
		}
	}
}

func TestString_MasksSecrets(t *testing.T) {
	cfg := &Config{DBType: "sqlite", SeedUsers: []string{"admin:topsecret:ADMIN"}, R2: R2Config{SecretAccessKey: "r2secret"}}
	s := cfg.String()
	for _, secret := range []string{"topsecret", "r2secret"} {
		if strings.Contains(s, secret) {
			t.Fatalf("String leaked %q: %s", secret, s)
		}
	}
}
