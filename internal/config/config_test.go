package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":    "postgres://localhost/store",
		"GATEWAY_ADDRESS": "https://gateway.example.com",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RunAddress != ":8080" {
		t.Fatalf("unexpected run address: %s", cfg.RunAddress)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Fatalf("unexpected token ttl: %s", cfg.TokenTTL)
	}
	if cfg.ReconcileBatch != 32 || cfg.WorkerPoolSize != 4 {
		t.Fatalf("unexpected worker defaults: %+v", cfg)
	}
	if cfg.RedisAddress != "" {
		t.Fatalf("expected empty redis address, got %s", cfg.RedisAddress)
	}
}

func TestLoadMissingDatabase(t *testing.T) {
	_, err := load(nil, lookupFrom(map[string]string{
		"GATEWAY_ADDRESS": "https://gateway.example.com",
	}))
	if err == nil {
		t.Fatal("expected error when database URI is missing")
	}
}

func TestLoadMissingGateway(t *testing.T) {
	_, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI": "postgres://localhost/store",
	}))
	if err == nil {
		t.Fatal("expected error when gateway address is missing")
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	cfg, err := load(
		[]string{"-a", ":9000", "-redis", "localhost:6379", "-reconcile-interval", "5s"},
		lookupFrom(map[string]string{
			"RUN_ADDRESS":     ":8081",
			"DATABASE_URI":    "postgres://localhost/store",
			"GATEWAY_ADDRESS": "https://gateway.example.com",
		}),
	)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RunAddress != ":9000" {
		t.Fatalf("expected flag to win, got %s", cfg.RunAddress)
	}
	if cfg.RedisAddress != "localhost:6379" {
		t.Fatalf("unexpected redis address: %s", cfg.RedisAddress)
	}
	if cfg.ReconcileInterval != 5*time.Second {
		t.Fatalf("unexpected reconcile interval: %s", cfg.ReconcileInterval)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	_, err := load([]string{"-token-ttl", "nope"}, lookupFrom(map[string]string{
		"DATABASE_URI":    "postgres://localhost/store",
		"GATEWAY_ADDRESS": "https://gateway.example.com",
	}))
	if err == nil {
		t.Fatal("expected duration parse error")
	}
}

func TestLoadNegativeValuesFallBack(t *testing.T) {
	cfg, err := load([]string{"-reconcile-batch", "-1", "-worker-pool", "0"}, lookupFrom(map[string]string{
		"DATABASE_URI":    "postgres://localhost/store",
		"GATEWAY_ADDRESS": "https://gateway.example.com",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ReconcileBatch != defaultReconcileBatch {
		t.Fatalf("unexpected batch: %d", cfg.ReconcileBatch)
	}
	if cfg.WorkerPoolSize != defaultWorkerPoolSize {
		t.Fatalf("unexpected pool size: %d", cfg.WorkerPoolSize)
	}
}

func TestLoadJWTSecretFile(t *testing.T) {
	dir := t.TempDir()
	secretPath := filepath.Join(dir, "secret")
	if err := os.WriteFile(secretPath, []byte("file-secret"), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}

	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":    "postgres://localhost/store",
		"GATEWAY_ADDRESS": "https://gateway.example.com",
		"JWT_SECRET_FILE": secretPath,
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWTSecret != "file-secret" {
		t.Fatalf("unexpected jwt secret: %q", cfg.JWTSecret)
	}

	_, err = load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":    "postgres://localhost/store",
		"GATEWAY_ADDRESS": "https://gateway.example.com",
		"JWT_SECRET_FILE": filepath.Join(dir, "missing"),
	}))
	if err == nil {
		t.Fatal("expected error for unreadable secret file")
	}
}
