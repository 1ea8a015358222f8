package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"ADDR", "PORT", "STORE_DRIVER", "REQUEST_TIMEOUT", "OPTION_COUNT", "CORS_ORIGINS", "IMPORT_ENABLED", "AMQP_EXCHANGE"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	if cfg.Addr != ":8080" {
		t.Fatalf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.StoreDriver != StoreMemory {
		t.Fatalf("StoreDriver = %q, want memory", cfg.StoreDriver)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.OptionCount != 4 {
		t.Fatalf("OptionCount = %d, want 4", cfg.OptionCount)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if !cfg.ImportEnabled {
		t.Fatalf("ImportEnabled should default to true")
	}
	if cfg.AMQPExchange != "quiz.events" {
		t.Fatalf("AMQPExchange = %q", cfg.AMQPExchange)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("PORT", "3000")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("OPTION_COUNT", "5")
	t.Setenv("CORS_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("IMPORT_ENABLED", "no")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := FromEnv()
	if cfg.Addr != ":3000" {
		t.Fatalf("Addr = %q, want :3000", cfg.Addr)
	}
	if cfg.StoreDriver != StorePostgres {
		t.Fatalf("StoreDriver = %q, want postgres", cfg.StoreDriver)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("RequestTimeout = %v, want 3s", cfg.RequestTimeout)
	}
	if cfg.OptionCount != 5 {
		t.Fatalf("OptionCount = %d, want 5", cfg.OptionCount)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.ImportEnabled {
		t.Fatalf("ImportEnabled should be false")
	}
	if cfg.RedisDB != 0 {
		t.Fatalf("RedisDB = %d, want fallback 0", cfg.RedisDB)
	}

	t.Setenv("ADDR", "127.0.0.1:9000")
	if got := FromEnv().Addr; got != "127.0.0.1:9000" {
		t.Fatalf("ADDR should win over PORT, got %q", got)
	}
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("QUIZ_TEST_ONLY_KEY=from-file\nLOG_FORMAT=json\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("LOG_FORMAT", "text")
	t.Cleanup(func() { _ = os.Unsetenv("QUIZ_TEST_ONLY_KEY") })

	cfg := Load(path)
	if os.Getenv("QUIZ_TEST_ONLY_KEY") != "from-file" {
		t.Fatalf(".env value not loaded")
	}
	if cfg.LogFormat != "text" {
		t.Fatalf("LogFormat = %q, environment should win over .env", cfg.LogFormat)
	}
}
