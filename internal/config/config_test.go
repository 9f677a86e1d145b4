package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Alejmm/MicroservicioPlayers/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "players-service" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.StorageDriver != StorageDriverPostgres {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if cfg.TeamsBaseURL != "http://localhost:8082" || cfg.TeamsPath != "/api/teams" {
		t.Fatalf("unexpected teams endpoint: %q %q", cfg.TeamsBaseURL, cfg.TeamsPath)
	}
	if cfg.TeamsTimeout != 3*time.Second {
		t.Fatalf("unexpected TeamsTimeout: %s", cfg.TeamsTimeout)
	}
	if cfg.TeamsRefreshPolicy != TeamsRefreshNever {
		t.Fatalf("unexpected TeamsRefreshPolicy: %q", cfg.TeamsRefreshPolicy)
	}
	if cfg.RoutePrefix != "" {
		t.Fatalf("expected no route prefix by default, got %q", cfg.RoutePrefix)
	}
	if cfg.CacheEnabled {
		t.Fatalf("expected player read cache to be off by default")
	}
	if cfg.SeedWorkers != 4 {
		t.Fatalf("unexpected SeedWorkers: %d", cfg.SeedWorkers)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "storage driver", key: "STORAGE_DRIVER", value: "mysql"},
		{name: "refresh policy", key: "TEAMS_REFRESH_POLICY", value: "hourly"},
		{name: "teams timeout", key: "TEAMS_TIMEOUT", value: "0s"},
		{name: "teams timeout format", key: "TEAMS_TIMEOUT", value: "three"},
		{name: "refresh ttl", key: "TEAMS_REFRESH_TTL", value: "-1m"},
		{name: "circuit failure count", key: "TEAMS_CIRCUIT_FAILURE_COUNT", value: "0"},
		{name: "cache ttl", key: "CACHE_TTL", value: "0"},
		{name: "seed workers", key: "SEED_WORKERS", value: "0"},
		{name: "max open conns", key: "DB_MAX_OPEN_CONNS", value: "abc"},
		{name: "cors", key: "CORS_ALLOWED_ORIGINS", value: " , "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_TeamsAndStorageOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("STORAGE_DRIVER", " Memory ")
	t.Setenv("APP_ROUTE_PREFIX", "/api")
	t.Setenv("TEAMS_BASE_URL", "http://teams:8080")
	t.Setenv("TEAMS_REFRESH_POLICY", "TTL")
	t.Setenv("TEAMS_REFRESH_TTL", "90s")
	t.Setenv("TEAMS_CIRCUIT_ENABLED", "false")
	t.Setenv("APP_LOG_LEVEL", "warning")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageDriverMemory {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if cfg.RoutePrefix != "/api" {
		t.Fatalf("unexpected RoutePrefix: %q", cfg.RoutePrefix)
	}
	if cfg.TeamsBaseURL != "http://teams:8080" {
		t.Fatalf("unexpected TeamsBaseURL: %q", cfg.TeamsBaseURL)
	}
	if cfg.TeamsRefreshPolicy != TeamsRefreshTTL || cfg.TeamsRefreshTTL != 90*time.Second {
		t.Fatalf("unexpected refresh policy: %q %s", cfg.TeamsRefreshPolicy, cfg.TeamsRefreshTTL)
	}
	if cfg.TeamsCircuitEnabled {
		t.Fatalf("expected circuit breaker to be disabled")
	}
	if cfg.LogLevel != logging.LevelWarn {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "players.env")
	if err := os.WriteFile(path, []byte("TEAMS_PATH=/v2/teams\nAPP_SERVICE_NAME=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_ENV_FILE", path)
	t.Setenv("APP_SERVICE_NAME", "from-process")
	// Registers a restore so the value loaded from the file does not leak into other tests.
	t.Setenv("TEAMS_PATH", "")
	if err := os.Unsetenv("TEAMS_PATH"); err != nil {
		t.Fatalf("unset TEAMS_PATH: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.TeamsPath != "/v2/teams" {
		t.Fatalf("expected TEAMS_PATH from file, got %q", cfg.TeamsPath)
	}
	if cfg.ServiceName != "from-process" {
		t.Fatalf("expected process env to win over file, got %q", cfg.ServiceName)
	}
}

func TestLoad_MissingDotEnvFileIsIgnored(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	if _, err := Load(); err != nil {
		t.Fatalf("expected missing env file to be ignored, got %v", err)
	}
}
