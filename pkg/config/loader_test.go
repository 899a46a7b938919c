package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestViperLoader_Defaults(t *testing.T) {
	loader := NewViperLoader("", "PYTOGO")

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.RouterType != "gin" {
		t.Errorf("RouterType = %q, want %q", cfg.RouterType, "gin")
	}
	if cfg.Service.Name != "pytogo-website" {
		t.Errorf("Service.Name = %q, want %q", cfg.Service.Name, "pytogo-website")
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("HTTP.Port = %d, want 8080", cfg.HTTP.Port)
	}
	if !cfg.Management.Enabled || cfg.Management.Port != 9090 {
		t.Errorf("Management = %+v, want enabled on port 9090", cfg.Management)
	}
	if cfg.I18n.DefaultLocale != "fr" {
		t.Errorf("I18n.DefaultLocale = %q, want %q", cfg.I18n.DefaultLocale, "fr")
	}
	if cfg.I18n.CookieName != "lang" {
		t.Errorf("I18n.CookieName = %q, want %q", cfg.I18n.CookieName, "lang")
	}
	if cfg.I18n.CookieMaxAge != 365*24*time.Hour {
		t.Errorf("I18n.CookieMaxAge = %v, want one year", cfg.I18n.CookieMaxAge)
	}
	if cfg.Storage.Type != StorageTypeMemory {
		t.Errorf("Storage.Type = %q, want %q", cfg.Storage.Type, StorageTypeMemory)
	}
	if cfg.Cache.Type != CacheTypeInMemory {
		t.Errorf("Cache.Type = %q, want %q", cfg.Cache.Type, CacheTypeInMemory)
	}
	if cfg.Observability.LogLevel != "info" || cfg.Observability.LogFormat != "json" {
		t.Errorf("Observability = %+v, want info/json", cfg.Observability)
	}
	if !cfg.RateLimit.Enabled {
		t.Error("RateLimit.Enabled = false, want true")
	}
}

func TestViperLoader_EnvOverrides(t *testing.T) {
	t.Setenv("PYTOGO_HTTP_PORT", "3000")
	t.Setenv("PYTOGO_ROUTER_TYPE", "gorilla")
	t.Setenv("PYTOGO_I18N_DEFAULT_LOCALE", "en")
	t.Setenv("PYTOGO_STORAGE_TYPE", "supabase")
	t.Setenv("PYTOGO_SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("PYTOGO_SUPABASE_API_KEY", "test-key")
	t.Setenv("PYTOGO_LOG_LEVEL", "debug")

	loader := NewViperLoader("", "PYTOGO")
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTP.Port != 3000 {
		t.Errorf("HTTP.Port = %d, want 3000", cfg.HTTP.Port)
	}
	if cfg.RouterType != "gorilla" {
		t.Errorf("RouterType = %q, want %q", cfg.RouterType, "gorilla")
	}
	if cfg.I18n.DefaultLocale != "en" {
		t.Errorf("I18n.DefaultLocale = %q, want %q", cfg.I18n.DefaultLocale, "en")
	}
	if cfg.Storage.Supabase.URL != "https://example.supabase.co" {
		t.Errorf("Storage.Supabase.URL = %q", cfg.Storage.Supabase.URL)
	}
	if cfg.Observability.LogLevel != "debug" {
		t.Errorf("Observability.LogLevel = %q, want %q", cfg.Observability.LogLevel, "debug")
	}
}

func TestViperLoader_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
router_type: nethttp
http:
  port: 8888
i18n:
  default_locale: en
cache:
  type: redis
  url: redis://localhost:6379
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	loader := NewViperLoader(path, "PYTOGO")
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.RouterType != "nethttp" {
		t.Errorf("RouterType = %q, want %q", cfg.RouterType, "nethttp")
	}
	if cfg.HTTP.Port != 8888 {
		t.Errorf("HTTP.Port = %d, want 8888", cfg.HTTP.Port)
	}
	if cfg.Cache.Type != CacheTypeRedis || cfg.Cache.URL != "redis://localhost:6379" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	// File values do not disturb untouched defaults.
	if cfg.Management.Port != 9090 {
		t.Errorf("Management.Port = %d, want 9090", cfg.Management.Port)
	}
}

func TestViperLoader_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("http:\n  port: 8888\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("PYTOGO_HTTP_PORT", "3000")

	loader := NewViperLoader(path, "PYTOGO")
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTP.Port != 3000 {
		t.Errorf("HTTP.Port = %d, want env override 3000", cfg.HTTP.Port)
	}
}

func TestViperLoader_MissingConfigFile(t *testing.T) {
	loader := NewViperLoader("/nonexistent/config.yaml", "PYTOGO")
	if _, err := loader.Load(); err == nil {
		t.Fatal("Load() expected error for missing config file")
	}
}

func TestViperLoader_WithServiceNameDefault(t *testing.T) {
	loader := NewViperLoader("", "PYTOGO").WithServiceNameDefault("custom-site")
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Service.Name != "custom-site" {
		t.Errorf("Service.Name = %q, want %q", cfg.Service.Name, "custom-site")
	}
}

func TestViperLoader_Validate(t *testing.T) {
	loader := NewViperLoader("", "PYTOGO")

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(cfg *Config) {},
			wantErr: "",
		},
		{
			name:    "invalid router type",
			mutate:  func(cfg *Config) { cfg.RouterType = "chi" },
			wantErr: "invalid router_type",
		},
		{
			name:    "http port out of range",
			mutate:  func(cfg *Config) { cfg.HTTP.Port = 70000 },
			wantErr: "http.port must be between",
		},
		{
			name: "management port collides with http",
			mutate: func(cfg *Config) {
				cfg.Management.Port = cfg.HTTP.Port
			},
			wantErr: "management.port must differ",
		},
		{
			name: "supabase requires url",
			mutate: func(cfg *Config) {
				cfg.Storage.Type = StorageTypeSupabase
				cfg.Storage.Supabase.APIKey = "key"
			},
			wantErr: "storage.supabase.url is required",
		},
		{
			name: "supabase requires api key",
			mutate: func(cfg *Config) {
				cfg.Storage.Type = StorageTypeSupabase
				cfg.Storage.Supabase.URL = "https://example.supabase.co"
			},
			wantErr: "storage.supabase.api_key is required",
		},
		{
			name:    "unknown storage type",
			mutate:  func(cfg *Config) { cfg.Storage.Type = "postgres" },
			wantErr: "invalid storage.type",
		},
		{
			name:    "redis cache requires url",
			mutate:  func(cfg *Config) { cfg.Cache.Type = CacheTypeRedis },
			wantErr: "cache.url is required",
		},
		{
			name: "email requires host",
			mutate: func(cfg *Config) {
				cfg.Email.Enabled = true
				cfg.Email.NotifyTo = "team@pytogo.org"
			},
			wantErr: "email.smtp.host is required",
		},
		{
			name: "email requires notify address",
			mutate: func(cfg *Config) {
				cfg.Email.Enabled = true
				cfg.Email.SMTP.Host = "smtp.example.com"
			},
			wantErr: "email.notify_to is required",
		},
		{
			name: "redis ratelimit requires url",
			mutate: func(cfg *Config) {
				cfg.RateLimit.Type = "redis"
			},
			wantErr: "ratelimit.redis.url is required",
		},
		{
			name: "tracing requires endpoint",
			mutate: func(cfg *Config) {
				cfg.Observability.TracingEnabled = true
			},
			wantErr: "observability.tracing_endpoint is required",
		},
		{
			name:    "empty default locale",
			mutate:  func(cfg *Config) { cfg.I18n.DefaultLocale = "" },
			wantErr: "i18n.default_locale cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := loader.Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
