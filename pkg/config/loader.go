package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Loader defines the interface for loading configuration
type Loader interface {
	Load() (*Config, error)
	Validate(*Config) error
}

// ViperLoader implements Loader using Viper for configuration management
type ViperLoader struct {
	configFile         string
	envPrefix          string
	serviceNameDefault string
}

// NewViperLoader creates a new ViperLoader.
// configFile: path to configuration file (optional, can be empty)
// envPrefix: prefix for environment variables (e.g., "PYTOGO")
func NewViperLoader(configFile, envPrefix string) *ViperLoader {
	return &ViperLoader{
		configFile: configFile,
		envPrefix:  envPrefix,
	}
}

// WithServiceNameDefault sets the default service.name used when no config/env override is provided.
func (l *ViperLoader) WithServiceNameDefault(serviceName string) *ViperLoader {
	if l == nil {
		return l
	}
	l.serviceNameDefault = strings.TrimSpace(serviceName)
	return l
}

// DefaultConfig returns the built-in defaults for the website.
func DefaultConfig() *Config {
	return &Config{
		RouterType: "gin",
		Service: ServiceConfig{
			Name:        "pytogo-website",
			Environment: "development",
		},
		HTTP: HTTPConfig{
			Port:           8080,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxRequestSize: 1 << 20, // 1 MiB
		},
		Management: ManagementConfig{
			Enabled:      true,
			Port:         9090,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		I18n: I18nConfig{
			DefaultLocale: "fr",
			CookieName:    "lang",
			CookieMaxAge:  365 * 24 * time.Hour,
		},
		Forms: FormsConfig{
			CheckDeliverability: true,
		},
		Storage: StorageConfig{
			Type: StorageTypeMemory,
			Supabase: SupabaseConfig{
				OperationTimeout: 10 * time.Second,
			},
		},
		Cache: CacheConfig{
			Type:             CacheTypeInMemory,
			MaxConns:         10,
			OperationTimeout: 5 * time.Second,
			TTL:              5 * time.Minute,
		},
		Email: EmailConfig{
			Enabled:  false,
			Provider: "smtp",
			SMTP: EmailSMTPConfig{
				Port:             587,
				EnableTLS:        true,
				OperationTimeout: 10 * time.Second,
			},
		},
		Observability: ObservabilityConfig{
			LogLevel:          "info",
			LogFormat:         "json",
			TracingEnabled:    false,
			TracingSampleRate: 1.0,
			RequestLogging: RequestLoggingConfig{
				Enabled:              true,
				LogStart:             false,
				ExcludedPathPrefixes: []string{"/static/", "/health"},
			},
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			Type:              "local",
			RequestsPerSecond: 5,
			Burst:             10,
			Window:            time.Second,
		},
	}
}

// Load loads configuration with precedence: ENV > file > defaults
func (l *ViperLoader) Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	l.setDefaults(v, defaults)

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", l.configFile, err)
		}
	}

	// Environment variables override file config through explicit bindings.
	v.SetEnvPrefix(l.envPrefix)
	l.bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := l.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// bindEnvVars explicitly binds environment variables for nested structs
func (l *ViperLoader) bindEnvVars(v *viper.Viper) {
	v.BindEnv("router_type", l.prefixedEnv("ROUTER_TYPE"))
	v.BindEnv("service.name", l.prefixedEnv("SERVICE_NAME"))
	v.BindEnv("service.environment", l.prefixedEnv("SERVICE_ENVIRONMENT"), l.prefixedEnv("ENVIRONMENT"))

	// HTTP
	v.BindEnv("http.port", l.prefixedEnv("HTTP_PORT"))
	v.BindEnv("http.read_timeout", l.prefixedEnv("HTTP_READ_TIMEOUT"))
	v.BindEnv("http.write_timeout", l.prefixedEnv("HTTP_WRITE_TIMEOUT"))
	v.BindEnv("http.idle_timeout", l.prefixedEnv("HTTP_IDLE_TIMEOUT"))
	v.BindEnv("http.max_request_size", l.prefixedEnv("HTTP_MAX_REQUEST_SIZE"))

	// Management
	v.BindEnv("management.enabled", l.prefixedEnv("MGMT_ENABLED"))
	v.BindEnv("management.port", l.prefixedEnv("MGMT_PORT"))
	v.BindEnv("management.read_timeout", l.prefixedEnv("MGMT_READ_TIMEOUT"))
	v.BindEnv("management.write_timeout", l.prefixedEnv("MGMT_WRITE_TIMEOUT"))

	// I18n
	v.BindEnv("i18n.default_locale", l.prefixedEnv("I18N_DEFAULT_LOCALE"))
	v.BindEnv("i18n.cookie_name", l.prefixedEnv("I18N_COOKIE_NAME"))
	v.BindEnv("i18n.cookie_max_age", l.prefixedEnv("I18N_COOKIE_MAX_AGE"))

	// Forms
	v.BindEnv("forms.check_deliverability", l.prefixedEnv("FORMS_CHECK_DELIVERABILITY"))

	// Storage
	v.BindEnv("storage.type", l.prefixedEnv("STORAGE_TYPE"))
	v.BindEnv("storage.supabase.url", l.prefixedEnv("SUPABASE_URL"))
	v.BindEnv("storage.supabase.api_key", l.prefixedEnv("SUPABASE_API_KEY"))
	v.BindEnv("storage.supabase.operation_timeout", l.prefixedEnv("SUPABASE_OPERATION_TIMEOUT"))

	// Cache
	v.BindEnv("cache.type", l.prefixedEnv("CACHE_TYPE"))
	v.BindEnv("cache.url", l.prefixedEnv("CACHE_URL"))
	v.BindEnv("cache.max_conns", l.prefixedEnv("CACHE_MAX_CONNS"))
	v.BindEnv("cache.operation_timeout", l.prefixedEnv("CACHE_OPERATION_TIMEOUT"))
	v.BindEnv("cache.ttl", l.prefixedEnv("CACHE_TTL"))

	// Email
	v.BindEnv("email.enabled", l.prefixedEnv("EMAIL_ENABLED"))
	v.BindEnv("email.provider", l.prefixedEnv("EMAIL_PROVIDER"))
	v.BindEnv("email.notify_to", l.prefixedEnv("EMAIL_NOTIFY_TO"))
	v.BindEnv("email.smtp.host", l.prefixedEnv("EMAIL_SMTP_HOST"))
	v.BindEnv("email.smtp.port", l.prefixedEnv("EMAIL_SMTP_PORT"))
	v.BindEnv("email.smtp.username", l.prefixedEnv("EMAIL_SMTP_USERNAME"))
	v.BindEnv("email.smtp.password", l.prefixedEnv("EMAIL_SMTP_PASSWORD"))
	v.BindEnv("email.smtp.from", l.prefixedEnv("EMAIL_SMTP_FROM"))
	v.BindEnv("email.smtp.enable_tls", l.prefixedEnv("EMAIL_SMTP_ENABLE_TLS"))
	v.BindEnv("email.smtp.insecure_skip_verify", l.prefixedEnv("EMAIL_SMTP_INSECURE_SKIP_VERIFY"))
	v.BindEnv("email.smtp.operation_timeout", l.prefixedEnv("EMAIL_SMTP_OPERATION_TIMEOUT"))

	// Observability
	v.BindEnv("observability.log_level", l.prefixedEnv("LOG_LEVEL"))
	v.BindEnv("observability.log_format", l.prefixedEnv("LOG_FORMAT"))
	v.BindEnv("observability.service_name", l.prefixedEnv("OBSERVABILITY_SERVICE_NAME"))
	v.BindEnv("observability.tracing_enabled", l.prefixedEnv("TRACING_ENABLED"))
	v.BindEnv("observability.tracing_sample_rate", l.prefixedEnv("TRACING_SAMPLE_RATE"))
	v.BindEnv("observability.tracing_endpoint", l.prefixedEnv("TRACING_ENDPOINT"))
	v.BindEnv("observability.request_logging.enabled", l.prefixedEnv("REQUEST_LOGGING_ENABLED"))
	v.BindEnv("observability.request_logging.log_start", l.prefixedEnv("REQUEST_LOGGING_LOG_START"))
	v.BindEnv("observability.request_logging.excluded_path_prefixes", l.prefixedEnv("REQUEST_LOGGING_EXCLUDED_PATH_PREFIXES"))

	// Rate limit
	v.BindEnv("ratelimit.enabled", l.prefixedEnv("RATELIMIT_ENABLED"))
	v.BindEnv("ratelimit.type", l.prefixedEnv("RATELIMIT_TYPE"))
	v.BindEnv("ratelimit.requests_per_second", l.prefixedEnv("RATELIMIT_REQUESTS_PER_SECOND"))
	v.BindEnv("ratelimit.burst", l.prefixedEnv("RATELIMIT_BURST"))
	v.BindEnv("ratelimit.window", l.prefixedEnv("RATELIMIT_WINDOW"))
	v.BindEnv("ratelimit.redis.url", l.prefixedEnv("RATELIMIT_REDIS_URL"))
	v.BindEnv("ratelimit.redis.max_conns", l.prefixedEnv("RATELIMIT_REDIS_MAX_CONNS"))
	v.BindEnv("ratelimit.redis.operation_timeout", l.prefixedEnv("RATELIMIT_REDIS_OPERATION_TIMEOUT"))
	v.BindEnv("ratelimit.redis.prefix", l.prefixedEnv("RATELIMIT_REDIS_PREFIX"))
}

func (l *ViperLoader) prefixedEnv(suffix string) string {
	prefix := strings.TrimSpace(l.envPrefix)
	if prefix == "" {
		return suffix
	}
	return prefix + "_" + suffix
}

func (l *ViperLoader) defaultServiceName(fallback string) string {
	if l.serviceNameDefault != "" {
		return l.serviceNameDefault
	}
	return fallback
}

func (l *ViperLoader) setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("router_type", cfg.RouterType)
	v.SetDefault("service.name", l.defaultServiceName(cfg.Service.Name))
	v.SetDefault("service.environment", cfg.Service.Environment)

	v.SetDefault("http.port", cfg.HTTP.Port)
	v.SetDefault("http.read_timeout", cfg.HTTP.ReadTimeout)
	v.SetDefault("http.write_timeout", cfg.HTTP.WriteTimeout)
	v.SetDefault("http.idle_timeout", cfg.HTTP.IdleTimeout)
	v.SetDefault("http.max_request_size", cfg.HTTP.MaxRequestSize)

	v.SetDefault("management.enabled", cfg.Management.Enabled)
	v.SetDefault("management.port", cfg.Management.Port)
	v.SetDefault("management.read_timeout", cfg.Management.ReadTimeout)
	v.SetDefault("management.write_timeout", cfg.Management.WriteTimeout)

	v.SetDefault("i18n.default_locale", cfg.I18n.DefaultLocale)
	v.SetDefault("i18n.cookie_name", cfg.I18n.CookieName)
	v.SetDefault("i18n.cookie_max_age", cfg.I18n.CookieMaxAge)

	v.SetDefault("forms.check_deliverability", cfg.Forms.CheckDeliverability)

	v.SetDefault("storage.type", cfg.Storage.Type)
	v.SetDefault("storage.supabase.url", cfg.Storage.Supabase.URL)
	v.SetDefault("storage.supabase.api_key", cfg.Storage.Supabase.APIKey)
	v.SetDefault("storage.supabase.operation_timeout", cfg.Storage.Supabase.OperationTimeout)

	v.SetDefault("cache.type", cfg.Cache.Type)
	v.SetDefault("cache.url", cfg.Cache.URL)
	v.SetDefault("cache.max_conns", cfg.Cache.MaxConns)
	v.SetDefault("cache.operation_timeout", cfg.Cache.OperationTimeout)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)

	v.SetDefault("email.enabled", cfg.Email.Enabled)
	v.SetDefault("email.provider", cfg.Email.Provider)
	v.SetDefault("email.notify_to", cfg.Email.NotifyTo)
	v.SetDefault("email.smtp.host", cfg.Email.SMTP.Host)
	v.SetDefault("email.smtp.port", cfg.Email.SMTP.Port)
	v.SetDefault("email.smtp.username", cfg.Email.SMTP.Username)
	v.SetDefault("email.smtp.password", cfg.Email.SMTP.Password)
	v.SetDefault("email.smtp.from", cfg.Email.SMTP.From)
	v.SetDefault("email.smtp.enable_tls", cfg.Email.SMTP.EnableTLS)
	v.SetDefault("email.smtp.insecure_skip_verify", cfg.Email.SMTP.InsecureSkipVerify)
	v.SetDefault("email.smtp.operation_timeout", cfg.Email.SMTP.OperationTimeout)

	v.SetDefault("observability.log_level", cfg.Observability.LogLevel)
	v.SetDefault("observability.log_format", cfg.Observability.LogFormat)
	v.SetDefault("observability.service_name", cfg.Observability.ServiceName)
	v.SetDefault("observability.tracing_enabled", cfg.Observability.TracingEnabled)
	v.SetDefault("observability.tracing_sample_rate", cfg.Observability.TracingSampleRate)
	v.SetDefault("observability.tracing_endpoint", cfg.Observability.TracingEndpoint)
	v.SetDefault("observability.request_logging.enabled", cfg.Observability.RequestLogging.Enabled)
	v.SetDefault("observability.request_logging.log_start", cfg.Observability.RequestLogging.LogStart)
	v.SetDefault("observability.request_logging.excluded_path_prefixes", cfg.Observability.RequestLogging.ExcludedPathPrefixes)

	v.SetDefault("ratelimit.enabled", cfg.RateLimit.Enabled)
	v.SetDefault("ratelimit.type", cfg.RateLimit.Type)
	v.SetDefault("ratelimit.requests_per_second", cfg.RateLimit.RequestsPerSecond)
	v.SetDefault("ratelimit.burst", cfg.RateLimit.Burst)
	v.SetDefault("ratelimit.window", cfg.RateLimit.Window)
	v.SetDefault("ratelimit.redis.url", cfg.RateLimit.Redis.URL)
	v.SetDefault("ratelimit.redis.max_conns", cfg.RateLimit.Redis.MaxConns)
	v.SetDefault("ratelimit.redis.operation_timeout", cfg.RateLimit.Redis.OperationTimeout)
	v.SetDefault("ratelimit.redis.prefix", cfg.RateLimit.Redis.Prefix)
}

// Validate checks configuration consistency before the servers start.
func (l *ViperLoader) Validate(cfg *Config) error {
	var errs []error

	validRouterTypes := []string{"nethttp", "gin", "gorilla"}
	if !contains(validRouterTypes, strings.ToLower(cfg.RouterType)) {
		errs = append(errs, fmt.Errorf("invalid router_type: %s (must be one of: %v)", cfg.RouterType, validRouterTypes))
	}

	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port must be between 1 and 65535, got %d", cfg.HTTP.Port))
	}
	if cfg.Management.Enabled {
		if cfg.Management.Port <= 0 || cfg.Management.Port > 65535 {
			errs = append(errs, fmt.Errorf("management.port must be between 1 and 65535, got %d", cfg.Management.Port))
		}
		if cfg.Management.Port == cfg.HTTP.Port {
			errs = append(errs, errors.New("management.port must differ from http.port"))
		}
	}

	switch cfg.Storage.Type {
	case StorageTypeSupabase:
		if cfg.Storage.Supabase.URL == "" {
			errs = append(errs, errors.New("storage.supabase.url is required when storage.type is supabase"))
		}
		if cfg.Storage.Supabase.APIKey == "" {
			errs = append(errs, errors.New("storage.supabase.api_key is required when storage.type is supabase"))
		}
	case StorageTypeMemory:
	default:
		errs = append(errs, fmt.Errorf("invalid storage.type: %s (must be one of: [%s %s])", cfg.Storage.Type, StorageTypeSupabase, StorageTypeMemory))
	}

	switch cfg.Cache.Type {
	case CacheTypeRedis:
		if cfg.Cache.URL == "" {
			errs = append(errs, errors.New("cache.url is required when cache.type is redis"))
		}
	case CacheTypeInMemory:
	default:
		errs = append(errs, fmt.Errorf("invalid cache.type: %s (must be one of: [%s %s])", cfg.Cache.Type, CacheTypeRedis, CacheTypeInMemory))
	}

	if cfg.Email.Enabled {
		if cfg.Email.Provider != "smtp" {
			errs = append(errs, fmt.Errorf("invalid email.provider: %s (only smtp is supported)", cfg.Email.Provider))
		}
		if cfg.Email.SMTP.Host == "" {
			errs = append(errs, errors.New("email.smtp.host is required when email is enabled"))
		}
		if cfg.Email.NotifyTo == "" {
			errs = append(errs, errors.New("email.notify_to is required when email is enabled"))
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.RequestsPerSecond <= 0 {
			errs = append(errs, errors.New("ratelimit.requests_per_second must be greater than 0"))
		}
		if cfg.RateLimit.Burst < 0 {
			errs = append(errs, errors.New("ratelimit.burst cannot be negative"))
		}
		if cfg.RateLimit.Type == "redis" && cfg.RateLimit.Redis.URL == "" {
			errs = append(errs, errors.New("ratelimit.redis.url is required when ratelimit.type is redis"))
		}
	}

	if cfg.Observability.TracingEnabled {
		if cfg.Observability.TracingSampleRate < 0 || cfg.Observability.TracingSampleRate > 1 {
			errs = append(errs, fmt.Errorf("observability.tracing_sample_rate must be between 0 and 1, got %f", cfg.Observability.TracingSampleRate))
		}
		if cfg.Observability.TracingEndpoint == "" {
			errs = append(errs, errors.New("observability.tracing_endpoint is required when tracing is enabled"))
		}
	}

	if cfg.I18n.DefaultLocale == "" {
		errs = append(errs, errors.New("i18n.default_locale cannot be empty"))
	}
	if cfg.I18n.CookieMaxAge <= 0 {
		errs = append(errs, errors.New("i18n.cookie_max_age must be greater than 0"))
	}

	return errors.Join(errs...)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
