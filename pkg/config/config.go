package config

import "time"

// Storage type constants
const (
	// StorageTypeSupabase persists form submissions to hosted Supabase tables
	StorageTypeSupabase = "supabase"
	// StorageTypeMemory keeps form submissions in process memory
	StorageTypeMemory = "memory"
)

// Cache type constants
const (
	// CacheTypeRedis caches listings in Redis
	CacheTypeRedis = "redis"
	// CacheTypeInMemory caches listings in process memory
	CacheTypeInMemory = "inmemory"
)

// Config is the root configuration structure for the website
type Config struct {
	RouterType    string `mapstructure:"router_type"`
	Service       ServiceConfig
	HTTP          HTTPConfig
	Management    ManagementConfig
	I18n          I18nConfig  `mapstructure:"i18n"`
	Forms         FormsConfig `mapstructure:"forms"`
	Storage       StorageConfig
	Cache         CacheConfig
	Email         EmailConfig `mapstructure:"email"`
	Observability ObservabilityConfig
	RateLimit     RateLimitConfig
}

// ServiceConfig configures service identity metadata.
type ServiceConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// HTTPConfig configures the public web server
type HTTPConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	MaxRequestSize int64         `mapstructure:"max_request_size"`
}

// ManagementConfig configures the management server
type ManagementConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// I18nConfig configures locale resolution.
type I18nConfig struct {
	DefaultLocale string        `mapstructure:"default_locale"`
	CookieName    string        `mapstructure:"cookie_name"`
	CookieMaxAge  time.Duration `mapstructure:"cookie_max_age"`
}

// FormsConfig configures validation of form submissions.
type FormsConfig struct {
	// CheckDeliverability enables MX lookups on submitted email addresses.
	CheckDeliverability bool `mapstructure:"check_deliverability"`
}

// StorageConfig configures the table storage backend for form submissions
// and site listings.
type StorageConfig struct {
	Type     string         `mapstructure:"type"` // supabase, memory
	Supabase SupabaseConfig `mapstructure:"supabase"`
}

// SupabaseConfig configures the hosted Supabase REST backend.
type SupabaseConfig struct {
	URL              string        `mapstructure:"url"`
	APIKey           string        `mapstructure:"api_key"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
}

// CacheConfig configures the listings cache.
type CacheConfig struct {
	Type             string        `mapstructure:"type"` // redis, inmemory
	URL              string        `mapstructure:"url"`
	MaxConns         int           `mapstructure:"max_conns"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
	TTL              time.Duration `mapstructure:"ttl"`
}

// EmailConfig configures outbound notification email.
type EmailConfig struct {
	Enabled  bool            `mapstructure:"enabled"`
	Provider string          `mapstructure:"provider"` // smtp
	NotifyTo string          `mapstructure:"notify_to"`
	SMTP     EmailSMTPConfig `mapstructure:"smtp"`
}

// EmailSMTPConfig configures the SMTP provider.
type EmailSMTPConfig struct {
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Username           string        `mapstructure:"username"`
	Password           string        `mapstructure:"password"`
	From               string        `mapstructure:"from"`
	EnableTLS          bool          `mapstructure:"enable_tls"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
	OperationTimeout   time.Duration `mapstructure:"operation_timeout"`
}

// ObservabilityConfig configures logging, metrics, and tracing
type ObservabilityConfig struct {
	LogLevel          string               `mapstructure:"log_level"`
	LogFormat         string               `mapstructure:"log_format"` // json, text
	ServiceName       string               `mapstructure:"service_name"`
	TracingEnabled    bool                 `mapstructure:"tracing_enabled"`
	TracingSampleRate float64              `mapstructure:"tracing_sample_rate"`
	TracingEndpoint   string               `mapstructure:"tracing_endpoint"`
	RequestLogging    RequestLoggingConfig `mapstructure:"request_logging"`
}

// RequestLoggingConfig configures the request logging middleware.
type RequestLoggingConfig struct {
	Enabled              bool     `mapstructure:"enabled"`
	LogStart             bool     `mapstructure:"log_start"`
	ExcludedPathPrefixes []string `mapstructure:"excluded_path_prefixes"`
}

// RateLimitConfig configures the rate limit middleware on form endpoints.
type RateLimitConfig struct {
	Enabled           bool                 `mapstructure:"enabled"`
	Type              string               `mapstructure:"type"` // local, redis
	RequestsPerSecond int                  `mapstructure:"requests_per_second"`
	Burst             int                  `mapstructure:"burst"`
	Window            time.Duration        `mapstructure:"window"`
	Redis             RateLimitRedisConfig `mapstructure:"redis"`
}

// RateLimitRedisConfig configures the Redis-backed rate limiter backend.
type RateLimitRedisConfig struct {
	URL              string        `mapstructure:"url"`
	MaxConns         int           `mapstructure:"max_conns"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
	Prefix           string        `mapstructure:"prefix"`
}
