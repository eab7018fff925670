package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	AI       AIConfig       `yaml:"ai"`
	Billing  BillingConfig  `yaml:"billing"`
	Quota    QuotaConfig    `yaml:"quota"`
	Quiz     QuizConfig     `yaml:"quiz"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
}

// AuthConfig holds JWT authentication settings.
type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"        env:"AUTH_JWT_SECRET"        env-required:"true"`
	JWTIssuer       string        `yaml:"jwt_issuer"        env:"AUTH_JWT_ISSUER"        env-default:"wordnest"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"  env:"AUTH_ACCESS_TOKEN_TTL"  env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"AUTH_REFRESH_TOKEN_TTL" env-default:"720h"`
}

// AIConfig holds generative-content gateway settings.
// Provider selects the backing API: "openai" or "anthropic".
type AIConfig struct {
	Provider     string        `yaml:"provider"      env:"AI_PROVIDER"      env-default:"openai"`
	APIKey       string        `yaml:"api_key"       env:"AI_API_KEY"       env-required:"true"`
	BaseURL      string        `yaml:"base_url"      env:"AI_BASE_URL"`
	Model        string        `yaml:"model"         env:"AI_MODEL"         env-default:"gpt-4o-mini"`
	MaxTokens    int           `yaml:"max_tokens"    env:"AI_MAX_TOKENS"    env-default:"2048"`
	Timeout      time.Duration `yaml:"timeout"       env:"AI_TIMEOUT"       env-default:"30s"`
	ParseRetries int           `yaml:"parse_retries" env:"AI_PARSE_RETRIES" env-default:"3"`
	RetryDelay   time.Duration `yaml:"retry_delay"   env:"AI_RETRY_DELAY"   env-default:"1s"`
}

// BillingConfig holds payment-provider settings.
type BillingConfig struct {
	StripeSecretKey string `yaml:"stripe_secret_key" env:"BILLING_STRIPE_SECRET_KEY"`
	WebhookSecret   string `yaml:"webhook_secret"    env:"BILLING_WEBHOOK_SECRET"`
	PriceID         string `yaml:"price_id"          env:"BILLING_PRICE_ID"`
	CheckoutSuccess string `yaml:"checkout_success"  env:"BILLING_CHECKOUT_SUCCESS"  env-default:"https://app.wordnest.io/billing/success"`
	CheckoutCancel  string `yaml:"checkout_cancel"   env:"BILLING_CHECKOUT_CANCEL"   env-default:"https://app.wordnest.io/billing/cancel"`
}

// QuotaConfig holds free-tier usage limits.
type QuotaConfig struct {
	FreeGenerationsPerDay int `yaml:"free_generations_per_day" env:"QUOTA_FREE_GENERATIONS_PER_DAY" env-default:"1"`
}

// QuizConfig holds quiz generation parameters.
type QuizConfig struct {
	DefaultQuestionCount int `yaml:"default_question_count" env:"QUIZ_DEFAULT_QUESTION_COUNT" env-default:"10"`
	MaxQuestionCount     int `yaml:"max_question_count"     env:"QUIZ_MAX_QUESTION_COUNT"     env-default:"30"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
