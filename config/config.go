package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Storage       StorageConfig
	Session       SessionConfig
	ReCAPTCHA     ReCAPTCHAConfig
	Onboarding    OnboardingConfig
	EventTriggers EventTriggerConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// StorageConfig configures the S3-compatible object storage holding user photos
type StorageConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
}

type SessionConfig struct {
	JWTSecret       string
	JWTIssuer       string
	SessionTTLHours int
	CookieDomain    string
	CookieSecure    bool
}

type ReCAPTCHAConfig struct {
	SecretKey string
	SiteKey   string
}

// OnboardingConfig holds the tunables of the profile setup wizard
type OnboardingConfig struct {
	MaxPhotos        int
	MaxPhotoSizeMB   int
	DraftTTLMinutes  int
	MinAge           int
	CompletedTTLSecs int
}

type EventTriggerConfig struct {
	ProfileCompletedTriggerURL string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "https://outsmash.app")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "https://outsmash.app,https://www.outsmash.app")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_SERVICE_NAME", "outsmash-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "outsmash")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "outsmash-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines,mutex,block")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// Onboarding defaults mirror the wizard's product rules
	v.SetDefault("ONBOARDING_MAX_PHOTOS", 6)
	v.SetDefault("ONBOARDING_MAX_PHOTO_SIZE_MB", 5)
	v.SetDefault("ONBOARDING_DRAFT_TTL_MINUTES", 120)
	v.SetDefault("ONBOARDING_MIN_AGE", 18)
	v.SetDefault("PROFILE_COMPLETION_CACHE_TTL", 300)

	// Session defaults
	v.SetDefault("JWT_ISSUER", "outsmash-api")
	v.SetDefault("SESSION_TTL_HOURS", 72)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	// Parse allowed CORS origins (comma-separated)
	allowedOrigins := []string{}
	originsStr := v.GetString("ALLOWED_CORS_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: allowedOrigins,
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: 20,
			MinConns: 2,
		},
		Storage: StorageConfig{
			AccessKeyID:     v.GetString("STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("STORAGE_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("STORAGE_BUCKET_NAME"),
			Endpoint:        v.GetString("STORAGE_ENDPOINT"),
			Region:          v.GetString("STORAGE_REGION"),
		},
		Session: SessionConfig{
			JWTSecret:       v.GetString("JWT_SECRET"),
			JWTIssuer:       v.GetString("JWT_ISSUER"),
			SessionTTLHours: v.GetInt("SESSION_TTL_HOURS"),
			CookieDomain:    v.GetString("COOKIE_DOMAIN"),
			CookieSecure:    v.GetBool("COOKIE_SECURE"),
		},
		ReCAPTCHA: ReCAPTCHAConfig{
			SecretKey: v.GetString("RECAPTCHA_V2_SECRET_KEY"),
			SiteKey:   v.GetString("RECAPTCHA_V2_SITE_KEY"),
		},
		Onboarding: OnboardingConfig{
			MaxPhotos:        v.GetInt("ONBOARDING_MAX_PHOTOS"),
			MaxPhotoSizeMB:   v.GetInt("ONBOARDING_MAX_PHOTO_SIZE_MB"),
			DraftTTLMinutes:  v.GetInt("ONBOARDING_DRAFT_TTL_MINUTES"),
			MinAge:           v.GetInt("ONBOARDING_MIN_AGE"),
			CompletedTTLSecs: v.GetInt("PROFILE_COMPLETION_CACHE_TTL"),
		},
		EventTriggers: EventTriggerConfig{
			ProfileCompletedTriggerURL: v.GetString("PROFILE_COMPLETED_TRIGGER_URL"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Session.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.Storage.AccessKeyID == "" || c.Storage.SecretAccessKey == "" {
		return fmt.Errorf("STORAGE_ACCESS_KEY_ID and STORAGE_SECRET_ACCESS_KEY are required")
	}
	if c.Storage.BucketName == "" {
		return fmt.Errorf("STORAGE_BUCKET_NAME is required")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	if c.Onboarding.MaxPhotos < 1 {
		return fmt.Errorf("ONBOARDING_MAX_PHOTOS must be at least 1")
	}
	if c.Onboarding.MinAge < 18 {
		return fmt.Errorf("ONBOARDING_MIN_AGE must be at least 18")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
