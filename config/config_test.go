package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			AppEnv:         "production",
			BaseURL:        "https://outsmash.app",
			AllowedOrigins: []string{"https://outsmash.app"},
		},
		Database: DatabaseConfig{URL: "postgres://localhost/outsmash"},
		Storage: StorageConfig{
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			BucketName:      "user-photos",
		},
		Session: SessionConfig{JWTSecret: "test-secret"},
		Onboarding: OnboardingConfig{
			MaxPhotos:      6,
			MaxPhotoSizeMB: 5,
			MinAge:         18,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid config",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name:        "missing database URL",
			mutate:      func(c *Config) { c.Database.URL = "" },
			expectError: true,
			errorMsg:    "DATABASE_URL",
		},
		{
			name:        "missing JWT secret",
			mutate:      func(c *Config) { c.Session.JWTSecret = "" },
			expectError: true,
			errorMsg:    "JWT_SECRET",
		},
		{
			name:        "missing storage credentials",
			mutate:      func(c *Config) { c.Storage.SecretAccessKey = "" },
			expectError: true,
			errorMsg:    "STORAGE_ACCESS_KEY_ID",
		},
		{
			name:        "missing bucket name",
			mutate:      func(c *Config) { c.Storage.BucketName = "" },
			expectError: true,
			errorMsg:    "STORAGE_BUCKET_NAME",
		},
		{
			name:        "zero max photos",
			mutate:      func(c *Config) { c.Onboarding.MaxPhotos = 0 },
			expectError: true,
			errorMsg:    "ONBOARDING_MAX_PHOTOS",
		},
		{
			name:        "min age below 18",
			mutate:      func(c *Config) { c.Onboarding.MinAge = 16 },
			expectError: true,
			errorMsg:    "ONBOARDING_MIN_AGE",
		},
		{
			name:        "no CORS origins",
			mutate:      func(c *Config) { c.Server.AllowedOrigins = nil },
			expectError: true,
			errorMsg:    "ALLOWED_CORS_ORIGINS",
		},
		{
			name: "profiling enabled without endpoint",
			mutate: func(c *Config) {
				c.Profiling.Enabled = true
				c.Profiling.Endpoint = ""
			},
			expectError: true,
			errorMsg:    "O11Y_PROFILING_ENDPOINT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{
			name:     "development environment",
			config:   &Config{Server: ServerConfig{AppEnv: "development"}},
			expected: true,
		},
		{
			name:     "debug gin mode",
			config:   &Config{Server: ServerConfig{GinMode: "debug"}},
			expected: true,
		},
		{
			name:     "production environment",
			config:   &Config{Server: ServerConfig{AppEnv: "production", GinMode: "release"}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.IsDevelopment())
		})
	}
}
