package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_DefaultValues(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.LogLevel)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, false, cfg.HTTP.EnableHTTPS)
	assert.Equal(t, "cert.pem", cfg.HTTP.CertFileName)
	assert.Equal(t, "key.pem", cfg.HTTP.PrivateKeyFileName)
	assert.Equal(t, "users.json", cfg.Auth.UsersFile)
	assert.Equal(t, "googleuser", cfg.Auth.FederatedUser)
	assert.Equal(t, "devsecret", cfg.JWT.Secret)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "localhost:9000", cfg.Storage.Endpoint)
	assert.Equal(t, "fileshare-access-key", cfg.Storage.AccessKey)
	assert.Equal(t, "fileshare-secret-key", cfg.Storage.SecretKey)
	assert.Equal(t, "fileshare-files", cfg.Storage.Bucket)
	assert.Equal(t, false, cfg.Storage.UseSSL)
	assert.Equal(t, "uploads", cfg.Uploads.Dir)
	assert.Equal(t, int64(104857600), cfg.Uploads.MaxUploadBytes)
}

func TestNewConfig_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected func(*Config)
	}{
		{
			name: "log level override",
			envVars: map[string]string{
				"LOG_LEVEL": "2",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, 2, cfg.LogLevel)
			},
		},
		{
			name: "http config override",
			envVars: map[string]string{
				"HTTP_PORT":                  "9090",
				"HTTP_ENABLE_HTTPS":          "true",
				"HTTP_CERT_FILE_NAME":        "custom.pem",
				"HTTP_PRIVATE_KEY_FILE_NAME": "custom-key.pem",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "9090", cfg.HTTP.Port)
				assert.Equal(t, true, cfg.HTTP.EnableHTTPS)
				assert.Equal(t, "custom.pem", cfg.HTTP.CertFileName)
				assert.Equal(t, "custom-key.pem", cfg.HTTP.PrivateKeyFileName)
			},
		},
		{
			name: "auth config override",
			envVars: map[string]string{
				"AUTH_USERS_FILE":     "/etc/fileshare/users.json",
				"AUTH_FEDERATED_USER": "federated",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "/etc/fileshare/users.json", cfg.Auth.UsersFile)
				assert.Equal(t, "federated", cfg.Auth.FederatedUser)
			},
		},
		{
			name: "jwt config override",
			envVars: map[string]string{
				"JWT_SECRET": "prodsecret",
				"JWT_TTL":    "30m",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "prodsecret", cfg.JWT.Secret)
				assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
			},
		},
		{
			name: "storage config override",
			envVars: map[string]string{
				"MINIO_ENDPOINT":    "minio:9000",
				"MINIO_BUCKET_NAME": "shared-files",
				"MINIO_USE_SSL":     "true",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "minio:9000", cfg.Storage.Endpoint)
				assert.Equal(t, "shared-files", cfg.Storage.Bucket)
				assert.Equal(t, true, cfg.Storage.UseSSL)
			},
		},
		{
			name: "uploads config override",
			envVars: map[string]string{
				"UPLOADS_DIR":              "/var/lib/fileshare",
				"UPLOADS_MAX_UPLOAD_BYTES": "1024",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "/var/lib/fileshare", cfg.Uploads.Dir)
				assert.Equal(t, int64(1024), cfg.Uploads.MaxUploadBytes)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := NewConfig()
			require.NoError(t, err)
			tt.expected(cfg)
		})
	}
}
