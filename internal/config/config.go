package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel int     `env:"LOG_LEVEL" envDefault:"0"`
	HTTP     HTTP    `envPrefix:"HTTP_"`
	Auth     Auth    `envPrefix:"AUTH_"`
	JWT      JWT     `envPrefix:"JWT_"`
	Storage  Storage `envPrefix:"MINIO_"`
	Uploads  Uploads `envPrefix:"UPLOADS_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Port               string `env:"PORT" envDefault:"8080"`
	EnableHTTPS        bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
}

// Auth contains credential and federated-login parameters.
type Auth struct {
	UsersFile     string `env:"USERS_FILE" envDefault:"users.json"`
	FederatedUser string `env:"FEDERATED_USER" envDefault:"googleuser"`
}

// JWT contains session token parameters.
type JWT struct {
	Secret string        `env:"SECRET" envDefault:"devsecret"`
	TTL    time.Duration `env:"TTL" envDefault:"1h"`
}

// Storage contains object storage parameters.
type Storage struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY" envDefault:"fileshare-access-key"`
	SecretKey string `env:"SECRET_KEY" envDefault:"fileshare-secret-key"`
	Bucket    string `env:"BUCKET_NAME" envDefault:"fileshare-files"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// Uploads contains local upload storage parameters.
type Uploads struct {
	Dir            string `env:"DIR" envDefault:"uploads"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"104857600"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
