package config

import (
	"errors"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	StorageDriverS3       = "s3"
	StorageDriverSupabase = "supabase"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`
	DBMaxOpenConns     int    `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	DBMaxIdleConns     int    `envconfig:"DB_MAX_IDLE_CONNS" default:"25"`

	// Either JWTSecret or JWTSecretResource must be set. The resource is a
	// Secret Manager version name and wins when both are present.
	JWTSecret         string        `envconfig:"JWT_SECRET"`
	JWTSecretResource string        `envconfig:"JWT_SECRET_RESOURCE"`
	JWTTTL            time.Duration `envconfig:"JWT_TTL" default:"1h"`
	AllowAdminSignup  bool          `envconfig:"ALLOW_ADMIN_SIGNUP" default:"false"`

	StorageDriver  string `envconfig:"STORAGE_DRIVER" default:"s3"`
	S3URL          string `envconfig:"S3_URL"`
	S3Bucket       string `envconfig:"S3_BUCKET"`
	S3Region       string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey    string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey    string `envconfig:"S3_SECRET_KEY"`
	SupabaseURL    string `envconfig:"SUPABASE_URL"`
	SupabaseKey    string `envconfig:"SUPABASE_KEY"`
	SupabaseBucket string `envconfig:"SUPABASE_BUCKET" default:"uploads"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"5242880"`

	// Pub/Sub settings; publishing is disabled when the topic is empty
	GCPProjectID      string `envconfig:"GCP_PROJECT_ID"`
	NotificationTopic string `envconfig:"NOTIFICATION_TOPIC"`

	// Redis settings; the stats cache is disabled when the address is empty
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	StatsCacheTTL time.Duration `envconfig:"STATS_CACHE_TTL" default:"30s"`

	// SMTP settings; mail is logged instead of sent when the host is empty
	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"no-reply@learnhub.local"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" && c.JWTSecretResource == "" {
		return errors.New("one of JWT_SECRET or JWT_SECRET_RESOURCE must be set")
	}
	switch strings.ToLower(c.StorageDriver) {
	case StorageDriverS3:
		if c.S3URL == "" || c.S3Bucket == "" {
			return errors.New("S3_URL and S3_BUCKET are required for the s3 storage driver")
		}
	case StorageDriverSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return errors.New("SUPABASE_URL and SUPABASE_KEY are required for the supabase storage driver")
		}
	default:
		return errors.New("unknown STORAGE_DRIVER: " + c.StorageDriver)
	}
	return nil
}

// IsDevelopment reports whether the service runs locally.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
