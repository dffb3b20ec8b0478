package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const EnvProduction = "production"

type Config struct {
	Port     string `env:"PORT,      default=9000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	CORSOrigins []string `env:"CORS_ORIGINS, default=http://localhost:5173"`

	Session     SessionConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	Stripe      StripeConfig
	SMTP        SMTPConfig
	Kafka       KafkaConfig
	S3          S3Config
	ShutdownTTL time.Duration `env:"SHUTDOWN_TIMEOUT, default=15s"`
}

type SessionConfig struct {
	Secret string        `env:"ACCESS_TOKEN_SECRET"`
	TTL    time.Duration `env:"SESSION_TTL,         default=8760h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=plantNet-session"`
}

type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR,      default=localhost:6379"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB,        default=0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

type StripeConfig struct {
	SecretKey     string `env:"STRIPE_SECRET_KEY"`
	WebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
	Currency      string `env:"STRIPE_CURRENCY,      default=usd"`
	VerifyOrders  bool   `env:"STRIPE_VERIFY_ORDERS, default=false"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST,    default=smtp.gmail.com"`
	Port     string `env:"SMTP_PORT,    default=587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	From     string `env:"SMTP_FROM"`
	Workers  int    `env:"MAIL_WORKERS, default=4"`
}

type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS"`
	Topic   string   `env:"KAFKA_TOPIC, default=plantnet.orders"`
}

type S3Config struct {
	Bucket    string `env:"S3_BUCKET"`
	Region    string `env:"S3_REGION, default=us-east-1"`
	Endpoint  string `env:"S3_ENDPOINT"`
	AccessKey string `env:"S3_KEY"`
	SecretKey string `env:"S3_SECRET"`
	PublicURL string `env:"S3_PUBLIC_URL"`
}

// Production reports whether cookies must be cross-site and secure.
func (c *Config) Production() bool { return c.Env == EnvProduction }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l; tests pass envconfig.MapLookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
