// Package config loads the service configuration from the environment, with an optional .env
// file layered underneath. Variable names are the section prefix joined with the field tag,
// e.g. DB_POSTGRES_WRITE_HOST.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type ShutdownConfig struct {
	GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
	CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
}

type ServerConfig struct {
	Env      string         `envconfig:"ENV"       default:"development"`
	LogLevel string         `envconfig:"LOG_LEVEL" default:"info"`
	Host     string         `envconfig:"HOST"`
	Port     string         `envconfig:"PORT"      default:"8080"`
	Shutdown ShutdownConfig `envconfig:"SHUTDOWN"`
}

type CORSConfig struct {
	Enable           bool     `envconfig:"ENABLE"`
	AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
	AllowedMethods   []string `envconfig:"ALLOWED_METHODS"   default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"   default:"Authorization,Content-Type,X-API-Key"`
	AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
	MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"   default:"300"`
}

type RateLimiterConfig struct {
	Enable        bool `envconfig:"ENABLE"`
	MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"120"`
	WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
}

type AppConfig struct {
	Name        string            `envconfig:"NAME"     default:"bistro"`
	Timezone    string            `envconfig:"TIMEZONE" default:"UTC"`
	APIKey      string            `envconfig:"API_KEY"`
	CORS        CORSConfig        `envconfig:"CORS"`
	RateLimiter RateLimiterConfig `envconfig:"RATE_LIMITER"`
}

type RedisNode struct {
	Host     string `envconfig:"HOST"     default:"localhost"`
	Port     string `envconfig:"PORT"     default:"6379"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB"`
}

type CacheConfig struct {
	TTL   int `envconfig:"TTL" default:"300"`
	Redis struct {
		Primary RedisNode `envconfig:"PRIMARY"`
	} `envconfig:"REDIS"`
}

type JWTConfig struct {
	AccessSecret     string `envconfig:"ACCESS_SECRET"`
	RefreshSecret    string `envconfig:"REFRESH_SECRET"`
	AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"60"`
	RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
}

// PostgresNode is one side of the read/write split.
type PostgresNode struct {
	Host     string `envconfig:"HOST"     default:"localhost"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

type PostgresConfig struct {
	Read           PostgresNode `envconfig:"READ"`
	Write          PostgresNode `envconfig:"WRITE"`
	Prefix         string       `envconfig:"PREFIX"`
	MaxRetry       int          `envconfig:"MAX_RETRY"       default:"5"`
	RetryWaitTime  int          `envconfig:"RETRY_WAIT_TIME" default:"2"`
	MigrationTable string       `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
	AutoMigrate    bool         `envconfig:"AUTO_MIGRATE"`
}

type OrderConfig struct {
	PendingTTLSeconds int    `envconfig:"PENDING_TTL_SECONDS" default:"3600"`
	ReceiptDirectory  string `envconfig:"RECEIPT_DIRECTORY"   default:"receipts"`
}

type KafkaConfig struct {
	Enable  bool     `envconfig:"ENABLE"`
	Brokers []string `envconfig:"BROKERS"`
	Topic   string   `envconfig:"TOPIC"   default:"bistro.events"`
	SASL    struct {
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
	} `envconfig:"SASL"`
}

type S3Config struct {
	APIEndpoint     string `envconfig:"API_ENDPOINT"`
	AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
	BucketName      string `envconfig:"BUCKET_NAME"`
	PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
}

type Config struct {
	Server ServerConfig `envconfig:"SERVER"`
	App    AppConfig    `envconfig:"APP"`
	Cache  CacheConfig  `envconfig:"CACHE"`
	JWT    JWTConfig    `envconfig:"JWT"`
	DB     struct {
		Postgres PostgresConfig `envconfig:"POSTGRES"`
	} `envconfig:"DB"`
	Order   OrderConfig `envconfig:"ORDER"`
	Kafka   KafkaConfig `envconfig:"KAFKA"`
	Metrics struct {
		Enable bool `envconfig:"ENABLE"`
	} `envconfig:"METRICS"`
	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT" default:"localhost:4317"`
		} `envconfig:"OTEL"`
		S3 S3Config `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf    Config
	once    sync.Once
	loadErr error
)

// Init reads the configuration once. A missing .env file is not an error.
func Init() error {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				loadErr = fmt.Errorf("read .env: %w", err)

				return
			}

			log.Debug().Msg("No .env file, using the process environment")
		}

		if err := envconfig.Process("", &conf); err != nil {
			loadErr = fmt.Errorf("process environment: %w", err)

			return
		}

		log.Info().Str("env", conf.Server.Env).Msg("Configuration loaded")
	})

	return loadErr
}

// Get returns the process configuration, loading it on first use. A broken environment is fatal.
func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	return &conf
}
