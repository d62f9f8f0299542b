package config

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// EnvPrefix is stripped from every environment variable read by Load.
// The first underscore after the prefix separates the section from the key,
// so INSIGHTS_DB_HOST maps to db.host and INSIGHTS_SERVER_READ_TIMEOUT to
// server.read_timeout.
const EnvPrefix = "INSIGHTS_"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server ServerConfig `koanf:"server" validate:"required"`
	DB     DBConfig     `koanf:"db" validate:"required"`
	Redis  RedisConfig  `koanf:"redis"`
	Kafka  KafkaConfig  `koanf:"kafka"`
	Log    LogConfig    `koanf:"log"`
}

type ServerConfig struct {
	Port               string        `koanf:"port" validate:"required"`
	ReadTimeout        time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout       time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout        time.Duration `koanf:"idle_timeout" validate:"required"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout" validate:"required"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins" validate:"required,min=1"`
	CORSAllowedMethods []string      `koanf:"cors_allowed_methods" validate:"required,min=1"`
	CORSAllowedHeaders []string      `koanf:"cors_allowed_headers" validate:"required,min=1"`
	PublicBaseURL      string        `koanf:"public_base_url" validate:"required,url"`
	// RateLimitRPS of zero disables the limiter.
	RateLimitRPS   float64 `koanf:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int     `koanf:"rate_limit_burst" validate:"gte=0"`
}

type DBConfig struct {
	Driver          string        `koanf:"driver" validate:"required,oneof=postgres sqlite"`
	Host            string        `koanf:"host" validate:"required_if=Driver postgres"`
	Port            string        `koanf:"port" validate:"required_if=Driver postgres"`
	Name            string        `koanf:"name" validate:"required_if=Driver postgres"`
	User            string        `koanf:"user" validate:"required_if=Driver postgres"`
	Password        string        `koanf:"password"`
	SSLMode         string        `koanf:"ssl_mode"`
	Path            string        `koanf:"path" validate:"required_if=Driver sqlite"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	PingAttempts    uint          `koanf:"ping_attempts" validate:"gte=1"`
	PingDelay       time.Duration `koanf:"ping_delay"`
}

type RedisConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host" validate:"required_if=Enabled true"`
	Port     string `koanf:"port" validate:"required_if=Enabled true"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"gte=0"`
}

type KafkaConfig struct {
	Enabled     bool     `koanf:"enabled"`
	Brokers     []string `koanf:"brokers" validate:"required_if=Enabled true"`
	LookupTopic string   `koanf:"lookup_topic" validate:"required"`
	GroupID     string   `koanf:"group_id" validate:"required"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"required"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// Default returns the configuration used for every key the environment
// does not override.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        5 * time.Second,
			WriteTimeout:       10 * time.Second,
			IdleTimeout:        60 * time.Second,
			ShutdownTimeout:    10 * time.Second,
			CORSAllowedOrigins: []string{"*"},
			CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
			CORSAllowedHeaders: []string{"*"},
			PublicBaseURL:      "http://localhost:8080",
			RateLimitRPS:       50,
			RateLimitBurst:     100,
		},
		DB: DBConfig{
			Driver:          DriverPostgres,
			Port:            "5432",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
			PingAttempts:    5,
			PingDelay:       time.Second,
		},
		Redis: RedisConfig{
			Port: "6379",
		},
		Kafka: KafkaConfig{
			LookupTopic: "insight-lookups",
			GroupID:     "insights-agg",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads INSIGHTS_* environment variables (and a .env file when present)
// on top of Default and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	err = k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c DBConfig) DriverName() string {
	return c.Driver
}

func (c DBConfig) DSN() string {
	if c.Driver == DriverSQLite {
		if strings.Contains(c.Path, "?") {
			return c.Path
		}
		return c.Path + "?_pragma=busy_timeout(5000)"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// OpenDB opens the insight store and retries the initial ping.
func OpenDB(ctx context.Context, cfg DBConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.DriverName(), cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	err = retry.New(
		retry.Context(ctx),
		retry.Attempts(cfg.PingAttempts),
		retry.Delay(cfg.PingDelay),
	).Do(func() error {
		return db.PingContext(ctx)
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	return db, nil
}

func MustInitDB(ctx context.Context, cfg DBConfig, log logrus.FieldLogger) *sql.DB {
	db, err := OpenDB(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	return db
}

func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func MustInitRedis(ctx context.Context, cfg RedisConfig, log logrus.FieldLogger) *redis.Client {
	client := NewRedisClient(cfg)

	err := retry.New(
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
	).Do(func() error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}

	return client
}

func NewKafkaReader(cfg KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.LookupTopic,
		GroupID: cfg.GroupID,
	})
}

// NewKafkaWriter returns an async writer. Delivery errors only reach the
// Completion callback, where they are logged.
func NewKafkaWriter(cfg KafkaConfig, log logrus.FieldLogger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.LookupTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.WithError(err).WithField("messages", len(messages)).Warn("Failed to deliver lookup events")
			}
		},
	}
}
