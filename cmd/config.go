package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config is read from the environment, after an optional .env file.
type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"postgres"`
	DBHost        string `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string `envconfig:"DB_PORT" default:"5432"`
	DBUser        string `envconfig:"DB_USER" default:"postgres"`
	DBPassword    string `envconfig:"DB_PASSWORD"`
	DBName        string `envconfig:"DB_NAME" default:"fulfillment"`
	DBSslMode     string `envconfig:"DB_SSLMODE" default:"disable"`

	KafkaHost              string `envconfig:"KAFKA_HOST"`
	KafkaOrderChangedTopic string `envconfig:"KAFKA_ORDER_CHANGED_TOPIC" default:"order.changed"`

	NotificationWorkers   int `envconfig:"NOTIFICATION_WORKERS" default:"2"`
	NotificationQueueSize int `envconfig:"NOTIFICATION_QUEUE_SIZE" default:"256"`

	MaxDeliveryNotes    int  `envconfig:"MAX_DELIVERY_NOTES" default:"50"`
	AllowDirectDelivery bool `envconfig:"ALLOW_DIRECT_DELIVERY" default:"true"`

	CompletionReminderSchedule string        `envconfig:"COMPLETION_REMINDER_SCHEDULE" default:"0 */15 * * * *"`
	CompletionReminderAfter    time.Duration `envconfig:"COMPLETION_REMINDER_AFTER" default:"24h"`

	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	OtelServiceName string `envconfig:"OTEL_SERVICE_NAME" default:"fulfillment"`
	OtelExporter    string `envconfig:"OTEL_EXPORTER" default:"none"`
}

// LoadConfig reads .env files when present, then the environment. Variables
// already set in the environment win over .env entries.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var err error
	if c.StorageDriver != StoragePostgres && c.StorageDriver != StorageMemory {
		err = errors.Join(err, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q",
			StoragePostgres, StorageMemory, c.StorageDriver))
	}
	if c.NotificationWorkers < 1 {
		err = errors.Join(err, fmt.Errorf("NOTIFICATION_WORKERS must be positive, got %d", c.NotificationWorkers))
	}
	if c.NotificationQueueSize < 1 {
		err = errors.Join(err, fmt.Errorf("NOTIFICATION_QUEUE_SIZE must be positive, got %d", c.NotificationQueueSize))
	}
	if c.MaxDeliveryNotes < 1 {
		err = errors.Join(err, fmt.Errorf("MAX_DELIVERY_NOTES must be positive, got %d", c.MaxDeliveryNotes))
	}
	if c.CompletionReminderAfter <= 0 {
		err = errors.Join(err, fmt.Errorf("COMPLETION_REMINDER_AFTER must be positive, got %s", c.CompletionReminderAfter))
	}
	return err
}

// DSN is the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
