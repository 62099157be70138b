package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	PostgresDSN string `envconfig:"POSTGRES_DSN" required:"true"`

	// HTTP
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// Background jobs
	OutboxPollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"10s"`
	SweepInterval      time.Duration `envconfig:"SWEEP_INTERVAL" default:"60s"`
	JobRunTimeout      time.Duration `envconfig:"JOB_RUN_TIMEOUT" default:"30s"`
	OutboxBatchSize    int           `envconfig:"OUTBOX_BATCH_SIZE" default:"50"`
	OutboxMaxAttempts  int           `envconfig:"OUTBOX_MAX_ATTEMPTS" default:"10"`

	// RabbitMQ relay for external consumers. Empty URL disables it.
	RabbitURL     string `envconfig:"RABBIT_URL"`
	EventExchange string `envconfig:"EVENT_EXCHANGE" default:"ihjizely.events"`

	// Observability
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Env          string `envconfig:"APP_ENV" default:"dev"`
}

func Load() (App, error) {
	_ = godotenv.Load()
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
