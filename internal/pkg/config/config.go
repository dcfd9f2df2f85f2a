package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeouts, policy constants), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	Payment PaymentConfig
	Orders  OrdersConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-User-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

type PaymentConfig struct {
	GatewayBaseURL string        `envconfig:"PAYMENT_GATEWAY_BASE_URL" required:"true"`
	WebhookSecret  string        `envconfig:"PAYMENT_WEBHOOK_SECRET" required:"true"`
	RequestTimeout time.Duration `envconfig:"PAYMENT_REQUEST_TIMEOUT" default:"10s"`
}

type OrdersConfig struct {
	// How long an unpaid PENDING order holds its stock before the sweeper
	// cancels it. Sized for PIX/boleto settlement latency.
	ReservationWindow time.Duration `envconfig:"ORDER_RESERVATION_WINDOW" default:"30m"`
	SweepInterval     time.Duration `envconfig:"ORDER_SWEEP_INTERVAL" default:"1m"`
	SweepBatchSize    int32         `envconfig:"ORDER_SWEEP_BATCH_SIZE" default:"100"`
	FlatFreightCents  int64         `envconfig:"ORDER_FLAT_FREIGHT_CENTS" default:"1500"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level: "error",
		},
		Payment: PaymentConfig{
			GatewayBaseURL: "http://localhost:9999",
			WebhookSecret:  "test-secret",
			RequestTimeout: time.Second,
		},
		Orders: OrdersConfig{
			ReservationWindow: 30 * time.Minute,
			SweepInterval:     time.Minute,
			SweepBatchSize:    100,
			FlatFreightCents:  1500,
		},
	}
}
