package config

import (
	"fmt"     // Error wrapping
	"strconv" // Day suffix parsing
	"strings" // String manipulation
	"time"    // Durations

	"github.com/joho/godotenv"             // For loading .env files
	"github.com/kelseyhightower/envconfig" // For decoding env into the struct
)

// Config holds the application configuration
type Config struct {
	AppPort  string `envconfig:"APP_PORT" default:"3000"`  // Application port
	AppHost  string `envconfig:"SERVER_HOST"`              // Bind host, empty means all interfaces
	IsProd   bool   `envconfig:"IS_PROD"`                  // Is production environment
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"` // logrus level name

	DBDriver   string `envconfig:"DB_DRIVER" default:"mysql"`   // mysql, postgres or sqlite
	DBDSN      string `envconfig:"DB_DSN"`                      // Full DSN, overrides the split fields
	DBUser     string `envconfig:"DB_USER"`                     // Database user
	DBPassword string `envconfig:"DB_PASSWORD"`                 // Database password
	DBHost     string `envconfig:"DB_HOST" default:"127.0.0.1"` // Database host
	DBPort     string `envconfig:"DB_PORT"`                     // Database port
	DBName     string `envconfig:"DB_NAME" default:"feedback"`  // Database name

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"` // JWT signing secret
	JWTExpiry Expiry `envconfig:"JWT_EXPIRY" default:"7d"`    // Token lifetime

	RedisAddr string        `envconfig:"REDIS_ADDR"`              // Redis server address, empty disables caching
	RedisPass string        `envconfig:"REDIS_PASS"`              // Redis password
	RedisDB   int           `envconfig:"REDIS_DB"`                // Redis database number
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"60s"` // Analytics cache lifetime

	AMQPURL      string `envconfig:"AMQP_URL"`                         // RabbitMQ URL, empty disables events
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"feedback"` // Topic exchange name

	AdminName     string `envconfig:"ADMIN_NAME" default:"Administrator"` // Seeded admin name
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`                        // Seeded admin email
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`                     // Seeded admin password
}

// Expiry is a duration that also accepts a whole-day suffix such as "7d"
type Expiry time.Duration

// Decode implements envconfig.Decoder
func (e *Expiry) Decode(value string) error {
	value = strings.TrimSpace(value)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid day count %q", value)
		}
		*e = Expiry(time.Duration(n) * 24 * time.Hour)
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("expiry must be positive, got %q", value)
	}
	*e = Expiry(d)
	return nil
}

// Duration returns the expiry as a time.Duration
func (e Expiry) Duration() time.Duration { return time.Duration(e) }

// LoadConfig loads configuration from the environment (and .env if present).
// A missing JWT_SECRET is reported as an error; callers treat it as fatal.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("load config: JWT_SECRET must not be blank")
	}
	return &cfg, nil
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN // Explicit DSN wins
	}
	switch c.DBDriver {
	case "postgres":
		port := c.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, port)
	case "sqlite":
		return c.DBName + ".db"
	default:
		port := c.DBPort
		if port == "" {
			port = "3306"
		}
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true&loc=UTC&charset=utf8mb4"
	}
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.AppHost + ":" + c.AppPort
}
