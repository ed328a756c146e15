package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	APIURL              string        `envconfig:"API_URL"               required:"true"`
	Port                string        `envconfig:"STOREFRONT_PORT"       default:":8080"`
	GrpcHealthPort      string        `envconfig:"GRPC_HEALTH_PORT"` // empty disables the gRPC health server
	LogLevel            string        `envconfig:"LOG_LEVEL"             default:"info"`
	RequestTimeout      time.Duration `envconfig:"REQUEST_TIMEOUT"       default:"5s"`
	FetchRetries        uint64        `envconfig:"FETCH_RETRIES"         default:"2"`
	DefaultCustomerName string        `envconfig:"DEFAULT_CUSTOMER_NAME"`
	ClearBasketOnOrder  bool          `envconfig:"CLEAR_BASKET_ON_ORDER" default:"false"`
	SessionTTL          time.Duration `envconfig:"SESSION_TTL"           default:"30m"`
}

// LoadConfig reads an optional .env file and then the environment.
func LoadConfig(logger *logrus.Logger) (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		logger.Warnf("Error loading .env file (but continuing): %v", err)
	} else if err == nil {
		logger.Info("Loaded configuration from .env file")
	}

	return Process(logger)
}

// Process fills a Config from environment variables only.
func Process(logger *logrus.Logger) (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment variables: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger.Infof("Configuration loaded: API URL=%s, Port=%s, LogLevel=%s, RequestTimeout=%s, FetchRetries=%d",
		cfg.APIURL, cfg.Port, cfg.LogLevel, cfg.RequestTimeout, cfg.FetchRetries)
	if cfg.GrpcHealthPort != "" {
		logger.Infof("Configuration loaded: gRPC health port=%s", cfg.GrpcHealthPort)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid API_URL %q: %w", c.APIURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API_URL %q: must be an absolute http(s) URL", c.APIURL)
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid REQUEST_TIMEOUT %s: must be positive", c.RequestTimeout)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("invalid SESSION_TTL %s: must be positive", c.SessionTTL)
	}
	if c.Port == "" || c.Port == ":" {
		return fmt.Errorf("invalid STOREFRONT_PORT %q", c.Port)
	}
	return nil
}
