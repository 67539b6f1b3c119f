package server

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBindAddr = "127.0.0.1"
	DefaultPort     = 9500
	DefaultDataDir  = "/var/lib/studioservd"
	DefaultLogLevel = "info"
)

type Config struct {
	BindAddr string `yaml:"bind"`
	Port     int    `yaml:"port"`
	DataDir  string `yaml:"dataDir"`
	LogLevel string `yaml:"logLevel"`
	DBPath   string `yaml:"dbPath"`
	DBWAL    bool   `yaml:"dbWAL"`
	APIToken string `yaml:"apiToken,omitempty"`

	SessionTTLMinutes int `yaml:"sessionTTLMinutes"`

	Checkout CheckoutConfig `yaml:"checkout,omitempty"`
	Media    MediaConfig    `yaml:"media,omitempty"`
}

type CheckoutConfig struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	APIKey   string `yaml:"apiKey,omitempty"`
}

type MediaConfig struct {
	APIKey string `yaml:"apiKey,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		BindAddr: DefaultBindAddr,
		Port:     DefaultPort,
		DataDir:  DefaultDataDir,
		LogLevel: DefaultLogLevel,
		DBWAL:    true,
	}
}

func LoadConfig(configPath string) (Config, error) {
	cfg := DefaultConfig()

	if strings.TrimSpace(configPath) != "" {
		b, err := os.ReadFile(configPath)
		if err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", configPath, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("STUDIOSERVD_BIND")); v != "" {
		cfg.BindAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDIOSERVD_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("parse STUDIOSERVD_PORT=%q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := strings.TrimSpace(os.Getenv("STUDIOSERVD_DATA_DIR")); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDIOSERVD_LOG_LEVEL")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("STUDIOSERVD_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDIOSERVD_DB_WAL")); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("parse STUDIOSERVD_DB_WAL=%q: %w", v, err)
		}
		cfg.DBWAL = parsed
	}
	if v := strings.TrimSpace(os.Getenv("STUDIOSERVD_API_TOKEN")); v != "" {
		cfg.APIToken = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDIOSERVD_SESSION_TTL_MINUTES")); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("parse STUDIOSERVD_SESSION_TTL_MINUTES=%q: %w", v, err)
		}
		cfg.SessionTTLMinutes = minutes
	}
	if v := strings.TrimSpace(os.Getenv("STUDIOSERVD_CHECKOUT_ENDPOINT")); v != "" {
		cfg.Checkout.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDIOSERVD_CHECKOUT_API_KEY")); v != "" {
		cfg.Checkout.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDIOSERVD_MEDIA_API_KEY")); v != "" {
		cfg.Media.APIKey = v
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.BindAddr) == "" {
		return fmt.Errorf("bind address is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be in range 0..65535")
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data directory is required")
	}
	if c.SessionTTLMinutes < 0 {
		return fmt.Errorf("session ttl must not be negative")
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.BindAddr, c.Port)
}
