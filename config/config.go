package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const (
	BackendAPI        = "api"
	BackendClickHouse = "clickhouse"

	defaultClickHouseDSN = "tcp://127.0.0.1:9000?database=dns"
)

type AuthConfig struct {
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
}

// Enabled reports whether basic auth should guard the HTTP API.
func (a AuthConfig) Enabled() bool {
	return a.User != "" && a.Pass != ""
}

// DatasourceConfig is what the host stores for the data source. APIKey is
// secret and never echoed back by any endpoint.
type DatasourceConfig struct {
	Backend     string        `yaml:"backend" validate:"oneof=api clickhouse"`
	APIURL      string        `yaml:"apiUrl" validate:"required_if=Backend api,omitempty,url"`
	APIKey      string        `yaml:"apiKey"`
	AuthScheme  string        `yaml:"authScheme"`
	IdentityURL string        `yaml:"identityUrl" validate:"omitempty,url"`
	Timeout     time.Duration `yaml:"timeout" validate:"gt=0"`
}

type ClickHouseConfig struct {
	DSN         string `yaml:"dsn"`
	MaxAttempts int    `yaml:"maxAttempts" validate:"gte=1"`
}

type Config struct {
	Addr       string           `yaml:"addr" validate:"required"`
	Auth       AuthConfig       `yaml:"auth"`
	Datasource DatasourceConfig `yaml:"datasource"`
	ClickHouse ClickHouseConfig `yaml:"clickhouse"`
}

func DefaultConfig() *Config {
	return &Config{
		Addr: ":8080",
		Datasource: DatasourceConfig{
			Backend:    BackendAPI,
			AuthScheme: "APIKey",
			Timeout:    30 * time.Second,
		},
		ClickHouse: ClickHouseConfig{
			DSN:         defaultClickHouseDSN,
			MaxAttempts: 30,
		},
	}
}

// LoadConfig reads configPath over the defaults (an empty path skips the
// file), applies environment overrides and validates the result.
func LoadConfig(configPath string) (*Config, error) {
	conf := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %v", err)
		}
		if err := yaml.Unmarshal(data, conf); err != nil {
			return nil, fmt.Errorf("unmarshal config file: %v", err)
		}
	}

	applyEnv(conf)

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func applyEnv(conf *Config) {
	conf.Addr = getEnv("LISTEN_ADDR", conf.Addr)
	conf.Auth.User = getEnv("DASHBOARD_USER", conf.Auth.User)
	conf.Auth.Pass = getEnv("DASHBOARD_PASS", conf.Auth.Pass)
	conf.Datasource.Backend = getEnv("DATASOURCE_BACKEND", conf.Datasource.Backend)
	conf.Datasource.APIURL = getEnv("DNS_API_URL", conf.Datasource.APIURL)
	conf.Datasource.APIKey = getEnv("DNS_API_KEY", conf.Datasource.APIKey)
	conf.Datasource.AuthScheme = getEnv("DNS_API_AUTH_SCHEME", conf.Datasource.AuthScheme)
	conf.Datasource.IdentityURL = getEnv("DNS_IDENTITY_URL", conf.Datasource.IdentityURL)
	conf.ClickHouse.DSN = getEnv("CLICKHOUSE_DSN", conf.ClickHouse.DSN)
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Datasource.Backend == BackendClickHouse && c.ClickHouse.DSN == "" {
		return fmt.Errorf("invalid config: clickhouse.dsn is required for the %s backend", BackendClickHouse)
	}
	return nil
}

// IdentityBaseURL is where the auth probe sends its requests.
func (c DatasourceConfig) IdentityBaseURL() string {
	if c.IdentityURL != "" {
		return c.IdentityURL
	}
	return c.APIURL
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
