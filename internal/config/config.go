// Package config loads process configuration from the environment and the
// optional intent-name file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	RuntimeLambda = "lambda"
	RuntimeHTTP   = "http"

	SourceFile     = "file"
	SourceSSM      = "ssm"
	SourceDynamoDB = "dynamodb"

	LockMemory = "memory"
	LockRedis  = "redis"
)

type Config struct {
	Runtime  string `envconfig:"RUNTIME" default:"lambda"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":3000"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DataSource   string `envconfig:"DATA_SOURCE" default:"file"`
	DataDir      string `envconfig:"DATA_DIR" default:"data"`
	DatasetTable string `envconfig:"DATASET_TABLE"`
	ParamPrefix  string `envconfig:"PARAM_PREFIX"`

	LockBackend string        `envconfig:"LOCK_BACKEND" default:"memory"`
	RedisURL    string        `envconfig:"REDIS_URL"`
	LockExpiry  time.Duration `envconfig:"LOCK_EXPIRY" default:"10s"`
	LockTries   int           `envconfig:"LOCK_TRIES" default:"20"`

	IntentsFile string `envconfig:"INTENTS_FILE"`
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated values and the settings each backend needs.
func (c *Config) Validate() error {
	c.Runtime = strings.ToLower(strings.TrimSpace(c.Runtime))
	c.DataSource = strings.ToLower(strings.TrimSpace(c.DataSource))
	c.LockBackend = strings.ToLower(strings.TrimSpace(c.LockBackend))

	var errs []error
	switch c.Runtime {
	case RuntimeLambda:
	case RuntimeHTTP:
		if strings.TrimSpace(c.HTTPAddr) == "" {
			errs = append(errs, errors.New("HTTP_ADDR is required for the http runtime"))
		}
	default:
		errs = append(errs, fmt.Errorf("RUNTIME must be %q or %q, got %q", RuntimeLambda, RuntimeHTTP, c.Runtime))
	}

	switch c.DataSource {
	case SourceFile:
		if strings.TrimSpace(c.DataDir) == "" {
			errs = append(errs, errors.New("DATA_DIR is required for the file data source"))
		}
	case SourceSSM:
		if strings.TrimSpace(c.ParamPrefix) == "" {
			errs = append(errs, errors.New("PARAM_PREFIX is required for the ssm data source"))
		}
	case SourceDynamoDB:
		if strings.TrimSpace(c.DatasetTable) == "" {
			errs = append(errs, errors.New("DATASET_TABLE is required for the dynamodb data source"))
		}
	default:
		errs = append(errs, fmt.Errorf("DATA_SOURCE must be one of file, ssm, dynamodb, got %q", c.DataSource))
	}

	switch c.LockBackend {
	case LockMemory:
	case LockRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis lock backend"))
		}
		if c.LockExpiry <= 0 {
			errs = append(errs, errors.New("LOCK_EXPIRY must be positive"))
		}
		if c.LockTries < 1 {
			errs = append(errs, errors.New("LOCK_TRIES must be at least 1"))
		}
	default:
		errs = append(errs, fmt.Errorf("LOCK_BACKEND must be %q or %q, got %q", LockMemory, LockRedis, c.LockBackend))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid configuration: %w", err)
	}
	return nil
}

// LoadIntentNames reads a YAML map of canonical intent name to the NLU intent
// names that trigger it. An empty path yields nil so callers keep defaults.
func LoadIntentNames(path string) (map[string][]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read intents file: %w", err)
	}

	var names map[string][]string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("config: parse intents file %q: %w", path, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("config: intents file %q defines no intents", path)
	}
	return names, nil
}
