package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RULEBRIDGE_"

type Config struct {
	Bridge struct {
		URL     string        `yaml:"url" validate:"required,url"` // "http://localhost:7777"
		Timeout time.Duration `yaml:"timeout" validate:"gt=0"`     // "60s"
	} `yaml:"bridge"`

	Store struct {
		Path string `yaml:"path" validate:"required"` // "./rulebridge.db" or ":memory:"
	} `yaml:"store"`

	Analysis struct {
		Workers     int      `yaml:"workers" validate:"min=1,max=256"`
		Languages   []string `yaml:"languages" validate:"dive,oneof=javascript typescript"`
		MaxFileSize int64    `yaml:"max_file_size" validate:"min=0"` // bytes, 0 = no limit
	} `yaml:"analysis"`

	Logging struct {
		Format string `yaml:"format" validate:"oneof=json text"`
		Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var c Config
	c.Bridge.URL = "http://localhost:7777"
	c.Bridge.Timeout = 60 * time.Second
	c.Store.Path = "./rulebridge.db"
	c.Analysis.Workers = 4
	c.Analysis.Languages = []string{"javascript", "typescript"}
	c.Analysis.MaxFileSize = 10 * 1024 * 1024
	c.Logging.Format = "text"
	c.Logging.Level = "info"
	return c
}

// LoadConfig reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := applyEnv(&c); err != nil {
		return c, err
	}
	return c, nil
}

// applyEnv applies RULEBRIDGE_* overrides (simple, explicit).
func applyEnv(c *Config) error {
	if v := os.Getenv(EnvPrefix + "BRIDGE_URL"); v != "" {
		c.Bridge.URL = v
	}
	if v := os.Getenv(EnvPrefix + "BRIDGE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sBRIDGE_TIMEOUT: %w", EnvPrefix, err)
		}
		c.Bridge.Timeout = d
	}
	if v := os.Getenv(EnvPrefix + "STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(EnvPrefix + "WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sWORKERS: %w", EnvPrefix, err)
		}
		c.Analysis.Workers = n
	}
	if v := os.Getenv(EnvPrefix + "LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

var validate = validator.New()

// Validate checks field constraints and reports every failing field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fmt.Errorf("invalid config %s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.Join(errs...)
}
