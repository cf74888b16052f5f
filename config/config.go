/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads the connection and transport settings of ltistore.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by FromEnv. The AWS_* fallbacks are consulted
// when the LTISTORE_* variable is unset.
const (
	EnvRegion          = "LTISTORE_REGION"
	EnvAccessKeyID     = "LTISTORE_ACCESS_KEY_ID"
	EnvSecretAccessKey = "LTISTORE_SECRET_ACCESS_KEY"
	EnvSessionToken    = "LTISTORE_SESSION_TOKEN"
	EnvEndpoint        = "LTISTORE_ENDPOINT"
	EnvTablePrefix     = "LTISTORE_TABLE_PREFIX"
	EnvMaxRetries      = "LTISTORE_MAX_RETRIES"
	EnvRetryBackoff    = "LTISTORE_RETRY_BACKOFF"
	EnvBreakerEnabled  = "LTISTORE_BREAKER_ENABLED"
)

var fallbacks = map[string][]string{
	EnvRegion:          {"AWS_REGION", "AWS_DEFAULT_REGION"},
	EnvAccessKeyID:     {"AWS_ACCESS_KEY_ID", "AWS_ACCESS_KEY"},
	EnvSecretAccessKey: {"AWS_SECRET_ACCESS_KEY", "AWS_SECRET_KEY"},
	EnvSessionToken:    {"AWS_SESSION_TOKEN"},
}

// Config holds everything needed to reach the backing DynamoDB tables.
type Config struct {
	Region          string `yaml:"region" validate:"required"`
	AccessKeyID     string `yaml:"accessKeyId" validate:"required_with=SecretAccessKey"`
	SecretAccessKey string `yaml:"secretAccessKey" validate:"required_with=AccessKeyID"`
	SessionToken    string `yaml:"sessionToken"`

	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint    string `yaml:"endpoint" validate:"omitempty,url"`
	TablePrefix string `yaml:"tablePrefix" validate:"omitempty,max=64"`

	MaxRetries     int           `yaml:"maxRetries" validate:"gte=0,lte=10"`
	RetryBackoff   time.Duration `yaml:"retryBackoff" validate:"gte=0"`
	BreakerEnabled bool          `yaml:"breakerEnabled"`
}

// Default returns a Config with transport defaults and no connection details.
func Default() Config {
	return Config{
		MaxRetries:   3,
		RetryBackoff: 200 * time.Millisecond,
	}
}

// StaticCredentials reports whether explicit keys were configured.
func (c Config) StaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

var validate = validator.New()

// Validate checks the configuration against its field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", e.Field(), e.Tag()))
			}
			return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// FromEnv loads the optional dotenv files (".env" when none are named) and
// then reads the LTISTORE_* variables over the defaults.
func FromEnv(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config: load env file: %w", err)
	}

	cfg := Default()
	cfg.Region = lookup(EnvRegion)
	cfg.AccessKeyID = lookup(EnvAccessKeyID)
	cfg.SecretAccessKey = lookup(EnvSecretAccessKey)
	cfg.SessionToken = lookup(EnvSessionToken)
	cfg.Endpoint = lookup(EnvEndpoint)
	cfg.TablePrefix = lookup(EnvTablePrefix)

	if v := lookup(EnvMaxRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvMaxRetries, err)
		}
		cfg.MaxRetries = n
	}
	if v := lookup(EnvRetryBackoff); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvRetryBackoff, err)
		}
		cfg.RetryBackoff = d
	}
	if v := lookup(EnvBreakerEnabled); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvBreakerEnabled, err)
		}
		cfg.BreakerEnabled = b
	}
	return cfg, nil
}

// LoadFile reads a YAML configuration file over the defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func lookup(name string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	for _, alt := range fallbacks[name] {
		if v, ok := os.LookupEnv(alt); ok {
			return v
		}
	}
	return ""
}
