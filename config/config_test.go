/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allEnv = []string{
	EnvRegion, EnvAccessKeyID, EnvSecretAccessKey, EnvSessionToken, EnvEndpoint,
	EnvTablePrefix, EnvMaxRetries, EnvRetryBackoff, EnvBreakerEnabled,
	"AWS_REGION", "AWS_DEFAULT_REGION", "AWS_ACCESS_KEY_ID", "AWS_ACCESS_KEY",
	"AWS_SECRET_ACCESS_KEY", "AWS_SECRET_KEY", "AWS_SESSION_TOKEN",
}

// clearEnv unsets every variable FromEnv reads and restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range allEnv {
		if v, ok := os.LookupEnv(name); ok {
			t.Cleanup(func() { os.Setenv(name, v) })
		}
		os.Unsetenv(name)
	}
}

func noDotenv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRegion, "eu-west-1")
	t.Setenv(EnvAccessKeyID, "AKID")
	t.Setenv(EnvSecretAccessKey, "SECRET")
	t.Setenv(EnvEndpoint, "http://localhost:8000")
	t.Setenv(EnvTablePrefix, "dev_")
	t.Setenv(EnvMaxRetries, "5")
	t.Setenv(EnvRetryBackoff, "50ms")
	t.Setenv(EnvBreakerEnabled, "true")

	cfg, err := FromEnv(noDotenv(t))
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "AKID", cfg.AccessKeyID)
	assert.Equal(t, "SECRET", cfg.SecretAccessKey)
	assert.Equal(t, "http://localhost:8000", cfg.Endpoint)
	assert.Equal(t, "dev_", cfg.TablePrefix)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 50*time.Millisecond, cfg.RetryBackoff)
	assert.True(t, cfg.BreakerEnabled)
	assert.True(t, cfg.StaticCredentials())
	assert.NoError(t, cfg.Validate())
}

func TestFromEnvFallsBackToAWSVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_REGION", "us-east-2")
	t.Setenv("AWS_ACCESS_KEY", "legacy-key")
	t.Setenv("AWS_SECRET_KEY", "legacy-secret")

	cfg, err := FromEnv(noDotenv(t))
	require.NoError(t, err)

	assert.Equal(t, "us-east-2", cfg.Region)
	assert.Equal(t, "legacy-key", cfg.AccessKeyID)
	assert.Equal(t, "legacy-secret", cfg.SecretAccessKey)
	assert.Equal(t, Default().MaxRetries, cfg.MaxRetries)
	assert.Equal(t, Default().RetryBackoff, cfg.RetryBackoff)
}

func TestFromEnvReadsDotenvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LTISTORE_REGION=ap-south-1\nLTISTORE_TABLE_PREFIX=qa_\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv(EnvRegion)
		os.Unsetenv(EnvTablePrefix)
	})

	cfg, err := FromEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "ap-south-1", cfg.Region)
	assert.Equal(t, "qa_", cfg.TablePrefix)
}

func TestFromEnvRejectsMalformedValues(t *testing.T) {
	tests := map[string]string{
		EnvMaxRetries:     "many",
		EnvRetryBackoff:   "soon",
		EnvBreakerEnabled: "perhaps",
	}

	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(name, value)
			_, err := FromEnv(noDotenv(t))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ltistore.yaml")
	content := "region: us-west-2\ntablePrefix: prod_\nretryBackoff: 1s\nbreakerEnabled: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "us-west-2", cfg.Region)
	assert.Equal(t, "prod_", cfg.TablePrefix)
	assert.Equal(t, time.Second, cfg.RetryBackoff)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.True(t, cfg.BreakerEnabled)
	assert.False(t, cfg.StaticCredentials())

	_, err = LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.Region = "us-east-1"

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing region", func(c *Config) { c.Region = "" }, true},
		{"key without secret", func(c *Config) { c.AccessKeyID = "AKID" }, true},
		{"secret without key", func(c *Config) { c.SecretAccessKey = "s" }, true},
		{"bad endpoint", func(c *Config) { c.Endpoint = "not a url" }, true},
		{"too many retries", func(c *Config) { c.MaxRetries = 50 }, true},
		{"negative backoff", func(c *Config) { c.RetryBackoff = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
