/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/ltistore"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ltistore version "+ltistore.Version)
}

func TestCollectionsCommand(t *testing.T) {
	out, err := run(t, "collections", "--table-prefix", "dev_")
	require.NoError(t, err)
	assert.Contains(t, out, "COLLECTION")
	assert.Regexp(t, `context-token\s+dev_contexttoken\s+contextId\+user\s+24h0m0s`, out)
	assert.Regexp(t, `platform\s+dev_platform\s+platformUrl\+clientId\s+-`, out)
}

func TestProvisionRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ltistore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tablePrefix: dev_\n"), 0o600))

	_, err := run(t, "--config", path, "provision")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Region")
}

func TestProvisionMissingConfigFile(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "provision")
	assert.Error(t, err)
}
