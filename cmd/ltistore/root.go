/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suparena/ltistore/config"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	ConfigFile string
	EnvFile    string
	Debug      bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "ltistore",
		Short:         "Operate the ltistore DynamoDB tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "YAML config file (default: environment)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file read before the environment")
	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "development logging")

	cmd.AddCommand(newProvisionCommand(opts))
	cmd.AddCommand(newCollectionsCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// loadConfig reads the config file when one is given, the environment otherwise.
func (o *rootOptions) loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if o.ConfigFile != "" {
		cfg, err = config.LoadFile(o.ConfigFile)
	} else {
		cfg, err = config.FromEnv(o.EnvFile)
	}
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (o *rootOptions) logger() (*zap.Logger, error) {
	if o.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
