/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suparena/ltistore"
	"github.com/suparena/ltistore/datastore/ddb"
)

func newProvisionCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Create the collection tables and enable record expiry",
		Long: `Create the DynamoDB table of every collection that does not exist yet,
wait until it is active, and enable time-to-live on collections whose
records expire. Running it again is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := rootOpts.logger()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			backend, err := ddb.NewFromConfig(cmd.Context(), cfg, ddb.WithLogger(logger))
			if err != nil {
				return err
			}
			store := ltistore.New(backend,
				ltistore.WithLogger(logger),
				ltistore.WithTablePrefix(cfg.TablePrefix))
			if err := store.Provision(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "provisioned")
			return nil
		},
	}
}
