/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/suparena/ltistore/registry"
)

func newCollectionsCommand() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "collections",
		Short: "List the collections and their backing tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "COLLECTION\tTABLE\tKEY\tTTL")
			for _, s := range registry.Default().Schemas() {
				ttl := "-"
				if s.Expires() {
					ttl = s.TTL.String()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name, s.TableName(prefix), strings.Join(s.KeyFields(), "+"), ttl)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&prefix, "table-prefix", "", "table name prefix")
	return cmd
}
