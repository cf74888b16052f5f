/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command ltistore provisions and inspects the tables of an ltistore deployment.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
