// Package main provides the sqljudge CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/sqljudge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
