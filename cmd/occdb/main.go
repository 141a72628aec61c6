// Package main provides the occdb CLI application.
// occdb normalizes flat biodiversity occurrence files and keeps a
// relational store in sync with them.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
