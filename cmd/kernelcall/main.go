// Package main provides the kernelcall CLI tool for inspecting and producing
// opaque kernel call payloads.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
