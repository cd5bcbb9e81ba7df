package main

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags.
	compressionName string
	maxDecodedSize  int
)

var rootCmd = &cobra.Command{
	Use:   "kernelcall",
	Short: "Inspect and produce opaque GPU kernel call payloads",
	Long: `kernelcall is a CLI tool for working with the opaque payloads that carry
GPU kernel launch information from a compiler toolchain to the host runtime.

A payload is a compressed kernel call message holding the kernel function
name and a serialized launch-metadata blob. Payloads use zlib unless
produced otherwise.

Examples:
  # Show the contents of a payload
  kernelcall inspect payload.bin

  # Produce a payload for testing
  kernelcall pack my_kernel --metadata launch.bin -o payload.bin`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&compressionName, "compression", "c", "zlib", "compression algorithm (none, zlib, zstd, s2, lz4)")
	rootCmd.PersistentFlags().IntVar(&maxDecodedSize, "max-decoded-size", 0, "decoded size bound in bytes (0 keeps the default)")
}
