package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/kernelcall"
	"github.com/arloliu/kernelcall/envelope"
	"github.com/arloliu/kernelcall/format"
)

var packCmd = &cobra.Command{
	Use:   "pack [NAME]",
	Short: "Produce an opaque kernel call payload",
	Long: `Build a payload carrying the given kernel name, optionally embedding a
launch-metadata blob read from a file. The result decodes with 'kernelcall
inspect' and with any decoder built with matching options.

Examples:
  # Name-only payload
  kernelcall pack my_kernel

  # Payload with metadata, explicit output path
  kernelcall pack my_kernel --metadata launch.bin -o payload.bin

  # Zstd-compressed payload
  kernelcall pack my_kernel -c zstd`,
	Args: cobra.ExactArgs(1),
	RunE: runPack,
}

var (
	packMetadataFile string
	packOutputFile   string
)

func init() {
	packCmd.Flags().StringVarP(&packMetadataFile, "metadata", "m", "", "file containing the launch metadata to embed")
	packCmd.Flags().StringVarP(&packOutputFile, "output", "o", "", "output file (defaults to NAME.bin)")
	rootCmd.AddCommand(packCmd)
}

func runPack(cmd *cobra.Command, args []string) error {
	name := args[0]

	var metadata []byte
	if packMetadataFile != "" {
		var err error
		metadata, err = os.ReadFile(packMetadataFile)
		if err != nil {
			return fmt.Errorf("reading metadata file: %w", err)
		}
	}

	comp, err := format.ParseCompression(compressionName)
	if err != nil {
		return err
	}

	encoder, err := kernelcall.NewEncoder(kernelcall.WithCompression(comp))
	if err != nil {
		return fmt.Errorf("creating encoder: %w", err)
	}

	opaque, err := encoder.Encode(envelope.Record{Name: name, Metadata: metadata})
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	outFile := packOutputFile
	if outFile == "" {
		outFile = name + ".bin"
	}

	if err := os.WriteFile(outFile, opaque, 0o644); err != nil {
		return fmt.Errorf("writing payload: %w", err)
	}

	fmt.Printf("Wrote %s (%s, %s)\n", outFile, formatBytes(int64(len(opaque))), comp)

	return nil
}
