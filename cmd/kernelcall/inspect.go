package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/kernelcall/compress"
	"github.com/arloliu/kernelcall/envelope"
	"github.com/arloliu/kernelcall/format"
	"github.com/arloliu/kernelcall/gpu"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [FILE]",
	Short: "Show the contents of an opaque kernel call payload",
	Long: `Decompress a payload file, parse the kernel call message, and print the
kernel name, metadata, and compression figures.

Examples:
  # Human-readable summary
  kernelcall inspect payload.bin

  # Machine-readable output
  kernelcall inspect --json payload.bin

  # Extract the raw metadata blob
  kernelcall inspect --metadata-out launch.bin payload.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var (
	inspectJSON     bool
	metadataOutFile string
)

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output result as JSON")
	inspectCmd.Flags().StringVar(&metadataOutFile, "metadata-out", "", "write the raw metadata blob to a file")
	rootCmd.AddCommand(inspectCmd)
}

// inspectOutput is the JSON shape of an inspected payload. Metadata encodes
// as base64, the encoding/json convention for byte slices.
type inspectOutput struct {
	Kernel       string  `json:"kernel"`
	Metadata     []byte  `json:"metadata,omitempty"`
	MetadataSize int     `json:"metadata_size"`
	Compression  string  `json:"compression"`
	PayloadSize  int64   `json:"payload_size"`
	DecodedSize  int64   `json:"decoded_size"`
	Ratio        float64 `json:"compression_ratio"`
	SpaceSavings float64 `json:"space_savings_pct"`
	GPUSupported bool    `json:"gpu_supported"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	opaque, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading payload: %w", err)
	}

	codec, comp, err := buildCodec()
	if err != nil {
		return err
	}

	payload, err := codec.Decompress(opaque)
	if err != nil {
		return fmt.Errorf("decompressing payload: %w", err)
	}

	rec, err := envelope.Decode(payload)
	if err != nil {
		return fmt.Errorf("parsing kernel call message: %w", err)
	}

	stats := compress.CompressionStats{
		Algorithm:      comp,
		OriginalSize:   int64(len(payload)),
		CompressedSize: int64(len(opaque)),
	}

	if metadataOutFile != "" {
		if err := os.WriteFile(metadataOutFile, rec.Metadata, 0o644); err != nil {
			return fmt.Errorf("writing metadata file: %w", err)
		}
	}

	if inspectJSON {
		return printInspectJSON(rec, stats)
	}

	printInspectText(rec, stats)

	return nil
}

func printInspectText(rec envelope.Record, stats compress.CompressionStats) {
	fmt.Printf("Kernel:       %s\n", rec.Name)
	if printableASCII(rec.Metadata) {
		fmt.Printf("Metadata:     %q\n", rec.Metadata)
	} else {
		fmt.Printf("Metadata:     %s (use --metadata-out to extract)\n", formatBytes(int64(len(rec.Metadata))))
	}
	fmt.Printf("Compression:  %s\n", stats.Algorithm)
	fmt.Printf("Payload size: %s\n", formatBytes(stats.CompressedSize))
	fmt.Printf("Decoded size: %s\n", formatBytes(stats.OriginalSize))
	fmt.Printf("Space saved:  %.1f%%\n", stats.SpaceSavings())
	if !gpu.Supported() {
		fmt.Println("Note: built without GPU support; this payload cannot be launched from here")
	}
}

func printInspectJSON(rec envelope.Record, stats compress.CompressionStats) error {
	out := inspectOutput{
		Kernel:       rec.Name,
		Metadata:     rec.Metadata,
		MetadataSize: len(rec.Metadata),
		Compression:  stats.Algorithm.String(),
		PayloadSize:  stats.CompressedSize,
		DecodedSize:  stats.OriginalSize,
		Ratio:        stats.CompressionRatio(),
		SpaceSavings: stats.SpaceSavings(),
		GPUSupported: gpu.Supported(),
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Println(string(data))

	return nil
}

// buildCodec constructs the codec selected by the global flags. The
// decoded-size bound only applies to the codecs that grow adaptively.
func buildCodec() (compress.Codec, format.CompressionType, error) {
	comp, err := format.ParseCompression(compressionName)
	if err != nil {
		return nil, 0, err
	}

	switch comp { //nolint: exhaustive
	case format.CompressionZlib:
		if maxDecodedSize > 0 {
			return compress.NewZlibCompressorWithMaxSize(maxDecodedSize), comp, nil
		}

		return compress.NewZlibCompressor(), comp, nil
	case format.CompressionLZ4:
		if maxDecodedSize > 0 {
			return compress.NewLZ4CompressorWithMaxSize(maxDecodedSize), comp, nil
		}

		return compress.NewLZ4Compressor(), comp, nil
	default:
		codec, err := compress.CreateCodec(comp)

		return codec, comp, err
	}
}

func printableASCII(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	for _, b := range data {
		if b < 0x20 || b > 0x7E {
			return false
		}
	}

	return true
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
