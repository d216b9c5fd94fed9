// Command lsfconv converts between the LSF binary container and its LSX
// XML bridge form (spec.md §6 "External interfaces").
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	lsf "github.com/ls-go/lsf"
	"github.com/ls-go/lsf/format"
	"github.com/ls-go/lsf/lsx"
)

var logLevel string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lsfconv",
		Short:         "Convert between LSF binary containers and LSX XML",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(logLevel)
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")

	root.AddCommand(newToXMLCmd())
	root.AddCommand(newToBinaryCmd())

	return root
}

func configureLogging(level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

func newToXMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "to-xml <in.lsf> <out.lsx>",
		Short: "Decode an LSF binary file and write it as LSX XML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToXML(args[0], args[1])
		},
	}
}

func runToXML(inPath, outPath string) error {
	res, diag, err := lsf.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inPath, err)
	}

	logDiagnostics(diag)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer out.Close()

	if err := lsx.Marshal(out, res); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	return out.Close()
}

func newToBinaryCmd() *cobra.Command {
	var (
		versionMajor, versionMinor, versionRevision, versionBuild uint32
		lz4Block, lz4Frame                                        bool
		compressionName                                           string
	)

	cmd := &cobra.Command{
		Use:   "to-binary <in.lsx> <out.lsf>",
		Short: "Read an LSX XML document and write it as an LSF binary file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if lz4Block && lz4Frame {
				return fmt.Errorf("--lz4-block and --lz4-frame are mutually exclusive")
			}

			method, err := parseCompression(compressionName)
			if err != nil {
				return err
			}

			versionOverride := lsf.Metadata{
				Major:    versionMajor,
				Minor:    versionMinor,
				Revision: versionRevision,
				Build:    versionBuild,
			}

			return runToBinary(args[0], args[1], method, lz4Block, versionOverride)
		},
	}

	cmd.Flags().Uint32Var(&versionMajor, "version-major", 0, "version major override when the LSX source lacks a <version> element")
	cmd.Flags().Uint32Var(&versionMinor, "version-minor", 0, "version minor override")
	cmd.Flags().Uint32Var(&versionRevision, "version-revision", 0, "version revision override")
	cmd.Flags().Uint32Var(&versionBuild, "version-build", 0, "version build override")
	cmd.Flags().BoolVar(&lz4Block, "lz4-block", false, "write the raw LZ4 block sub-format instead of the frame format")
	cmd.Flags().BoolVar(&lz4Frame, "lz4-frame", false, "write the self-describing LZ4 frame sub-format (default)")
	cmd.Flags().StringVar(&compressionName, "compression", "zstd", "chunk compression method: none|zlib|lz4|zstd")

	return cmd
}

func runToBinary(inPath, outPath string, method format.CompressionType, lz4Block bool, versionOverride lsf.Metadata) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inPath, err)
	}
	defer in.Close()

	res, diag, err := lsx.Unmarshal(in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inPath, err)
	}

	logDiagnostics(diag)

	if res.Metadata == (lsf.Metadata{}) {
		res.Metadata = versionOverride
	}

	var opts []lsf.WriterOption
	if lz4Block {
		opts = append(opts, lsf.WithLZ4Block())
	}

	if err := lsf.WriteFile(outPath, res, method, opts...); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	return nil
}

func parseCompression(name string) (format.CompressionType, error) {
	switch name {
	case "none":
		return format.CompressionNone, nil
	case "zlib":
		return format.CompressionZlib, nil
	case "lz4":
		return format.CompressionLZ4, nil
	case "zstd":
		return format.CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown --compression %q: want none|zlib|lz4|zstd", name)
	}
}

func logDiagnostics(diag *lsf.Diagnostics) {
	if diag.Empty() {
		return
	}

	for _, item := range diag.Items {
		slog.Warn(item.Error())
	}
}
