package main

import (
	"fmt"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vango-dev/mwc/internal/build"
)

func buildCmd(opts *globalOptions) *cobra.Command {
	var (
		src        string
		output     string
		hashLength int
		clean      bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Fingerprint element modules for production",
		Long: `Copy the element module directory into an output directory with
content hashes in module names, and write manifest.json.

Point assets.dir at the output and set assets.manifest to
manifest.json so pages reference the hashed names.

Examples:
  mwc build
  mwc build --src modules --output dist --clean`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			result, err := build.New(cfg, build.Options{
				Source:     src,
				Output:     output,
				HashLength: hashLength,
				Clean:      clean,
				OnProgress: func(step string) { fmt.Fprintf(out, "  %s\n", step) },
			}).Build(ctx)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(result.Manifest))
			for name := range result.Manifest {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "  %s -> %s\n", name, result.Manifest[name])
			}
			fmt.Fprintf(out, "\n  %d files, %d bytes in %s\n", result.Files, result.Bytes, result.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVar(&src, "src", "", "Module directory (default assets.dir)")
	cmd.Flags().StringVarP(&output, "output", "o", "dist", "Output directory")
	cmd.Flags().IntVar(&hashLength, "hash-length", build.DefaultHashLength, "Hash digits kept in module names")
	cmd.Flags().BoolVar(&clean, "clean", false, "Clean output directory before build")

	return cmd
}
