package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:   "mwc",
		Short: "Server-driven Material web components for Go",
		Long: `mwc serves pages built from Material web components and drives
them from Go over a WebSocket.

The built-in demo page shows an mwc-dialog opened through its open
attribute and through its handle.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setupLogging()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.dir, "config", "c", ".", "Directory containing mwc.json or mwc.yaml")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config file)")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: text or json (default from config file)")

	rootCmd.AddCommand(
		serveCmd(&opts),
		renderCmd(&opts),
		buildCmd(&opts),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}
