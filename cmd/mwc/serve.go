package main

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/vango-dev/mwc/internal/config"
	"github.com/vango-dev/mwc/internal/demo"
	"github.com/vango-dev/mwc/pkg/assets"
	"github.com/vango-dev/mwc/pkg/element"
	"github.com/vango-dev/mwc/pkg/server"
	"github.com/vango-dev/mwc/pkg/vango"
)

func serveCmd(opts *globalOptions) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo page",
		Long: `Serve the demo page and its live sessions.

Element modules are served from assets.dir or assets.s3 in mwc.json.
Every element the page uses must be present in that source; the server
refuses to start otherwise.

Examples:
  mwc serve
  mwc serve --port=9000
  MWC_PORT=9000 mwc serve --log-level=debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Port = port
			}
			if host != "" {
				cfg.Host = host
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config file)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config file)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := slog.Default().With("component", "cli")

	srvCfg, err := cfg.ServerConfig()
	if err != nil {
		return err
	}
	srvCfg.Styles = append(srvCfg.Styles, demo.Styles)

	srvOpts := []server.Option{server.WithLogger(slog.Default().With("component", "server"))}

	src, manifest, err := openAssets(ctx, cfg)
	if err != nil {
		return err
	}
	if src != nil {
		// Elements only load once their module is in the source.
		element.SetDefaultLoader(assets.Loader(src, manifest))
		srvOpts = append(srvOpts, server.WithAssets(src, manifest))
	} else {
		logger.Warn("no asset source configured; element modules are not served")
	}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		srvOpts = append(srvOpts, server.WithPrometheus(reg))
	}

	srv := server.New(srvCfg, func() vango.Component { return demo.New() }, srvOpts...)
	return srv.Run()
}

// openAssets builds the configured asset source and loads its manifest.
// It returns a nil source when none is configured.
func openAssets(ctx context.Context, cfg *config.Config) (assets.Source, *assets.Manifest, error) {
	var src assets.Source
	switch {
	case cfg.Assets.S3 != nil:
		s3cfg := *cfg.Assets.S3
		src = assets.NewS3Source(assets.NewS3Client(s3cfg), s3cfg.Bucket, s3cfg.Prefix)
	case cfg.Assets.Dir != "":
		src = assets.NewDirSource(cfg.AssetsDir())
	default:
		return nil, nil, nil
	}

	if cfg.Assets.Manifest == "" {
		return src, nil, nil
	}
	manifest, err := assets.LoadManifest(ctx, src, cfg.Assets.Manifest)
	if err != nil {
		return nil, nil, err
	}
	return src, manifest, nil
}
