package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/vango-dev/mwc/internal/config"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	dir       string
	logLevel  string
	logFormat string

	cfg *config.Config
}

// config loads the config file once and applies flag overrides.
func (o *globalOptions) config() (*config.Config, error) {
	if o.cfg != nil {
		return o.cfg, nil
	}
	cfg, err := config.LoadOrDefault(o.dir)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	o.cfg = cfg
	return cfg, nil
}

// setupLogging installs the default slog logger.
func (o *globalOptions) setupLogging() error {
	cfg, err := o.config()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}
