package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Config holds server configuration.
type Config struct {
	// Address is the listen address (host:port).
	// Default: "localhost:8080".
	Address string

	// ReadTimeout is the maximum time to wait for a message from the
	// client. Heartbeats keep an idle session alive.
	// Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a frame.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// HandshakeTimeout is the maximum time to wait for the client hello.
	// Default: 10 seconds.
	HandshakeTimeout time.Duration

	// HeartbeatInterval is the time between heartbeat pings.
	// Default: 30 seconds.
	HeartbeatInterval time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 30 seconds.
	ShutdownTimeout time.Duration

	// MaxMessageSize is the maximum size of an incoming WebSocket message.
	// Default: 64KB.
	MaxMessageSize int64

	// CheckOrigin validates the Origin header of WebSocket upgrades.
	// Default: same host only.
	CheckOrigin func(r *http.Request) bool

	// Title is the page title.
	Title string

	// Lang is the page language. Default: "en".
	Lang string

	// Styles are inline CSS blocks added to every page.
	Styles []string

	// ModulesPrefix is the URL prefix element modules are served under.
	// Default: "/_mwc/modules/".
	ModulesPrefix string

	// MetricsPath is where Prometheus metrics are exposed when a registry
	// is configured. Default: "/metrics".
	MetricsPath string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           "localhost:8080",
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HandshakeTimeout:  10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		ShutdownTimeout:   30 * time.Second,
		MaxMessageSize:    64 * 1024,
		Lang:              "en",
		ModulesPrefix:     "/_mwc/modules/",
		MetricsPath:       "/metrics",
	}
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Styles != nil {
		clone.Styles = append([]string(nil), c.Styles...)
	}
	return &clone
}

// withDefaults fills zero fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	out := c.Clone()
	if out == nil {
		return DefaultConfig()
	}
	def := DefaultConfig()
	if out.Address == "" {
		out.Address = def.Address
	}
	if out.ReadTimeout == 0 {
		out.ReadTimeout = def.ReadTimeout
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = def.WriteTimeout
	}
	if out.HandshakeTimeout == 0 {
		out.HandshakeTimeout = def.HandshakeTimeout
	}
	if out.HeartbeatInterval == 0 {
		out.HeartbeatInterval = def.HeartbeatInterval
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = def.ShutdownTimeout
	}
	if out.MaxMessageSize == 0 {
		out.MaxMessageSize = def.MaxMessageSize
	}
	if out.Lang == "" {
		out.Lang = def.Lang
	}
	if out.ModulesPrefix == "" {
		out.ModulesPrefix = def.ModulesPrefix
	}
	if !strings.HasSuffix(out.ModulesPrefix, "/") {
		out.ModulesPrefix += "/"
	}
	if out.MetricsPath == "" {
		out.MetricsPath = def.MetricsPath
	}
	return out
}

// Validate reports configuration that cannot work.
func (c *Config) Validate() error {
	switch {
	case c.ReadTimeout < 0 || c.WriteTimeout < 0 || c.HandshakeTimeout < 0:
		return fmt.Errorf("server: timeouts must not be negative")
	case c.HeartbeatInterval < 0:
		return fmt.Errorf("server: heartbeat interval must not be negative")
	case c.ReadTimeout > 0 && c.HeartbeatInterval >= c.ReadTimeout:
		return fmt.Errorf("server: heartbeat interval %s must be shorter than read timeout %s",
			c.HeartbeatInterval, c.ReadTimeout)
	case c.MaxMessageSize < 0:
		return fmt.Errorf("server: max message size must not be negative")
	case c.ModulesPrefix != "" && !strings.HasPrefix(c.ModulesPrefix, "/"):
		return fmt.Errorf("server: modules prefix %q must start with /", c.ModulesPrefix)
	}
	return nil
}
