package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"github.com/vango-dev/mwc/internal/errors"
	"github.com/vango-dev/mwc/pkg/assets"
	"github.com/vango-dev/mwc/pkg/server"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "mwc.json"

	// YAMLConfigFileName is the alternative YAML configuration file.
	YAMLConfigFileName = "mwc.yaml"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultModulesPrefix is the URL prefix element modules are served under.
	DefaultModulesPrefix = "/_mwc/modules/"
)

// ConfigFileNames lists the file names Load looks for, in order.
var ConfigFileNames = []string{ConfigFileName, YAMLConfigFileName}

// Config represents the complete mwc.json configuration.
type Config struct {
	// Title is the page title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Port is the server port.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Assets configures where element modules are served from.
	Assets AssetsConfig `json:"assets,omitempty" yaml:"assets,omitempty"`

	// Session contains live session settings.
	Session SessionConfig `json:"session,omitempty" yaml:"session,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Log contains logging settings.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// AssetsConfig configures the element module source.
type AssetsConfig struct {
	// Dir serves modules from a local directory.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// S3 serves modules from a bucket.
	S3 *assets.S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`

	// Manifest names a JSON file inside the source mapping module names to
	// fingerprinted names. Optional.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty"`

	// Prefix is the URL prefix modules are served under.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// SessionConfig contains live session settings. Durations use
// time.ParseDuration syntax ("30s", "1m").
type SessionConfig struct {
	ReadTimeout       string `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`
	WriteTimeout      string `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`
	HeartbeatInterval string `json:"heartbeatInterval,omitempty" yaml:"heartbeatInterval,omitempty"`
	MaxMessageSize    int64  `json:"maxMessageSize,omitempty" yaml:"maxMessageSize,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the configuration file from dir. mwc.json is preferred over
// mwc.yaml when both exist.
func Load(dir string) (*Config, error) {
	path, ok := find(dir)
	if !ok {
		path = filepath.Join(dir, ConfigFileName)
	}
	return LoadFile(path)
}

// LoadOrDefault reads the configuration file from dir, falling back to
// defaults when there is none. Environment overrides apply either way.
func LoadOrDefault(dir string) (*Config, error) {
	path, ok := find(dir)
	if !ok {
		cfg := New()
		if err := cfg.applyEnv(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are YAML; anything else is JSON, which may carry
// comments and trailing commas.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("M303").
			WithDetail("Cannot read " + path).
			Wrap(err)
	}

	cfg := &Config{}
	name := filepath.Base(path)
	if isYAML(path) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("M303").
				WithDetail("Failed to parse " + name + ": " + err.Error()).
				WithSuggestion("Check that " + name + " is valid YAML")
		}
	} else if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
		return nil, errors.New("M303").
			WithDetail("Failed to parse " + name + ": " + err.Error()).
			WithSuggestion("Check that " + name + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// find returns the first configuration file present in dir.
func find(dir string) (string, bool) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("M303").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("M303").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Assets.Prefix == "" {
		c.Assets.Prefix = DefaultModulesPrefix
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// applyEnv applies MWC_* environment overrides.
func (c *Config) applyEnv() error {
	if v := os.Getenv("MWC_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("M301").WithDetail("MWC_PORT=" + v + " is not a number")
		}
		c.Port = port
	}
	if v := os.Getenv("MWC_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("MWC_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("M301").
			WithDetail("Port " + strconv.Itoa(c.Port) + " is out of range")
	}
	if c.Assets.Dir != "" && c.Assets.S3 != nil {
		return errors.New("M302")
	}
	if c.Assets.S3 != nil && c.Assets.S3.Bucket == "" {
		return errors.New("M302").WithDetail("assets.s3.bucket is required")
	}
	for name, v := range map[string]string{
		"session.readTimeout":       c.Session.ReadTimeout,
		"session.writeTimeout":      c.Session.WriteTimeout,
		"session.heartbeatInterval": c.Session.HeartbeatInterval,
	} {
		if _, err := parseDuration(v); err != nil {
			return errors.New("M303").
				WithDetail(name + ": " + err.Error())
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("M303").WithDetail("log.level " + c.Log.Level + " is not debug, info, warn or error")
	}
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// Address returns host:port.
func (c *Config) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// AssetsDir returns the asset directory, resolved against the config
// file's directory.
func (c *Config) AssetsDir() string {
	if c.Assets.Dir == "" || filepath.IsAbs(c.Assets.Dir) {
		return c.Assets.Dir
	}
	return filepath.Join(c.Dir(), c.Assets.Dir)
}

// ServerConfig validates the configuration and converts it into a
// server.Config. Unset durations keep the server defaults.
func (c *Config) ServerConfig() (*server.Config, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sc := server.DefaultConfig()
	sc.Address = c.Address()
	sc.Title = c.Title
	sc.ModulesPrefix = c.Assets.Prefix
	sc.MetricsPath = c.Metrics.Path
	if c.Session.MaxMessageSize > 0 {
		sc.MaxMessageSize = c.Session.MaxMessageSize
	}

	for _, f := range []struct {
		raw string
		dst *time.Duration
	}{
		{c.Session.ReadTimeout, &sc.ReadTimeout},
		{c.Session.WriteTimeout, &sc.WriteTimeout},
		{c.Session.HeartbeatInterval, &sc.HeartbeatInterval},
	} {
		if d, _ := parseDuration(f.raw); d > 0 {
			*f.dst = d
		}
	}

	if err := sc.Validate(); err != nil {
		return nil, errors.New("M303").Wrap(err)
	}
	return sc, nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, ok := find(dir)
	return ok
}
