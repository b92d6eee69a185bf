package config

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quasar-dev/quasar/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "quasar.yaml"

	// DefaultApp is the demo app served when none is configured.
	DefaultApp = "counter"

	// DefaultHost is the default live server host.
	DefaultHost = "localhost"

	// DefaultPort is the default live server port.
	DefaultPort = 7070

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"

	// DefaultLogLevel is the default slog level name.
	DefaultLogLevel = "info"

	// DefaultRegion is used for exports when no region is configured.
	DefaultRegion = "us-east-1"
)

// Config represents quasar.yaml.
type Config struct {
	// App is the demo app served and rendered by default.
	App string `yaml:"app,omitempty"`

	// Server contains live server configuration.
	Server ServerConfig `yaml:"server,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `yaml:"log,omitempty"`

	// Export contains snapshot export configuration.
	Export ExportConfig `yaml:"export,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains live server configuration.
type ServerConfig struct {
	// Host is the listen host.
	Host string `yaml:"host,omitempty"`

	// Port is the listen port.
	Port int `yaml:"port,omitempty"`

	// MetricsPath is the Prometheus endpoint path. "-" disables it.
	MetricsPath string `yaml:"metricsPath,omitempty"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty"`

	// Format is "text" or "json".
	Format string `yaml:"format,omitempty"`
}

// ExportConfig contains snapshot export configuration.
type ExportConfig struct {
	// Bucket is the S3 bucket. Empty means exports go to local files.
	Bucket string `yaml:"bucket,omitempty"`

	// Prefix is prepended to object keys.
	Prefix string `yaml:"prefix,omitempty"`

	// Region is the S3 region.
	Region string `yaml:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, for S3-compatible stores.
	Endpoint string `yaml:"endpoint,omitempty"`

	// PathStyle forces path-style addressing.
	PathStyle bool `yaml:"pathStyle,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads quasar.yaml from dir. A missing file yields the defaults.
// Environment overrides are applied in both cases.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	cfg, err := LoadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			cfg = New()
			cfg.configPath = path
		} else {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a configuration file. Environment overrides are not applied.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("Q060").
			WithDetail("Could not read " + path).
			Wrap(err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("Q060").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid YAML")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration back to the path it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		c.configPath = ConfigFileName
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New("Q060").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("Q060").WithDetail("Could not write " + path).Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) applyDefaults() {
	if c.App == "" {
		c.App = DefaultApp
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Export.Region == "" {
		c.Export.Region = DefaultRegion
	}
}

// ApplyEnv applies environment overrides read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if addr := getenv("QUASAR_ADDR"); addr != "" {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return errors.New("Q061").
				WithDetail(fmt.Sprintf("QUASAR_ADDR %q is not host:port", addr)).
				Wrap(err)
		}
		n, err := strconv.Atoi(port)
		if err != nil {
			return errors.New("Q061").
				WithDetail(fmt.Sprintf("QUASAR_ADDR port %q is not a number", port))
		}
		c.Server.Host = host
		c.Server.Port = n
	}
	if app := getenv("QUASAR_APP"); app != "" {
		c.App = app
	}
	if level := getenv("QUASAR_LOG_LEVEL"); level != "" {
		c.Log.Level = strings.ToLower(level)
	}
	return c.Validate()
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("Q061").
			WithDetail("server.port must be between 0 and 65535")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("Q061").
			WithDetail(fmt.Sprintf("log.format %q must be text or json", c.Log.Format))
	}
	return nil
}

// Address returns the live server listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	level, _ := ParseLevel(c.Log.Level)
	return level
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, errors.New("Q061").
			WithDetail(fmt.Sprintf("log.level %q must be debug, info, warn or error", name))
	}
	return level, nil
}

// Exists checks if quasar.yaml exists in dir.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
