package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	MPD      MPDConfig      `toml:"mpd"`
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	AutoFill AutoFillTOML   `toml:"autofill"`
}

// MPDConfig contains daemon connection settings.
type MPDConfig struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	Password       string `toml:"password"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Addr returns the host:port pair for dialing the daemon.
func (m MPDConfig) Addr() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

// Timeout returns the per-command deadline applied to daemon calls.
func (m MPDConfig) Timeout() time.Duration {
	if m.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the host:port pair the web remote listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// AutoFillTOML holds the initial auto-fill settings applied at startup.
// The live values are owned by the monitor's settings store afterwards.
type AutoFillTOML struct {
	Enabled         bool     `toml:"enabled"`
	Mode            string   `toml:"mode"`
	Threshold       int      `toml:"threshold"`
	BatchSize       int      `toml:"batch_size"`
	Genres          []string `toml:"genres"`
	SeedArtist      string   `toml:"seed_artist"`
	IntervalSeconds int      `toml:"interval_seconds"`
}

// Interval returns the monitor tick interval.
func (a AutoFillTOML) Interval() time.Duration {
	if a.IntervalSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(a.IntervalSeconds) * time.Second
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, ErrInvalidInput)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
