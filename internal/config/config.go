package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"photofeed/internal/eventbus"
)

// DefaultFeedBaseURL is the public photo feed host
const DefaultFeedBaseURL = "http://api.flickr.com"

// Config represents the application configuration
type Config struct {
	Version       int        `toml:"version"`
	FeedBaseURL   string     `toml:"feed_base_url"`
	DebounceMS    int        `toml:"debounce_ms"`
	HTTPTimeoutMS int        `toml:"http_timeout_ms"` // 0 keeps the transport default
	UserAgent     string     `toml:"user_agent"`
	LogFile       string     `toml:"log_file"`
	LogLevel      string     `toml:"log_level"`
	Pairing       string     `toml:"pairing"` // "item" or "positional"
	UISettings    UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowDescriptions bool `toml:"show_descriptions"`
}

// Debounce returns the quiet period as a duration
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// HTTPTimeout returns the client timeout as a duration
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMS) * time.Millisecond
}

// Validate checks the values a search pipeline cannot run without
func (c *Config) Validate() error {
	if c.DebounceMS <= 0 {
		return fmt.Errorf("debounce_ms must be positive, got %d", c.DebounceMS)
	}
	if c.HTTPTimeoutMS < 0 {
		return fmt.Errorf("http_timeout_ms must not be negative, got %d", c.HTTPTimeoutMS)
	}
	switch strings.ToLower(strings.TrimSpace(c.Pairing)) {
	case "", "item", "positional":
	default:
		return fmt.Errorf("pairing must be item or positional, got %q", c.Pairing)
	}
	u, err := url.Parse(c.FeedBaseURL)
	if err != nil {
		return fmt.Errorf("invalid feed_base_url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return errors.New("feed_base_url needs a scheme and host")
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "photofeed", "config.toml")
}

// NewConfigService creates a config service bound to path; an empty path
// selects DefaultPath. bus may be nil.
func NewConfigService(path string, bus eventbus.EventBus) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{
		bus:      bus,
		filePath: path,
	}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when
// the file does not exist
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys absent from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:     1,
		FeedBaseURL: DefaultFeedBaseURL,
		DebounceMS:  800,
		UserAgent:   "photofeed/1.0",
		LogFile:     "photofeed.log",
		LogLevel:    "info",
		Pairing:     "item",
		UISettings: UISettings{
			ShowDescriptions: true,
		},
	}
}
