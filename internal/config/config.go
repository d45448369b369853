package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"portfolio.dev/internal/models"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig  `yaml:"server"`
	GitHub      GitHubConfig  `yaml:"github"`
	Feed        FeedConfig    `yaml:"feed"`
	Logging     LoggingConfig `yaml:"logging"`
	Theme       ThemeConfig   `yaml:"theme"`
	ProfilePath string        `yaml:"profile_path"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"static_dir"`
}

// GitHubConfig holds settings for the repository listing endpoint
type GitHubConfig struct {
	Account string        `yaml:"account"`
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Cache   bool          `yaml:"cache"` // conditional-request cache shared across mounts
	Timeout time.Duration `yaml:"timeout"`
}

// FeedConfig holds repository feed settings
type FeedConfig struct {
	PageSize      int    `yaml:"page_size"`
	ExcludeMarker string `yaml:"exclude_marker"`
	OverlayPath   string `yaml:"overlay_path"`
	TimeZone      string `yaml:"time_zone"` // IANA name for the rate-limit reset time; empty means local

	// Server mounts are kept for follow-up page and detail requests
	MountTTL  time.Duration `yaml:"mount_ttl"`
	MaxMounts int           `yaml:"max_mounts"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// ThemeConfig holds the persisted theme location
type ThemeConfig struct {
	Path string `yaml:"path"` // empty means the user config directory
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      ":8080",
			StaticDir: "static",
		},
		GitHub: GitHubConfig{
			Account: "Mayank-rathi",
			BaseURL: "https://api.github.com/",
			Timeout: 10 * time.Second,
		},
		Feed: FeedConfig{
			PageSize:      6,
			ExcludeMarker: ".github.io",
			OverlayPath:   "data/overlay.yaml",
			MountTTL:      10 * time.Minute,
			MaxMounts:     256,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		ProfilePath: "data/profile.yaml",
	}
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides lets the environment win over the file
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("PORTFOLIO_GITHUB_ACCOUNT"); v != "" {
		c.GitHub.Account = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		c.GitHub.Token = v
	}
	if v := os.Getenv("PORTFOLIO_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the configuration for values the feed cannot run with
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.GitHub.Account) == "" {
		problems = append(problems, "github.account is required")
	}
	if c.GitHub.BaseURL == "" {
		problems = append(problems, "github.base_url is required")
	}
	if c.Feed.PageSize <= 0 {
		problems = append(problems, "feed.page_size must be positive")
	}
	if c.GitHub.Timeout < 0 {
		problems = append(problems, "github.timeout must not be negative")
	}
	if _, err := c.Location(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Location returns the zone used to show rate-limit reset times
func (c *Config) Location() (*time.Location, error) {
	if c.Feed.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Feed.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("feed.time_zone: %w", err)
	}
	return loc, nil
}

// LoadOverlay reads the static metadata lookup tables
func LoadOverlay(path string) (*models.OverlayTables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load overlay: %w", err)
	}

	var tables models.OverlayTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("failed to parse overlay %s: %w", path, err)
	}

	return &tables, nil
}

// SaveOverlay writes the lookup tables back as YAML
func SaveOverlay(path string, tables *models.OverlayTables) error {
	data, err := yaml.Marshal(tables)
	if err != nil {
		return fmt.Errorf("failed to marshal overlay: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create overlay directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProfile reads the static portfolio content
func LoadProfile(path string) (*models.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	var profile models.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	return &profile, nil
}
