package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Theme names stored in the preferences file.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ServerConfig tells the dashboard where the API lives.
type ServerConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Theme is "light" or "dark". It is the only view preference that
	// survives a restart.
	Theme string `mapstructure:"theme" yaml:"theme"`

	// MobileBreakpoint is the terminal width (in columns) below which the
	// single-pane layout is used.
	MobileBreakpoint int `mapstructure:"mobile_breakpoint" yaml:"mobile_breakpoint"`
}

// LogConfig controls the dashboard's log file.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// AppConfig is the top-level dashboard configuration.
type AppConfig struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// IsDarkTheme reports whether the dark palette is selected.
func (c *AppConfig) IsDarkTheme() bool {
	return c.Display.Theme == ThemeDark
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/triage/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "triage", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			URL: "http://localhost:8080",
		},
		Display: DisplayConfig{
			Theme:            ThemeLight,
			MobileBreakpoint: 100,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("server.url", "http://localhost:8080")
	v.SetDefault("display.theme", ThemeLight)
	v.SetDefault("display.mobile_breakpoint", 100)
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Anything other than "dark" is treated as the light default.
	if cfg.Display.Theme != ThemeDark {
		cfg.Display.Theme = ThemeLight
	}
	if cfg.Display.MobileBreakpoint <= 0 {
		cfg.Display.MobileBreakpoint = 100
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("server", cfg.Server)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

// ThemePreference persists the theme choice into the config file.
type ThemePreference struct {
	path string
	cfg  *AppConfig
}

// NewThemePreference binds theme persistence to cfg stored at path.
func NewThemePreference(path string, cfg *AppConfig) *ThemePreference {
	return &ThemePreference{path: path, cfg: cfg}
}

// DarkTheme reports the stored preference.
func (p *ThemePreference) DarkTheme() bool {
	return p.cfg.IsDarkTheme()
}

// SetDarkTheme stores the preference and writes the config file.
func (p *ThemePreference) SetDarkTheme(dark bool) error {
	if dark {
		p.cfg.Display.Theme = ThemeDark
	} else {
		p.cfg.Display.Theme = ThemeLight
	}
	return SaveConfig(p.path, p.cfg)
}
