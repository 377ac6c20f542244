/*
Package config manages the TOML config shared by the wordgames commands.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mkzafar/wordgames/internal/utils"
)

const appName = "wordgames"

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	Search SearchConfig `toml:"search"`
	Hunt   HuntConfig   `toml:"hunt"`
}

// ServerConfig has HTTP server options.
type ServerConfig struct {
	Addr            string `toml:"addr"`
	AllowOrigin     string `toml:"allow_origin"`
	ReadTimeoutSec  int    `toml:"read_timeout_sec"`
	WriteTimeoutSec int    `toml:"write_timeout_sec"`
	SearchTimeoutMs int    `toml:"search_timeout_ms"`
	MaxBodyBytes    int    `toml:"max_body_bytes"`
	CacheSize       int    `toml:"cache_size"`
}

// DictConfig locates the word list.
type DictConfig struct {
	Path     string `toml:"path"`
	Required bool   `toml:"required"`
}

// SearchConfig bounds anagram searches made from the prompt and the HTTP API.
type SearchConfig struct {
	MinLetters    int `toml:"min_letters"`
	MaxLetters    int `toml:"max_letters"`
	MinWordLength int `toml:"min_word_length"`
	CheckInterval int `toml:"check_interval"`
}

// HuntConfig bounds grid searches.
type HuntConfig struct {
	MinWordLength int `toml:"min_word_length"`
	MaxWordLength int `toml:"max_word_length"`
	MaxRows       int `toml:"max_rows"`
	MaxCols       int `toml:"max_cols"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8081",
			AllowOrigin:     "*",
			ReadTimeoutSec:  10,
			WriteTimeoutSec: 10,
			SearchTimeoutMs: 2000,
			MaxBodyBytes:    1 << 20,
			CacheSize:       512,
		},
		Dict: DictConfig{
			Path: "dictionary.txt",
		},
		Search: SearchConfig{
			MinLetters:    3,
			MaxLetters:    15,
			MinWordLength: 3,
			CheckInterval: 1024,
		},
		Hunt: HuntConfig{
			MinWordLength: 3,
			MaxWordLength: 8,
			MaxRows:       8,
			MaxCols:       8,
		},
	}
}

// ReadTimeout returns read_timeout_sec as a Duration.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSec) * time.Second
}

func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSec) * time.Second
}

func (s ServerConfig) SearchTimeout() time.Duration {
	return time.Duration(s.SearchTimeoutMs) * time.Millisecond
}

// Validate reports every setting that cannot work, joined into one error.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes))
	}
	if c.Search.MinLetters < 1 || c.Search.MaxLetters < c.Search.MinLetters {
		errs = append(errs, fmt.Errorf("search letters range [%d, %d] is empty", c.Search.MinLetters, c.Search.MaxLetters))
	}
	if c.Search.MinWordLength < 1 {
		errs = append(errs, fmt.Errorf("search.min_word_length must be at least 1, got %d", c.Search.MinWordLength))
	}
	if c.Hunt.MinWordLength < 1 || c.Hunt.MaxWordLength < c.Hunt.MinWordLength {
		errs = append(errs, fmt.Errorf("hunt word length range [%d, %d] is empty", c.Hunt.MinWordLength, c.Hunt.MaxWordLength))
	}
	if c.Hunt.MaxRows < 1 || c.Hunt.MaxCols < 1 {
		errs = append(errs, fmt.Errorf("hunt grid limit %dx%d is too small", c.Hunt.MaxRows, c.Hunt.MaxCols))
	}
	return errors.Join(errs...)
}

// GetConfigDir returns the config directory with fallback priority:
// 1. $XDG_CONFIG_HOME/wordgames
// 2. ~/.config/wordgames
// 3. ~/Library/Application Support/wordgames (macOS)
// 4. Current executable dir
func GetConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dir := filepath.Join(xdg, appName)
		if utils.ProbeDir(dir).Writable {
			return dir, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.ExecutableDir()
	}
	for _, dir := range []string{
		filepath.Join(home, ".config", appName),
		filepath.Join(home, "Library", "Application Support", appName),
	} {
		if utils.ProbeDir(dir).Writable {
			return dir, nil
		}
	}
	dir, err := utils.ExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return dir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path, created with defaults when missing
// 3. Builtin defaults
//
// The returned path is empty when only the builtin defaults were used.
func LoadConfigWithPriority(customPath string) (*Config, string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err != nil {
			return nil, "", fmt.Errorf("config file %s: %w", customPath, err)
		}
		cfg, err := LoadConfig(customPath)
		if err != nil {
			return nil, "", err
		}
		log.Debugf("Loaded config from custom path: %s", customPath)
		return cfg, utils.AbsPath(customPath), nil
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	cfg, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at %s: %v. Using built-in defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return cfg, defaultPath, nil
}

// InitConfig loads config from file or creates it with defaults when missing.
func InitConfig(path string) (*Config, error) {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	if !utils.FileExists(path) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, path); err != nil {
			return nil, err
		}
		log.Debugf("Created default config file at: %s", path)
		return cfg, nil
	}
	return LoadConfig(path)
}

// LoadConfig loads from a TOML file on top of the defaults. A file that does not
// decode cleanly is salvaged section by section.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(path, cfg); err != nil {
		return tryPartialParse(path)
	}
	return cfg, nil
}

// tryPartialParse keeps every well typed value and the defaults for the rest.
func tryPartialParse(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := utils.DecodeTOMLMap(path)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", path, err)
		return cfg, nil
	}

	if section, ok := utils.Section(data, "server"); ok {
		extractServerConfig(section, &cfg.Server)
	}
	if section, ok := utils.Section(data, "dict"); ok {
		extractDictConfig(section, &cfg.Dict)
	}
	if section, ok := utils.Section(data, "search"); ok {
		extractSearchConfig(section, &cfg.Search)
	}
	if section, ok := utils.Section(data, "hunt"); ok {
		extractHuntConfig(section, &cfg.Hunt)
	}
	return cfg, nil
}

func extractServerConfig(data map[string]any, s *ServerConfig) {
	if v, ok := utils.String(data, "addr"); ok {
		s.Addr = v
	}
	if v, ok := utils.String(data, "allow_origin"); ok {
		s.AllowOrigin = v
	}
	setInt(data, "read_timeout_sec", &s.ReadTimeoutSec)
	setInt(data, "write_timeout_sec", &s.WriteTimeoutSec)
	setInt(data, "search_timeout_ms", &s.SearchTimeoutMs)
	setInt(data, "max_body_bytes", &s.MaxBodyBytes)
	setInt(data, "cache_size", &s.CacheSize)
}

func extractDictConfig(data map[string]any, d *DictConfig) {
	if v, ok := utils.String(data, "path"); ok {
		d.Path = v
	}
	if v, ok := utils.Bool(data, "required"); ok {
		d.Required = v
	}
}

func extractSearchConfig(data map[string]any, s *SearchConfig) {
	setInt(data, "min_letters", &s.MinLetters)
	setInt(data, "max_letters", &s.MaxLetters)
	setInt(data, "min_word_length", &s.MinWordLength)
	setInt(data, "check_interval", &s.CheckInterval)
}

func extractHuntConfig(data map[string]any, h *HuntConfig) {
	setInt(data, "min_word_length", &h.MinWordLength)
	setInt(data, "max_word_length", &h.MaxWordLength)
	setInt(data, "max_rows", &h.MaxRows)
	setInt(data, "max_cols", &h.MaxCols)
}

func setInt(data map[string]any, key string, dst *int) {
	if v, ok := utils.Int(data, key); ok {
		*dst = v
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(cfg *Config, path string) error {
	return utils.SaveTOMLFile(cfg, path)
}
