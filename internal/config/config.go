package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/korkdex/internal/catalog"
	"github.com/arcanaland/korkdex/internal/collection"
	"github.com/arcanaland/korkdex/internal/dex"
	"github.com/arcanaland/korkdex/internal/layout"
	"github.com/arcanaland/korkdex/internal/store"
)

// AppName names the XDG sub directories.
const AppName = "korkdex"

// EnvCardAPIKey overrides CardAPI.APIKey when set.
const EnvCardAPIKey = "KORKDEX_CARD_API_KEY"

// Config represents the application configuration
type Config struct {
	CollectionPath string `toml:"collection_path"`
	Category       string `toml:"category"`
	DataDir        string `toml:"data_dir"` // Empty means $XDG_DATA_HOME/korkdex
	Backend        string `toml:"cache_backend"`

	FachSize  int `toml:"fach_size"`
	TraySize  int `toml:"tray_size"`
	BatchSize int `toml:"batch_size"`

	RequestDelayMS int `toml:"request_delay_ms"`

	SpeciesAPI SpeciesAPI `toml:"species_api"`
	CardAPI    CardAPI    `toml:"card_api"`

	Generations []dex.GenerationRange `toml:"generations"`
	Regions     []dex.Region          `toml:"regions"`
	Exclusions  []string              `toml:"exclusions"`
}

// SpeciesAPI configures the species catalog.
type SpeciesAPI struct {
	BaseURL string `toml:"base_url"`
	From    int    `toml:"from"`
	To      int    `toml:"to"`
}

// CardAPI configures the card catalog.
type CardAPI struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

// Default returns the configuration written on first use.
func Default() *Config {
	return &Config{
		CollectionPath: filepath.Join(GetXDGDataHome(), AppName, "collection.csv"),
		Category:       collection.DefaultCategory,
		Backend:        store.BackendJSON,
		FachSize:       layout.DefaultFachSize,
		TraySize:       layout.DefaultTraySize,
		BatchSize:      50,
		RequestDelayMS: 100,
		SpeciesAPI: SpeciesAPI{
			BaseURL: catalog.DefaultSpeciesURL,
			From:    1,
			To:      dex.MaxNationalNumber,
		},
		CardAPI: CardAPI{
			BaseURL: catalog.DefaultCardsURL,
		},
		Generations: dex.DefaultRanges(),
		Regions:     dex.DefaultRegions(),
		Exclusions:  dex.DefaultExclusions(),
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), AppName, "config.toml")
}

// GetDataDir returns the default dataset directory
func GetDataDir() string {
	return filepath.Join(GetXDGDataHome(), AppName)
}

// GetCacheDir returns the directory for downloaded card images
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), AppName)
}

// LoadConfig loads the config file at the default location
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(GetConfigFilePath())
}

// LoadConfigFrom loads the config file at path, writing the defaults there
// if it does not exist. Missing keys keep their default value.
func LoadConfigFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
		return cfg.withEnv(), nil
	}

	cfg := Default()
	// Table keys replace the defaults wholesale.
	cfg.Generations, cfg.Regions, cfg.Exclusions = nil, nil, nil
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	if !md.IsDefined("generations") {
		cfg.Generations = dex.DefaultRanges()
	}
	if !md.IsDefined("regions") {
		cfg.Regions = dex.DefaultRegions()
	}
	if !md.IsDefined("exclusions") {
		cfg.Exclusions = dex.DefaultExclusions()
	}

	if _, err := cfg.Tables(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg.withEnv(), nil
}

func (c *Config) withEnv() *Config {
	if key := os.Getenv(EnvCardAPIKey); key != "" {
		c.CardAPI.APIKey = key
	}
	return c
}

// Save writes the config to path, creating its directory
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(c); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// Tables returns the validated generation tables.
func (c *Config) Tables() (dex.Tables, error) {
	t := dex.Tables{Ranges: c.Generations, Regions: c.Regions, Exclusions: c.Exclusions}
	if err := t.Validate(); err != nil {
		return dex.Tables{}, err
	}
	return t, nil
}

// ResolvedDataDir returns DataDir or the XDG default.
func (c *Config) ResolvedDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return GetDataDir()
}

// RequestDelay returns the pause between catalog requests.
func (c *Config) RequestDelay() time.Duration {
	if c.RequestDelayMS <= 0 {
		return 0
	}
	return time.Duration(c.RequestDelayMS) * time.Millisecond
}
