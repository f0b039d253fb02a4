// Package config loads mev settings from defaults, the TOML config file and
// MEV_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override, e.g. MEV_API_BASE_URL.
const EnvPrefix = "MEV_"

// Config holds application configuration.
type Config struct {
	API    APIConfig    `koanf:"api"`
	Cache  CacheConfig  `koanf:"cache"`
	Log    LogConfig    `koanf:"log"`
	Search SearchConfig `koanf:"search"`
	Dev    DevConfig    `koanf:"dev"`
}

type APIConfig struct {
	BaseURL string        `koanf:"base_url" validate:"required,url"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

type CacheConfig struct {
	Pages  int           `koanf:"pages" validate:"gte=0"`
	TTL    time.Duration `koanf:"ttl" validate:"gte=0"`
	Dishes int           `koanf:"dishes" validate:"gte=0"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	File  string `koanf:"file"`
	JSON  bool   `koanf:"json"`
}

type SearchConfig struct {
	PageSize int `koanf:"page_size" validate:"gte=1,lte=100"`
}

// DevConfig configures the development backend.
type DevConfig struct {
	Addr string `koanf:"addr" validate:"required"`
	DB   string `koanf:"db" validate:"required"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	dir := DefaultDir()
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Pages:  64,
			TTL:    time.Minute,
			Dishes: 32,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "mev.log"),
		},
		Search: SearchConfig{PageSize: 10},
		Dev: DevConfig{
			Addr: ":8080",
			DB:   filepath.Join(dir, "dev.db"),
		},
	}
}

// DefaultDir returns ~/.config/mev, or .mev when the home directory is
// unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mev"
	}
	return filepath.Join(home, ".config", "mev")
}

// DefaultConfigFilePath returns the default config path: ~/.config/mev/config.toml
func DefaultConfigFilePath() string {
	return filepath.Join(DefaultDir(), "config.toml")
}

// Load reads the config file at path, creating it with defaults if it
// doesn't exist, and applies environment overrides. An empty path means
// DefaultConfigFilePath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilePath()
	}

	k := koanf.New(".")
	defaults := DefaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		// Non-fatal: defaults still apply when the file can't be written
		_ = Save(path, &defaults)
	} else if err := k.Load(tomlFile(path), nil); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnv,
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// transformEnv maps MEV_API_BASE_URL to api.base_url. The first segment is
// the section, the rest is the key.
func transformEnv(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok || section == "" || rest == "" {
		return "", nil
	}
	return section + "." + rest, value
}

// Save writes cfg as TOML. Creates the directory if it doesn't exist.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(fileFormat(cfg))
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// fileFormat spells durations the way people write them in the file.
func fileFormat(cfg *Config) map[string]any {
	return map[string]any{
		"api": map[string]any{
			"base_url": cfg.API.BaseURL,
			"timeout":  cfg.API.Timeout.String(),
		},
		"cache": map[string]any{
			"pages":  cfg.Cache.Pages,
			"ttl":    cfg.Cache.TTL.String(),
			"dishes": cfg.Cache.Dishes,
		},
		"log": map[string]any{
			"level": cfg.Log.Level,
			"file":  cfg.Log.File,
			"json":  cfg.Log.JSON,
		},
		"search": map[string]any{
			"page_size": cfg.Search.PageSize,
		},
		"dev": map[string]any{
			"addr": cfg.Dev.Addr,
			"db":   cfg.Dev.DB,
		},
	}
}

// tomlFile is a koanf.Provider reading a TOML file into a nested map.
type tomlFile string

func (f tomlFile) ReadBytes() ([]byte, error) {
	return os.ReadFile(string(f))
}

func (f tomlFile) Read() (map[string]any, error) {
	data, err := f.ReadBytes()
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := toml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
