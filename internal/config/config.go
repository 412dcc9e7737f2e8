package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/lineator/internal/validator"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "lineator.yaml"

// Config holds every tunable of the CLI and the server.
type Config struct {
	Limits          validator.Limits `yaml:"limits" json:"limits" mapstructure:"limits"`
	CommentPrefixes []string         `yaml:"comment_prefixes" json:"comment_prefixes" mapstructure:"comment_prefixes"`
	Format          string           `yaml:"format" json:"format" mapstructure:"format"`
	Log             LogConfig        `yaml:"log" json:"log" mapstructure:"log"`
	Redis           RedisConfig      `yaml:"redis" json:"redis" mapstructure:"redis"`
	HTTP            HTTPConfig       `yaml:"http" json:"http" mapstructure:"http"`
	Metrics         MetricsConfig    `yaml:"metrics" json:"metrics" mapstructure:"metrics"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level string `yaml:"level" json:"level" mapstructure:"level"`
	JSON  bool   `yaml:"json" json:"json" mapstructure:"json"`
	// File, when set, also receives every record as JSON.
	File string `yaml:"file" json:"file" mapstructure:"file"`
}

// RedisConfig enables the shared result cache when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr" json:"addr" mapstructure:"addr"`
	Password string        `yaml:"password" json:"password" mapstructure:"password"`
	DB       int           `yaml:"db" json:"db" mapstructure:"db"`
	Prefix   string        `yaml:"prefix" json:"prefix" mapstructure:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl" mapstructure:"ttl"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr        string        `yaml:"addr" json:"addr" mapstructure:"addr"`
	ReadTimeout time.Duration `yaml:"read_timeout" json:"read_timeout" mapstructure:"read_timeout"`
	MaxBody     int64         `yaml:"max_body" json:"max_body" mapstructure:"max_body"`
}

// MetricsConfig controls metric export for batch runs.
type MetricsConfig struct {
	Textfile string `yaml:"textfile" json:"textfile" mapstructure:"textfile"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Limits: validator.DefaultLimits(),
		Format: "text",
		Log:    LogConfig{Level: "info"},
		HTTP: HTTPConfig{
			Addr:        ":8080",
			ReadTimeout: 10 * time.Second,
			MaxBody:     1 << 20,
		},
	}
}

// Load reads path on top of the defaults.
// YAML is assumed unless the extension is .json. A missing file is only an
// error when it was asked for explicitly, i.e. when path is not DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := make(map[string]any)
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg.Limits = cfg.Limits.Normalize()
	return cfg, nil
}

// Decode merges a generic map into cfg. Unknown keys are rejected and
// durations accept strings such as "90s".
func Decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}
