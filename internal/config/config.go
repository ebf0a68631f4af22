package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override values from the config file.
const (
	EnvLoraPath    = "KWFINDER_LORA_PATH"
	EnvModelPath   = "KWFINDER_MODEL_PATH"
	EnvKeywordPath = "KWFINDER_KEYWORD_PATH"
)

// DefaultPaths lists the config files tried, in order, when no path is given.
// YAML is a superset of JSON, so config.json from older setups still loads.
var DefaultPaths = []string{"config.yaml", "config.json"}

// Config points kwfinder at a stable-diffusion installation.
type Config struct {
	LoraPath    string `yaml:"lora_path"`
	ModelPath   string `yaml:"sd_model_path"`
	KeywordPath string `yaml:"model_keyword_path"`
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the template written by kwfinder init. The paths
// follow the AUTOMATIC1111 web UI layout.
func DefaultConfig() *Config {
	j := func(parts ...string) string {
		return filepath.Join(append([]string{"~", "stable-diffusion-webui"}, parts...)...)
	}
	return &Config{
		LoraPath:    j("models", "Lora"),
		ModelPath:   j("models", "Stable-diffusion"),
		KeywordPath: j("extensions", "model-keyword"),
	}
}

// Resolve returns the config file to read: explicit if set, otherwise the
// first of DefaultPaths that exists.
func Resolve(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no config file found (tried %s)", strings.Join(DefaultPaths, ", "))
}

// Load reads and parses the config file at path, then applies environment
// overrides and expands ~ in every path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	if err := cfg.ApplyOverrides(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyOverrides replaces fields with any values set through the environment
// or the .env file, then expands ~.
func (c *Config) ApplyOverrides() error {
	fields := []struct {
		key string
		dst *string
	}{
		{EnvLoraPath, &c.LoraPath},
		{EnvModelPath, &c.ModelPath},
		{EnvKeywordPath, &c.KeywordPath},
	}
	for _, f := range fields {
		v, err := GetConfigValue(f.key)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = v
		}
		expanded, err := ExpandPath(*f.dst)
		if err != nil {
			return err
		}
		*f.dst = expanded
	}
	return nil
}

// Validate reports the first unset path.
func (c *Config) Validate() error {
	switch {
	case c.LoraPath == "":
		return errors.New("lora_path is not set")
	case c.ModelPath == "":
		return errors.New("sd_model_path is not set")
	case c.KeywordPath == "":
		return errors.New("model_keyword_path is not set")
	}
	return nil
}

// Save marshals cfg and writes it to path. An existing file is not replaced.
func Save(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot stat config %s: %w", path, err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
