package repo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config stores repository-local settings from .tack/config.toml.
type Config struct {
	User UserConfig `toml:"user"`
	Core CoreConfig `toml:"core"`
}

// UserConfig identifies the default commit author.
type UserConfig struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// CoreConfig holds repository behavior settings.
type CoreConfig struct {
	// SkipHidden controls whether recursive walks skip dot-prefixed
	// entries. Defaults to true.
	SkipHidden bool `toml:"skip_hidden"`
}

func defaultConfig() *Config {
	return &Config{
		Core: CoreConfig{SkipHidden: true},
	}
}

func (r *Repo) configPath() string {
	return filepath.Join(r.TackDir, "config.toml")
}

// ReadConfig reads .tack/config.toml. A missing file returns the defaults.
func (r *Repo) ReadConfig() (*Config, error) {
	cfg := defaultConfig()
	if _, err := toml.DecodeFile(r.configPath(), cfg); err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

// WriteConfig atomically writes .tack/config.toml.
func (r *Repo) WriteConfig(cfg *Config) error {
	if cfg == nil {
		cfg = defaultConfig()
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}

	tmp, err := os.CreateTemp(r.TackDir, ".config-tmp-*")
	if err != nil {
		return fmt.Errorf("write config: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write config: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: close: %w", err)
	}
	if err := os.Rename(tmpName, r.configPath()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: rename: %w", err)
	}
	return nil
}

// Author returns the commit author string "Name <email>" from config,
// falling back to the USER environment variable, then "unknown".
func (r *Repo) Author() string {
	cfg, err := r.ReadConfig()
	if err == nil && strings.TrimSpace(cfg.User.Name) != "" {
		if strings.TrimSpace(cfg.User.Email) != "" {
			return fmt.Sprintf("%s <%s>", cfg.User.Name, cfg.User.Email)
		}
		return cfg.User.Name
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "unknown"
}
