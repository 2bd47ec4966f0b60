package icons

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the file-based counterpart of the functional options, for hosts
// that configure the subsystem from a YAML file. Zero fields fall back to
// the package defaults.
type Config struct {
	CacheDir        string   `yaml:"cache_dir"`
	UserAgent       string   `yaml:"user_agent"`
	DownloadTimeout Duration `yaml:"download_timeout"`
	RetryCooldown   Duration `yaml:"retry_cooldown"`
	IconSize        int      `yaml:"icon_size"`
	MaxEntries      int      `yaml:"max_entries"`
	Workers         int      `yaml:"workers"`
}

// Duration wraps time.Duration so YAML values can use the human form
// ("8s", "5m") accepted by time.ParseDuration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("icons: invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("icons: read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("icons: parse config: %w", err)
	}
	return cfg, nil
}

// Options converts the config to functional options. Zero fields produce no
// option, leaving the package default in place.
func (c Config) Options() []Option {
	var opts []Option
	if c.CacheDir != "" {
		opts = append(opts, WithCacheDir(c.CacheDir))
	}
	if c.UserAgent != "" {
		opts = append(opts, WithUserAgent(c.UserAgent))
	}
	if c.DownloadTimeout > 0 {
		opts = append(opts, WithDownloadTimeout(time.Duration(c.DownloadTimeout)))
	}
	if c.RetryCooldown > 0 {
		opts = append(opts, WithRetryCooldown(time.Duration(c.RetryCooldown)))
	}
	if c.IconSize > 0 {
		opts = append(opts, WithIconSize(c.IconSize))
	}
	if c.MaxEntries > 0 {
		opts = append(opts, WithMaxEntries(c.MaxEntries))
	}
	if c.Workers > 0 {
		opts = append(opts, WithWorkers(c.Workers))
	}
	return opts
}

// DefaultCacheDir resolves the disk-store root.
// Priority: ICONS_CACHE_DIR env > <user cache dir>/archivecord.
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("ICONS_CACHE_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("icons: resolve cache dir: %w", err)
	}
	return filepath.Join(base, "archivecord"), nil
}
