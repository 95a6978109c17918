package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"weekcal/internal/layout"
)

// Config is the top-level application configuration.
type Config struct {
	// Input is the ICS file path or http(s) feed URL.
	Input string `yaml:"input" json:"input"`

	// Timezone is the IANA zone every event is converted to (e.g. "Europe/Rome").
	Timezone string `yaml:"timezone" json:"timezone"`

	// OutputDir receives PageFile and ImageFile.
	OutputDir string `yaml:"output_dir" json:"output_dir"`
	PageFile  string `yaml:"page_file" json:"page_file"`
	ImageFile string `yaml:"image_file" json:"image_file"`

	// Rasterize toggles the PNG export. A nil value means true so older
	// files without the key keep exporting.
	Rasterize *bool `yaml:"rasterize,omitempty" json:"rasterize,omitempty"`

	// ChromeNoSandbox passes --no-sandbox to Chromium (root in containers).
	ChromeNoSandbox bool `yaml:"chrome_no_sandbox" json:"chrome_no_sandbox"`

	RasterTimeoutSec int `yaml:"raster_timeout_sec" json:"raster_timeout_sec"`

	// CacheDir holds the ETag cache for remote feeds.
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Palette is the ordered list of "#rrggbb" fill colors.
	Palette []string `yaml:"palette" json:"palette"`

	Layout layout.Config `yaml:"layout" json:"layout"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	rasterize := true
	return &Config{
		Input:            "calendario.ics",
		Timezone:         "Europe/Rome",
		OutputDir:        ".",
		PageFile:         "calendar.svg",
		ImageFile:        "calendar.png",
		Rasterize:        &rasterize,
		RasterTimeoutSec: 30,
		CacheDir:         filepath.Join(".", "cache", "ics"),
		LogLevel:         "info",
		Palette:          append([]string(nil), layout.DefaultPaletteHex...),
		Layout:           layout.DefaultConfig(),
	}
}

// Normalize fills in missing/zero values with defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	d := DefaultConfig()

	if c.Input == "" {
		c.Input = d.Input
	}
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if c.PageFile == "" {
		c.PageFile = d.PageFile
	}
	if c.ImageFile == "" {
		c.ImageFile = d.ImageFile
	}
	if c.Rasterize == nil {
		c.Rasterize = d.Rasterize
	}
	if c.RasterTimeoutSec <= 0 {
		c.RasterTimeoutSec = d.RasterTimeoutSec
	}
	if c.CacheDir == "" {
		c.CacheDir = d.CacheDir
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if len(c.Palette) == 0 {
		c.Palette = d.Palette
	}
	c.Layout.Normalize()
}

// Validate reports settings Normalize cannot repair.
func (c *Config) Validate() error {
	if _, err := layout.ParsePalette(c.Palette); err != nil {
		return err
	}
	return nil
}

// PagePath is the SVG output path.
func (c *Config) PagePath() string {
	return filepath.Join(c.OutputDir, c.PageFile)
}

// ImagePath is the PNG output path.
func (c *Config) ImagePath() string {
	return filepath.Join(c.OutputDir, c.ImageFile)
}

// RasterEnabled reports whether the PNG export should run.
func (c *Config) RasterEnabled() bool {
	return c.Rasterize == nil || *c.Rasterize
}

// RasterTimeout is RasterTimeoutSec as a duration.
func (c *Config) RasterTimeout() time.Duration {
	return time.Duration(c.RasterTimeoutSec) * time.Second
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - An empty path returns the defaults without touching disk.
//   - If the file does not exist, a default config is written there
//     with 0600 perms and returned.
//   - Otherwise the YAML is unmarshalled over the defaults, normalized and
//     validated.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the given configuration to the specified path.
//
//   - Ensures parent directory exists (0700).
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".weekcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save is a convenience method that delegates to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
