package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mchmarny/phenosim/pkg/growth"
	"github.com/mchmarny/phenosim/pkg/media"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the name of the config file inside the config directory.
	FileName = "config.yaml"

	dirMode  = 0700
	fileMode = 0600

	defaultPort = 8080
	maxPort     = 65535
)

// Control describes one input slider in the UI.
type Control struct {
	Min     float64 `yaml:"min" json:"min"`
	Max     float64 `yaml:"max" json:"max"`
	Step    float64 `yaml:"step" json:"step"`
	Default float64 `yaml:"default" json:"default"`
}

// Controls groups the three input sliders.
type Controls struct {
	Water      Control `yaml:"water" json:"water"`
	Fertilizer Control `yaml:"fertilizer" json:"fertilizer"`
	Light      Control `yaml:"light" json:"light"`
}

// Defaults returns the default slider positions as prediction inputs.
func (c Controls) Defaults() growth.Inputs {
	return growth.Inputs{
		Water:      c.Water.Default,
		Fertilizer: c.Fertilizer.Default,
		Light:      c.Light.Default,
	}
}

// Config represents app config object.
type Config struct {
	VideoDir string   `yaml:"video_dir" json:"video_dir"`
	VideoURL string   `yaml:"video_url,omitempty" json:"video_url,omitempty"`
	Port     int      `yaml:"port" json:"port"`
	Lang     string   `yaml:"lang" json:"lang"`
	Controls Controls `yaml:"controls" json:"controls"`
}

// Default returns the config used when no file exists.
func Default() *Config {
	return &Config{
		VideoDir: media.DefaultDir,
		Port:     defaultPort,
		Lang:     growth.LangEnglish,
		Controls: Controls{
			Water:      Control{Min: 100, Max: 500, Step: 10, Default: 300},
			Fertilizer: Control{Min: 0, Max: 5, Step: 0.1, Default: 2.5},
			Light:      Control{Min: 4, Max: 10, Step: 1, Default: 7},
		},
	}
}

// Validate checks port, language, and slider ranges.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > maxPort {
		return fmt.Errorf("port must be between 1 and %d, got %d", maxPort, c.Port)
	}
	if !growth.IsLanguage(c.Lang) {
		return fmt.Errorf("unsupported lang %q, expected one of: %s", c.Lang, strings.Join(growth.Languages(), ", "))
	}

	for _, ctl := range []struct {
		name string
		c    Control
	}{
		{"water", c.Controls.Water},
		{"fertilizer", c.Controls.Fertilizer},
		{"light", c.Controls.Light},
	} {
		if ctl.c.Min >= ctl.c.Max {
			return fmt.Errorf("%s control: min (%v) must be less than max (%v)", ctl.name, ctl.c.Min, ctl.c.Max)
		}
		if ctl.c.Step <= 0 {
			return fmt.Errorf("%s control: step must be positive, got %v", ctl.name, ctl.c.Step)
		}
		if ctl.c.Default < ctl.c.Min || ctl.c.Default > ctl.c.Max {
			return fmt.Errorf("%s control: default (%v) outside [%v, %v]", ctl.name, ctl.c.Default, ctl.c.Min, ctl.c.Max)
		}
	}
	return nil
}

// Save writes the config into dirPath.
func Save(dirPath string, c *Config) error {
	if dirPath == "" {
		return errors.New("config directory required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	path := filepath.Join(dirPath, FileName)
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// ReadOrCreate reads app config from directory or creates a default one.
func ReadOrCreate(dirPath string) (*Config, error) {
	if dirPath == "" {
		return nil, errors.New("config directory required")
	}

	if err := os.MkdirAll(dirPath, dirMode); err != nil {
		return nil, fmt.Errorf("failed to create dir %s: %w", dirPath, err)
	}

	path := filepath.Join(dirPath, FileName)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating default config", "path", path)
		if err := Save(dirPath, Default()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	return Read(path)
}

// Read loads the config file at path. Fields missing from the file keep
// their default values.
func Read(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("error unmarshalling config file %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return c, nil
}

// GetOrCreateHomeDir returns the app directory in the home of the current user.
// The created flag is set to true if the directory was created.
func GetOrCreateHomeDir(name string) (path string, created bool, err error) {
	if name == "" {
		return "", false, errors.New("name cannot be empty")
	}

	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("failed to get user home dir: %w", err)
	}
	slog.Debug("home dir", "path", home)

	dir := filepath.Join(home, name)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating dir", "path", dir)
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", false, fmt.Errorf("failed to create dir %s: %w", dir, err)
		}
		created = true
	}
	return dir, created, nil
}
