package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SeedActivity describes one pre-populated schedule entry. Times are
// "HH:MM" strings; entries that fail to parse are skipped at startup.
type SeedActivity struct {
	Day      string `yaml:"day"`
	Title    string `yaml:"title"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
	Location string `yaml:"location,omitempty"`
	Note     string `yaml:"note,omitempty"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the web UI and API.
	Listen string `yaml:"listen"`

	// StartHour / EndHour are the default displayed hour range. The UI can
	// override them per request within [5,12] and [13,23].
	StartHour int `yaml:"start_hour"`
	EndHour   int `yaml:"end_hour"`

	// SessionTTLMinutes is how long an idle browser session keeps its
	// schedule before it is dropped.
	SessionTTLMinutes int `yaml:"session_ttl_minutes"`

	// Seed is the set of example activities a fresh session starts with.
	// An explicit empty list starts sessions empty.
	Seed []SeedActivity `yaml:"seed"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:            "127.0.0.1:7531",
		StartHour:         7,
		EndHour:           21,
		SessionTTLMinutes: 720,
		Seed: []SeedActivity{
			{Day: "Lunes", Title: "PLE B1", Start: "09:00", End: "11:00", Location: "Aula 3"},
			{Day: "Martes", Title: "Reunión equipo", Start: "15:00", End: "16:00", Location: "Zoom"},
			{Day: "Viernes", Title: "Oficina PLE", Start: "10:30", End: "12:00", Location: "IGR Lima"},
		},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:7531"
	}
	if c.StartHour < 5 || c.StartHour > 12 {
		c.StartHour = 7
	}
	if c.EndHour < 13 || c.EndHour > 23 {
		c.EndHour = 21
	}
	if c.SessionTTLMinutes <= 0 {
		c.SessionTTLMinutes = 720
	}
	if c.Seed == nil {
		c.Seed = DefaultConfig().Seed
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, write a default config (0600) and
//     return it.
//   - If the file exists, read YAML, unmarshal and normalize defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration atomically via a temp file + rename,
// ensuring the parent directory exists and 0600 permissions on the result.
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

	tmp, err := os.CreateTemp(dir, ".horario-config-*.tmp")
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
