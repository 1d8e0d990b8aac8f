package sim

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config mirrors the TOML run configuration accepted by "meristem run".
// Zero values defer to the run defaults.
//
// Example:
//
//	model = "tree"
//	generations = 8
//	population = 50
//	workers = 4
//	seed = 7
type Config struct {
	Model       string `toml:"model"`
	Generations int    `toml:"generations"`
	Population  int    `toml:"population"`
	Workers     int    `toml:"workers"`
	Seed        int64  `toml:"seed"`
}

// LoadConfig reads and decodes a TOML run configuration.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the file configuration into run options.
func (c Config) Options() Options {
	return Options{
		Model:       c.Model,
		Generations: c.Generations,
		Population:  c.Population,
		Workers:     c.Workers,
		Seed:        c.Seed,
	}
}
