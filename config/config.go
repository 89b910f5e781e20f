// Package config loads sweep settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/weiihann/hashbench/harness"
	"github.com/weiihann/hashbench/subject"
	"github.com/weiihann/hashbench/workload"
)

// Output formats.
const (
	FormatChart    = "chart"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Config is the on-disk shape of a sweep configuration.
type Config struct {
	Subjects []string `yaml:"subjects"`
	MinExp   int      `yaml:"min_exp"`
	MaxExp   int      `yaml:"max_exp"`
	Budget   float64  `yaml:"budget"`
	Order    string   `yaml:"order"`
	Seed     int64    `yaml:"seed"`
	Fresh    bool     `yaml:"fresh"`
	Format   string   `yaml:"format"`
	Output   string   `yaml:"output"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	run := harness.DefaultRunConfig()

	return Config{
		Subjects: []string{"map"},
		MinExp:   run.MinExp,
		MaxExp:   run.MaxExp,
		Budget:   run.Budget,
		Order:    run.Order,
		Format:   FormatChart,
	}
}

// Load reads path over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks names that the sweep would otherwise reject late.
func (c Config) Validate() error {
	if len(c.Subjects) == 0 {
		return fmt.Errorf("at least one subject must be specified")
	}

	for _, name := range c.Subjects {
		if _, err := subject.Lookup(name); err != nil {
			return err
		}
	}

	if !slices.Contains(workload.Orders(), c.Order) {
		return fmt.Errorf("unknown key order %q (known: %v)",
			c.Order, workload.Orders())
	}

	switch c.Format {
	case FormatChart, FormatMarkdown, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}

	return nil
}

// RunConfig returns the harness parameters for this configuration.
func (c Config) RunConfig() harness.RunConfig {
	return harness.RunConfig{
		MinExp: c.MinExp,
		MaxExp: c.MaxExp,
		Budget: c.Budget,
		Order:  c.Order,
		Seed:   c.Seed,
		Fresh:  c.Fresh,
	}
}
