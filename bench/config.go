package bench

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cosmos/avl-bench/core"
)

type Config struct {
	Run     RunConfig     `yaml:"run"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type RunConfig struct {
	Profile      string `yaml:"profile"` // small, medium or ascending
	Seed         int64  `yaml:"seed"`
	Versions     int    `yaml:"versions"`
	Verify       bool   `yaml:"verify"`
	HashLog      string `yaml:"hash_log"`
	HashInterval int64  `yaml:"hash_interval"`
	ReportDir    string `yaml:"report_dir"`
	// Generators replace the profile when set.
	Generators []GeneratorConfig `yaml:"generators"`
}

type GeneratorConfig struct {
	StoreKey         string  `yaml:"store_key"`
	KeyMean          int     `yaml:"key_mean"`
	KeyStdDev        int     `yaml:"key_std_dev"`
	ValueSpace       int64   `yaml:"value_space"`
	InitialSize      int     `yaml:"initial_size"`
	FinalSize        int     `yaml:"final_size"`
	ChangePerVersion int     `yaml:"change_per_version"`
	DeleteFraction   float64 `yaml:"delete_fraction"`
}

type MetricsConfig struct {
	Addr     string        `yaml:"addr"` // prometheus listen address, e.g. :2112
	Interval time.Duration `yaml:"interval"`
}

func defaultConfig() *Config {
	return &Config{
		Run: RunConfig{
			Profile:      "small",
			Seed:         1,
			Versions:     100,
			Verify:       true,
			HashInterval: 1,
		},
		Metrics: MetricsConfig{
			Interval: 5 * time.Second,
		},
	}
}

// LoadConfig reads configPath over the defaults. With an empty path it
// tries avl-bench.yaml in the working directory and falls back to the
// defaults when that is missing.
func LoadConfig(configPath string) (*Config, error) {
	cfg := defaultConfig()

	if configPath == "" {
		data, err := os.ReadFile("avl-bench.yaml")
		if err != nil {
			return cfg, nil // no file found: use defaults
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return cfg, err
		}
		applyDefaults(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Run.Profile == "" {
		cfg.Run.Profile = "small"
	}
	if cfg.Run.Versions <= 0 {
		cfg.Run.Versions = 100
	}
	if cfg.Run.HashInterval <= 0 {
		cfg.Run.HashInterval = 1
	}
	if cfg.Metrics.Interval <= 0 {
		cfg.Metrics.Interval = 5 * time.Second
	}
	for i := range cfg.Run.Generators {
		g := &cfg.Run.Generators[i]
		if g.StoreKey == "" {
			g.StoreKey = fmt.Sprintf("store%d", i)
		}
		if g.KeyMean <= 0 {
			g.KeyMean = 8
		}
	}
}

// Generators returns the configured generators, or the named profile's
// when none are listed. Each generator gets its own seed derived from
// Run.Seed.
func (c *Config) Generators() ([]core.ChangesetGenerator, error) {
	if len(c.Run.Generators) == 0 {
		return core.Profile(c.Run.Profile, c.Run.Seed, c.Run.Versions)
	}
	gens := make([]core.ChangesetGenerator, 0, len(c.Run.Generators))
	for i, g := range c.Run.Generators {
		gens = append(gens, core.ChangesetGenerator{
			StoreKey:         g.StoreKey,
			Seed:             c.Run.Seed + int64(i),
			KeyMean:          g.KeyMean,
			KeyStdDev:        g.KeyStdDev,
			ValueSpace:       g.ValueSpace,
			InitialSize:      g.InitialSize,
			FinalSize:        g.FinalSize,
			Versions:         c.Run.Versions,
			ChangePerVersion: g.ChangePerVersion,
			DeleteFraction:   g.DeleteFraction,
		})
	}
	return gens, nil
}
