// Package config loads engine settings from a config file and the
// environment.
//
// Precedence is defaults < config file < environment. Environment
// variables use the FRAMECAT_ prefix: FRAMECAT_WORKERS overrides the
// workers setting.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the engine's tunable settings.
type Config struct {
	// Workers is the size of the worker pool; 0 means one per CPU.
	Workers int `mapstructure:"workers"`

	// MinParallelRows is the row count below which element-wise work runs
	// inline instead of on the pool.
	MinParallelRows int `mapstructure:"min_parallel_rows"`

	// Strict makes name resolution refuse to create columns implicitly.
	Strict bool `mapstructure:"strict"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Workers:         0,
		MinParallelRows: 4096,
		Strict:          false,
	}
}

// Load reads settings from the given YAML file, layered over the
// defaults and under any FRAMECAT_* environment variables. An empty path
// skips the file layer.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("workers", 0)
	v.SetDefault("min_parallel_rows", 4096)
	v.SetDefault("strict", false)

	v.SetEnvPrefix("framecat")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
