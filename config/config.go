// Package config loads run configuration. Values come from a yaml config file
// selected by CONFIG_ENV, with code-level defaults underneath; command-line
// flags override both.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Detection struct {
	// Components selected when the CLI does not name any.
	Components []string `mapstructure:"components"`
	// Role whose repeated turns the deaf detector scans.
	Role string `mapstructure:"role"`
	// QualifiedActs marks interaction models whose node labels carry A_/U_
	// speaker prefixes.
	QualifiedActs bool `mapstructure:"qualified_acts"`
	// Signal selects the delayed-reply strategy: "transition" or "slots".
	Signal string `mapstructure:"signal"`
	// PatternLen caps the act n-grams mined for the summary.
	PatternLen int `mapstructure:"pattern_len"`
}

type Paths struct {
	Outputs string `mapstructure:"outputs"`
}

type Root struct {
	Pipeline struct {
		Name   string `mapstructure:"name"`
		LogLvl string `mapstructure:"log_level"`
	} `mapstructure:"pipeline"`
	Detection Detection `mapstructure:"detection"`
	Paths     Paths     `mapstructure:"paths"`
}

// Load reads the config file for the current CONFIG_ENV (default "dev"),
// probing the usual locations. A missing file is fine: defaults apply.
func Load() (*Root, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join("config", env))
	v.AddConfigPath(".")

	v.SetDefault("pipeline.name", "breakdowns")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("detection.components", []string{
		"system_failure", "dialogue_of_the_deaf", "conversation_flow",
	})
	v.SetDefault("detection.role", "agent")
	v.SetDefault("detection.qualified_acts", false)
	v.SetDefault("detection.signal", "transition")
	v.SetDefault("detection.pattern_len", 3)
	v.SetDefault("paths.outputs", "data/outputs")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
