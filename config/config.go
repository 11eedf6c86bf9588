package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Structs

// Config holds all information parsed from
// supplied config file.
type Config struct {
	Parser  Parser
	Log     Log
	Metrics Metrics
}

// Parser configures how server responses are
// read and how failures are diagnosed.
type Parser struct {
	DiscourseLines int
	DebugRawStream bool
}

// Log sets the level of the structured logger.
type Log struct {
	Level string
}

// Metrics defines where Prometheus metrics are
// exposed. An empty address disables them.
type Metrics struct {
	PrometheusAddr string
}

// Constants

// DefaultDiscourseLines is the number of lines
// kept for failure diagnosis if none is configured.
const DefaultDiscourseLines = 64

// Functions

// Default returns the configuration used when no
// config file is supplied.
func Default() *Config {

	return &Config{
		Parser: Parser{
			DiscourseLines: DefaultDiscourseLines,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// LoadConfig takes in the path to a config file
// in TOML syntax and places the values from the
// file on top of the defaults.
func LoadConfig(configFile string) (*Config, error) {

	conf := Default()

	// Parse values from TOML file into struct.
	_, err := toml.DecodeFile(configFile, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read in TOML config file at '%s' with: %v", configFile, err)
	}

	if conf.Parser.DiscourseLines <= 0 {
		conf.Parser.DiscourseLines = DefaultDiscourseLines
	}

	switch strings.ToLower(conf.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("unknown log level '%s' in config file at '%s'", conf.Log.Level, configFile)
	}

	return conf, nil
}
