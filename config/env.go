package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Structs

// Env holds information specific to the
// system the parser runs on. This enables
// host adaptions without needing to maintain
// two different config files.
type Env struct {
	LogLevel       string
	PrometheusAddr string
}

// Functions

// LoadEnv reads in the supplied .env file and
// picks up all values relevant to us.
func LoadEnv(envFile string) (*Env, error) {

	// Load environment file.
	err := godotenv.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read in .env file at '%s' with: %v", envFile, err)
	}

	env := new(Env)

	// Fill variables from .env into struct.
	env.LogLevel = os.Getenv("IEMAIL_LOGLEVEL")
	env.PrometheusAddr = os.Getenv("IEMAIL_PROMETHEUS_ADDR")

	return env, nil
}

// Apply overrides the values of conf with all
// non-empty values of the environment.
func (env *Env) Apply(conf *Config) {

	if env.LogLevel != "" {
		conf.Log.Level = env.LogLevel
	}

	if env.PrometheusAddr != "" {
		conf.Metrics.PrometheusAddr = env.PrometheusAddr
	}
}
