package config

import (
	"fmt"
	"os"
	"strconv"

	"gotost/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Test  TestConfig
	Paths PathConfig
}

// TestConfig holds default test parameters
type TestConfig struct {
	Alpha float64
}

// PathConfig holds file system paths
type PathConfig struct {
	DataFile  string
	OutputDir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Test: TestConfig{
			Alpha: 0.05,
		},
		Paths: PathConfig{
			DataFile:  os.Getenv("TOST_DATA_FILE"),
			OutputDir: getEnvOrDefault("TOST_OUTPUT_DIR", "out"),
		},
	}

	if alphaStr := os.Getenv("TOST_ALPHA"); alphaStr != "" {
		alpha, err := strconv.ParseFloat(alphaStr, 64)
		if err != nil {
			return nil, errors.ConfigInvalid(fmt.Sprintf("TOST_ALPHA is not a number: %q", alphaStr))
		}
		config.Test.Alpha = alpha
	}

	if err := validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validate(config *Config) error {
	if !(config.Test.Alpha > 0 && config.Test.Alpha < 1) {
		return errors.ConfigInvalid(fmt.Sprintf("TOST_ALPHA must be in (0, 1), got %g", config.Test.Alpha))
	}
	if config.Paths.OutputDir == "" {
		return errors.ConfigInvalid("TOST_OUTPUT_DIR cannot be empty")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
