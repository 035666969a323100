package sim

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/simverse/simverse/internal/observability/log"
)

// Config holds session settings.
type Config struct {
	// ServerURL is the WebSocket endpoint of the remote API server.
	ServerURL string `yaml:"server_url"`

	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	LogLevel log.Level `yaml:"log_level"`
}

// DefaultConfig returns the default session settings.
func DefaultConfig() Config {
	return Config{
		ServerURL:    "ws://localhost:19997/api",
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Second,
		LogLevel:     log.LevelInfo,
	}
}

// LoadConfig reads a yaml config file, filling unset fields from the
// defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	return config, nil
}
