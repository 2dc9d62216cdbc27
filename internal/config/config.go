// Package config loads bot-wide configuration from YAML.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/miskatonicsociety/keeperbot/internal/storage"
)

// Config holds bot-wide configuration settings.
type Config struct {
	Dice      DiceConfig        `yaml:"dice"`
	Server    ServerConfig      `yaml:"server"`
	Storage   storage.Config    `yaml:"storage"`
	Templates map[string]string `yaml:"templates"`
}

// DiceConfig holds roll and judgement settings.
type DiceConfig struct {
	// ShowDetail controls whether roll messages list each die.
	ShowDetail bool `yaml:"show_detail"`

	// SuccessThreshold is the d100 critical-success ceiling.
	SuccessThreshold int `yaml:"success_threshold"`

	// FailThreshold is the d100 critical-failure floor.
	FailThreshold int `yaml:"fail_threshold"`
}

// ServerConfig holds chat gateway settings.
type ServerConfig struct {
	// Addr is the listen address for the WebSocket gateway.
	Addr string `yaml:"addr"`

	// AllowedOrigins lists origins allowed to connect. "*" allows all.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DefaultConfig returns a Config with built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Dice: DiceConfig{
			ShowDetail:       true,
			SuccessThreshold: 5,
			FailThreshold:    96,
		},
		Server: ServerConfig{
			Addr:           ":8090",
			AllowedOrigins: []string{"*"},
		},
		Storage:   storage.DefaultConfig(),
		Templates: map[string]string{},
	}
}

// LoadConfig loads configuration from a YAML file. A missing file
// yields the defaults; a malformed file resets to defaults and returns
// the parse error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}
