package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultListenAddr = ":8080"
	DefaultBatchSize  = 32
	DefaultStorePath  = "embedpipe.db"
)

// Config holds the service configuration.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	StorePath  string `yaml:"store_path"`
	LogLevel   string `yaml:"log_level"`
	LogFile    string `yaml:"log_file"`

	// BatchSize is used when a backend does not advertise its own.
	BatchSize int `yaml:"default_batch_size"`

	// CacheSize bounds the embedding cache, 0 disables it.
	CacheSize int `yaml:"cache_size"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		ListenAddr: DefaultListenAddr,
		StorePath:  DefaultStorePath,
		LogLevel:   "info",
		BatchSize:  DefaultBatchSize,
	}
}

// FromFile reads a yaml configuration file and applies defaults for
// any field left unset.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	conf := &Config{}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if conf.ListenAddr == "" {
		conf.ListenAddr = DefaultListenAddr
	}
	if conf.StorePath == "" {
		conf.StorePath = DefaultStorePath
	}
	if conf.LogLevel == "" {
		conf.LogLevel = "info"
	}
	if conf.BatchSize <= 0 {
		conf.BatchSize = DefaultBatchSize
	}
	if conf.CacheSize < 0 {
		conf.CacheSize = 0
	}
	return conf, nil
}
