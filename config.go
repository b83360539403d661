package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "gridclear.yaml"

// 单个输入最大字节数，超过视为错误
const defaultMaxInputBytes = 16 << 20

type Config struct {
	//代表占用格子的字符，只取第一个字节
	Marker string `yaml:"marker"`

	//同时处理的输入文件数
	Parallel int `yaml:"parallel"`

	MaxInputBytes int64 `yaml:"max_input_bytes"`

	Logging LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

func DefaultConfig() *Config {
	return &Config{
		Marker:        string(defaultMarker),
		Parallel:      1,
		MaxInputBytes: defaultMaxInputBytes,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig 读取 YAML 配置，文件不存在时使用默认值，最后应用环境变量。
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("GRIDCLEAR_MARKER"); v != "" {
		c.Marker = v
	}
	if v := os.Getenv("GRIDCLEAR_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("GRIDCLEAR_PARALLEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GRIDCLEAR_PARALLEL: %w", err)
		}
		c.Parallel = n
	}
	return nil
}

func (c *Config) Validate() error {
	if len(c.Marker) != 1 {
		return fmt.Errorf("marker must be a single byte, got %q", c.Marker)
	}
	if c.Marker[0] == '\n' || c.Marker[0] == '\r' {
		return fmt.Errorf("marker cannot be a line break")
	}
	if c.Parallel < 1 {
		return fmt.Errorf("parallel must >= 1, got %d", c.Parallel)
	}
	if c.MaxInputBytes <= 0 {
		return fmt.Errorf("max_input_bytes must > 0, got %d", c.MaxInputBytes)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) MarkerByte() byte {
	return c.Marker[0]
}
