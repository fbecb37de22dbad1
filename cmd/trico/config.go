package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/meigma/trico"
	"github.com/meigma/trico/internal/bytecodec"
)

// fileConfig is the YAML configuration accepted by -config. Flags given on
// the command line override it.
type fileConfig struct {
	Codec          string `yaml:"codec"`
	FloatHashBits  []uint `yaml:"float_hash_bits"`
	DoubleHashBits []uint `yaml:"double_hash_bits"`
	Concurrency    int    `yaml:"concurrency"`
	MaxElements    uint64 `yaml:"max_elements"`
	Double         bool   `yaml:"double"`
	SkipNormals    bool   `yaml:"skip_normals"`
	LogLevel       string `yaml:"log_level"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Codec:       bytecodec.NameLZ4,
		Concurrency: 1,
		LogLevel:    "info",
	}
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c *fileConfig) validate() error {
	if !bytecodec.Valid(c.Codec) {
		return fmt.Errorf("codec %q: want one of %v", c.Codec, bytecodec.Names())
	}
	if n := len(c.FloatHashBits); n != 0 && n != 2 {
		return fmt.Errorf("float_hash_bits: want 2 values, got %d", n)
	}
	if n := len(c.DoubleHashBits); n != 0 && n != 2 {
		return fmt.Errorf("double_hash_bits: want 2 values, got %d", n)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// options converts the configuration to archive options.
func (c *fileConfig) options(logger *slog.Logger) ([]trico.Option, error) {
	codec, err := bytecodec.ByName(c.Codec)
	if err != nil {
		return nil, err
	}
	opts := []trico.Option{
		trico.WithByteCodec(codec),
		trico.WithConcurrency(c.Concurrency),
		trico.WithMaxElements(c.MaxElements),
		trico.WithLogger(logger),
	}
	if len(c.FloatHashBits) == 2 {
		opts = append(opts, trico.WithFloatHashBits(c.FloatHashBits[0], c.FloatHashBits[1]))
	}
	if len(c.DoubleHashBits) == 2 {
		opts = append(opts, trico.WithDoubleHashBits(c.DoubleHashBits[0], c.DoubleHashBits[1]))
	}
	return opts, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log_level %q: want debug, info, warn or error", s)
	}
}
