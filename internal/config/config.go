package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/menta2k/photo-merge/pkg/compositor"
	"github.com/menta2k/photo-merge/pkg/types"
)

// Config holds the application configuration
type Config struct {
	Input  InputConfig  `json:"input"`
	Output OutputConfig `json:"output"`
	Batch  BatchConfig  `json:"batch"`
}

// InputConfig holds configuration for source discovery
type InputConfig struct {
	SupportedFormats []string `json:"supported_formats"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	DirName   string `json:"dir_name"`
	Prefix    string `json:"prefix"`
	Extension string `json:"extension"`
	Quality   int    `json:"quality"`
	Lossless  bool   `json:"lossless"`
}

// BatchConfig holds defaults for random pairing runs
type BatchConfig struct {
	Count  int    `json:"count"`
	Offset int    `json:"offset"`
	Seed   uint64 `json:"seed"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Input: InputConfig{
			SupportedFormats: []string{"jpg", "jpeg", "png", "bmp", "gif"},
		},
		Output: OutputConfig{
			DirName:   "output",
			Prefix:    "combined_",
			Extension: ".jpg",
			Quality:   90,
		},
		Batch: BatchConfig{
			Count: 5,
		},
	}
}

// LoadFromFile loads configuration from a JSON file.
// Fields missing from the file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Input.SupportedFormats) == 0 {
		return fmt.Errorf("input.supported_formats cannot be empty")
	}

	if c.Output.DirName == "" || strings.ContainsAny(c.Output.DirName, `/\`) {
		return fmt.Errorf("output.dir_name must be a single directory name")
	}

	if !strings.HasPrefix(c.Output.Extension, ".") || len(c.Output.Extension) < 2 {
		return fmt.Errorf("output.extension must start with a dot, got %q", c.Output.Extension)
	}

	if strings.ContainsAny(c.Output.Prefix, `/\`) {
		return fmt.Errorf("output.prefix cannot contain path separators")
	}

	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	if c.Batch.Count < 0 {
		return fmt.Errorf("batch.count cannot be negative")
	}

	if c.Batch.Offset < -compositor.CanvasHeight || c.Batch.Offset > compositor.CanvasHeight {
		return fmt.Errorf("batch.offset must be between %d and %d", -compositor.CanvasHeight, compositor.CanvasHeight)
	}

	return nil
}

// OutputOptions converts the output section for the batch driver
func (c *Config) OutputOptions() types.OutputOptions {
	return types.OutputOptions{
		DirName:   c.Output.DirName,
		Prefix:    c.Output.Prefix,
		Extension: c.Output.Extension,
		Quality:   c.Output.Quality,
		Lossless:  c.Output.Lossless,
	}
}

// BatchOptions converts the batch section for the batch driver
func (c *Config) BatchOptions() types.BatchOptions {
	return types.BatchOptions{
		Count:  c.Batch.Count,
		Offset: c.Batch.Offset,
		Seed:   c.Batch.Seed,
	}
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "photo-merge", "config.json")
}
