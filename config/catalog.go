// Package config loads the model catalog that drives the chat page's
// model, temperature, and max-tokens controls.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/csv610/dialectica/providers"
)

// Catalog describes the selectable models and the bounds the presentation
// layer enforces on generation parameters.
type Catalog struct {
	Models   []ModelOption `yaml:"models" json:"models"`
	Defaults Defaults      `yaml:"defaults" json:"defaults"`
	Limits   Limits        `yaml:"limits" json:"limits"`
}

// ModelOption is one entry in the model select.
type ModelOption struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Defaults seed the controls for a fresh session.
type Defaults struct {
	Model       string  `yaml:"model" json:"model"`
	Temperature float64 `yaml:"temperature" json:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" json:"max_tokens"`
}

// Limits bound what the controls accept.
type Limits struct {
	TemperatureMin float64 `yaml:"temperature_min" json:"temperature_min"`
	TemperatureMax float64 `yaml:"temperature_max" json:"temperature_max"`
	MaxTokensMin   int     `yaml:"max_tokens_min" json:"max_tokens_min"`
	MaxTokensMax   int     `yaml:"max_tokens_max" json:"max_tokens_max"`
}

// DefaultCatalog is what runs when no models.yaml is present: the two
// local llama tags with the usual slider bounds.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Models: []ModelOption{
			{ID: "llama3.2", Name: "Llama 3.2"},
			{ID: "llama3.1", Name: "Llama 3.1"},
		},
		Defaults: Defaults{
			Model:       "llama3.2",
			Temperature: 0.8,
			MaxTokens:   4000,
		},
		Limits: Limits{
			TemperatureMin: 0.1,
			TemperatureMax: 1.0,
			MaxTokensMin:   1,
			MaxTokensMax:   4096,
		},
	}
}

// LoadCatalog reads the YAML catalog at path, expanding ${VAR} and
// ${VAR:-default} references first. A missing file yields DefaultCatalog;
// a malformed one is an error.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultCatalog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	catalog := DefaultCatalog()
	if err := yaml.Unmarshal([]byte(expandEnv(string(data))), catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := catalog.validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return catalog, nil
}

func (c *Catalog) validate() error {
	if len(c.Models) == 0 {
		return fmt.Errorf("no models listed")
	}
	for _, m := range c.Models {
		if m.ID == "" {
			return fmt.Errorf("model with empty id")
		}
	}
	if !c.HasModel(c.Defaults.Model) {
		return fmt.Errorf("default model %q not in catalog", c.Defaults.Model)
	}
	if c.Limits.TemperatureMin > c.Limits.TemperatureMax {
		return fmt.Errorf("temperature limits inverted")
	}
	if c.Limits.MaxTokensMin > c.Limits.MaxTokensMax {
		return fmt.Errorf("max_tokens limits inverted")
	}
	return nil
}

// HasModel reports whether id is listed.
func (c *Catalog) HasModel(id string) bool {
	for _, m := range c.Models {
		if m.ID == id {
			return true
		}
	}
	return false
}

// ModelName returns the display name for id, falling back to the id itself.
func (c *Catalog) ModelName(id string) string {
	for _, m := range c.Models {
		if m.ID == id {
			if m.Name != "" {
				return m.Name
			}
			break
		}
	}
	return id
}

// Clamp forces cfg onto a listed model and inside the catalog's limits.
func (c *Catalog) Clamp(cfg providers.Config) providers.Config {
	if !c.HasModel(cfg.Model) {
		cfg.Model = c.Defaults.Model
	}
	if cfg.Temperature < c.Limits.TemperatureMin {
		cfg.Temperature = c.Limits.TemperatureMin
	}
	if cfg.Temperature > c.Limits.TemperatureMax {
		cfg.Temperature = c.Limits.TemperatureMax
	}
	if cfg.MaxTokens < c.Limits.MaxTokensMin {
		cfg.MaxTokens = c.Limits.MaxTokensMin
	}
	if cfg.MaxTokens > c.Limits.MaxTokensMax {
		cfg.MaxTokens = c.Limits.MaxTokensMax
	}
	return cfg
}

// DefaultConfig is the generation tuple a fresh session starts with.
func (c *Catalog) DefaultConfig() providers.Config {
	return providers.Config{
		Model:       c.Defaults.Model,
		Temperature: c.Defaults.Temperature,
		MaxTokens:   c.Defaults.MaxTokens,
	}
}

// expandEnv expands environment variables in a string, handling default
// values like ${VAR:-default}.
func expandEnv(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":-", 2)
		value := os.Getenv(parts[0])
		if value == "" && len(parts) > 1 {
			return parts[1]
		}
		return value
	})
}
