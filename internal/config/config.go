// Package config loads the optional render.yaml override file, following
// the project's established account-store YAML pattern.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eslider/mimejson/internal/render"
)

// SanitizerOverrides lets an operator widen or narrow the sanitizer's
// allow-lists without a code change. A nil/empty slice leaves the built-in
// default for that list untouched.
type SanitizerOverrides struct {
	PermittedTags       []string `yaml:"permitted_tags,omitempty"`
	PermittedAttributes []string `yaml:"permitted_attributes,omitempty"`
	PermittedSchemes    []string `yaml:"permitted_schemes,omitempty"`
}

// Config is the top-level render.yaml shape.
type Config struct {
	Limits struct {
		MaxRecursionDepth     int `yaml:"max_recursion_depth"`
		MaxInlineDataURIBytes int `yaml:"max_inline_data_uri_bytes"`
		MaxPreviewLength      int `yaml:"max_preview_length"`
	} `yaml:"limits"`
	Sanitizer SanitizerOverrides `yaml:"sanitizer"`
}

// Load reads path if it exists and merges it over the built-in defaults.
// A missing file is not an error: the defaults apply untouched.
func Load(path string) (Config, render.Limits, error) {
	limits := render.DefaultLimits()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, limits, nil
		}
		return Config{}, limits, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, limits, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Limits.MaxRecursionDepth > 0 {
		limits.MaxRecursionDepth = cfg.Limits.MaxRecursionDepth
	}
	if cfg.Limits.MaxInlineDataURIBytes > 0 {
		limits.MaxInlineDataURIBytes = cfg.Limits.MaxInlineDataURIBytes
	}
	if cfg.Limits.MaxPreviewLength > 0 {
		limits.MaxPreviewLength = cfg.Limits.MaxPreviewLength
	}

	s := cfg.Sanitizer
	for _, list := range []*[]string{&s.PermittedTags, &s.PermittedAttributes, &s.PermittedSchemes} {
		if len(*list) == 0 {
			*list = nil
		}
	}
	render.ConfigureAllowLists(s.PermittedTags, s.PermittedAttributes, s.PermittedSchemes)

	return cfg, limits, nil
}

// Save writes cfg back to path as YAML, mirroring the account store's
// load/marshal round trip.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
