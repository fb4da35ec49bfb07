// Package config provides YAML configuration parsing and validation for the
// go-blkid command. Configuration controls which probers run and which tag
// families are requested; device selection stays on the command line.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FilterMode selects how the Names/Usages lists are applied.
type FilterMode string

const (
	FilterModeNone    FilterMode = ""
	FilterModeOnlyIn  FilterMode = "only_in"
	FilterModeNotIn   FilterMode = "not_in"
)

var validFilterModes = map[FilterMode]struct{}{
	FilterModeNone:   {},
	FilterModeOnlyIn: {},
	FilterModeNotIn:  {},
}

// FilterConfig mirrors the session's name/usage filter controls (spec.md
// §4.3) so an operator can express a persistent filter policy in YAML
// instead of re-specifying it on every invocation.
type FilterConfig struct {
	// Mode is "only_in" or "not_in"; empty disables filtering altogether
	// (Names, Usages and Invert are then ignored).
	Mode FilterMode `yaml:"mode"`
	// Names lists prober names the mode applies to.
	Names []string `yaml:"names"`
	// Usages lists usage classes ("filesystem", "raid", "crypto", "other")
	// the mode applies to, independently of Names.
	Usages []string `yaml:"usages"`
	// Invert complements the resulting filter bitmap after Names/Usages are
	// applied.
	Invert bool `yaml:"invert"`
}

// RequestConfig mirrors the session's probe-request mask (spec.md §3).
// An empty list requests every tag family, matching New()'s default.
type RequestConfig struct {
	Tags []string `yaml:"tags"`
}

// Config is the root go-blkid configuration.
type Config struct {
	// Filter restricts which probers ProbeNext will consider.
	Filter FilterConfig `yaml:"filter"`
	// Request restricts which tag families probers are allowed to emit.
	Request RequestConfig `yaml:"request"`
}

// ParseFile reads the YAML file at path and validates the result.
func ParseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes and validates the configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	// An empty document decodes as io.EOF; it is the all-defaults config.
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("invalid configuration:\n  - %s", strings.Join(msgs, "\n  - "))
	}

	return &cfg, nil
}

var validTagNames = map[string]struct{}{
	"type": {}, "usage": {}, "label": {}, "label_raw": {},
	"uuid": {}, "uuid_raw": {}, "version": {},
}

var validUsageNames = map[string]struct{}{
	"filesystem": {}, "raid": {}, "crypto": {}, "other": {},
}

// Validate checks cfg for semantic errors and returns all of them at once.
func Validate(cfg *Config) []error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if _, ok := validFilterModes[cfg.Filter.Mode]; !ok {
		add("filter.mode %q is invalid; must be one of only_in, not_in, or empty", cfg.Filter.Mode)
	}
	if cfg.Filter.Mode != FilterModeNone && len(cfg.Filter.Names) == 0 && len(cfg.Filter.Usages) == 0 {
		add("filter.mode %q requires at least one of filter.names or filter.usages", cfg.Filter.Mode)
	}
	for i, u := range cfg.Filter.Usages {
		if _, ok := validUsageNames[strings.ToLower(u)]; !ok {
			add("filter.usages[%d] %q is invalid; must be one of filesystem, raid, crypto, other", i, u)
		}
	}
	for i, t := range cfg.Request.Tags {
		if _, ok := validTagNames[strings.ToLower(t)]; !ok {
			add("request.tags[%d] %q is invalid; must be one of type, usage, label, label_raw, uuid, uuid_raw, version", i, t)
		}
	}

	return errs
}
