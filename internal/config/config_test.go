package config_test

import (
	"strings"
	"testing"

	"github.com/kzak/go-blkid/internal/config"
)

func TestParse_MinimalValid(t *testing.T) {
	yaml := `
filter:
  mode: only_in
  names:
    - ext4
    - xfs
request:
  tags:
    - uuid
    - label
`
	cfg, err := config.Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Filter.Mode != config.FilterModeOnlyIn {
		t.Fatalf("expected mode only_in, got %q", cfg.Filter.Mode)
	}
	if len(cfg.Filter.Names) != 2 {
		t.Fatalf("expected 2 names, got %d", len(cfg.Filter.Names))
	}
}

func TestParse_EmptyConfigIsValid(t *testing.T) {
	cfg, err := config.Parse([]byte(""))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Filter.Mode != config.FilterModeNone {
		t.Fatalf("expected empty mode, got %q", cfg.Filter.Mode)
	}
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	yaml := `
filter:
  modee: only_in
`
	_, err := config.Parse([]byte(yaml))
	if err == nil {
		t.Fatal("expected an error for an unrecognised field")
	}
}

func TestParse_ModeWithoutNamesOrUsagesRejected(t *testing.T) {
	yaml := `
filter:
  mode: only_in
`
	_, err := config.Parse([]byte(yaml))
	if err == nil {
		t.Fatal("expected an error for a mode with no names or usages")
	}
	if !strings.Contains(err.Error(), "requires at least one of") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestParse_InvalidUsageRejected(t *testing.T) {
	yaml := `
filter:
  mode: not_in
  usages:
    - nonsense
`
	_, err := config.Parse([]byte(yaml))
	if err == nil {
		t.Fatal("expected an error for an invalid usage class")
	}
}

func TestParse_InvalidRequestTagRejected(t *testing.T) {
	yaml := `
request:
  tags:
    - nonsense
`
	_, err := config.Parse([]byte(yaml))
	if err == nil {
		t.Fatal("expected an error for an invalid request tag")
	}
}

func TestParse_InvalidFilterModeRejected(t *testing.T) {
	yaml := `
filter:
  mode: sideways
  names:
    - ext4
`
	_, err := config.Parse([]byte(yaml))
	if err == nil {
		t.Fatal("expected an error for an invalid filter mode")
	}
}
