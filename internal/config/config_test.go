package config

import "testing"

func TestEnvIntDefaults(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		defaultVal int
		expected   int
	}{
		{"unset", "", 25, 25},
		{"valid", "10", 25, 10},
		{"invalid", "abc", 25, 25},
		{"negative", "-3", 25, 25},
		{"zero", "0", 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_ENV_INT", tt.value)
			}
			if got := envInt("TEST_ENV_INT", tt.defaultVal); got != tt.expected {
				t.Errorf("envInt(%q) = %d, want %d", tt.value, got, tt.expected)
			}
		})
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("TEST_ENV_BOOL", "false")
	if envBool("TEST_ENV_BOOL", true) {
		t.Error("expected false for explicit override")
	}
	if !envBool("TEST_ENV_BOOL_UNSET", true) {
		t.Error("expected default true when unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("expected default max open conns 25, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Embedding.Dim != 128 {
		t.Errorf("expected default embedding dim 128, got %d", cfg.Embedding.Dim)
	}
	if cfg.Web.Port != 8080 {
		t.Errorf("expected default web port 8080, got %d", cfg.Web.Port)
	}
}
