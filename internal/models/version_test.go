package models

import (
	"testing"
)

func TestTag(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1.2.3", "v1.2.3"},
		{"v1.2.3", "v1.2.3"},
		{" 1.2.3-rc0 ", "v1.2.3-rc0"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Tag(tt.input); got != tt.expected {
				t.Errorf("Tag(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name     string
		recorded string
		running  string
		expected bool
	}{
		{"newer major", "2.0.0", "1.0.0", true},
		{"newer patch", "1.0.1", "v1.0.0", true},
		{"same", "1.0.0", "1.0.0", false},
		{"older", "0.9.0", "1.0.0", false},
		{"release after prerelease", "1.0.0", "1.0.0-rc1", true},
		{"prerelease before release", "1.0.0-rc1", "1.0.0", false},
		{"invalid recorded", "dev", "1.0.0", false},
		{"invalid running", "1.0.0", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNewer(tt.recorded, tt.running); got != tt.expected {
				t.Errorf("IsNewer(%q, %q) = %v, want %v", tt.recorded, tt.running, got, tt.expected)
			}
		})
	}
}

func TestIsValidVersion(t *testing.T) {
	if !IsValidVersion(PluginVersion) {
		t.Fatalf("PluginVersion %q must be a semantic version", PluginVersion)
	}
	// shorthand major.minor is accepted
	if !IsValidVersion("9.3") {
		t.Errorf("IsValidVersion(%q) = false, want true", "9.3")
	}
	if IsValidVersion("not-a-version") {
		t.Errorf("IsValidVersion(%q) = true, want false", "not-a-version")
	}
}
