package models

import (
	"encoding/json"
	"testing"
)

// TestIsValidIcon tests the fixed icon vocabulary
func TestIsValidIcon(t *testing.T) {
	tests := []struct {
		icon string
		want bool
	}{
		{"temperature-high", true},
		{"droplet", true},
		{"ban", true},
		{"", false},
		{"Temperature-High", false},
		{"made-up-icon", false},
	}

	for _, tt := range tests {
		if got := IsValidIcon(tt.icon); got != tt.want {
			t.Errorf("IsValidIcon(%q) = %v, want %v", tt.icon, got, tt.want)
		}
	}
}

// TestFallbackConsequences tests the static degraded-mode content
func TestFallbackConsequences(t *testing.T) {
	fallback := FallbackConsequences()

	if len(fallback) != ConsequenceCount {
		t.Fatalf("len(fallback) = %d, want %d", len(fallback), ConsequenceCount)
	}

	for i, rec := range fallback {
		if rec.Description == "" {
			t.Errorf("fallback[%d] has empty description", i)
		}
		if rec.ImpactLevel < 1 || rec.ImpactLevel > 5 {
			t.Errorf("fallback[%d].ImpactLevel = %d, out of range", i, rec.ImpactLevel)
		}
		if !IsValidIcon(rec.Icon) {
			t.Errorf("fallback[%d].Icon = %q, not in the vocabulary", i, rec.Icon)
		}
	}
}

// TestConsequenceRecord_JSONKeys tests the wire field names
func TestConsequenceRecord_JSONKeys(t *testing.T) {
	data, err := json.Marshal(ConsequenceRecord{
		Description: "x",
		ImpactLevel: 4,
		Icon:        "fire",
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"description":"x","impact_level":4,"icon":"fire"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

// TestFillerConsequence tests the padding record
func TestFillerConsequence(t *testing.T) {
	filler := FillerConsequence()

	if filler.Description == "" {
		t.Error("filler description must not be empty")
	}
	if !IsValidIcon(filler.Icon) {
		t.Errorf("filler icon %q not in the vocabulary", filler.Icon)
	}
}
