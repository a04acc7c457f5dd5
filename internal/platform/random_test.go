package platform

import (
	"strings"
	"testing"
)

func TestRandomString(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{name: "directory name length", length: 8},
		{name: "single letter", length: 1},
		{name: "whole alphabet", length: len(Letters)},
		{name: "longer than alphabet", length: 80},
		{name: "zero", length: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RandomString(tt.length)

			if len(result) != tt.length {
				t.Fatalf("expected length %d, got %d (%q)", tt.length, len(result), result)
			}

			for _, r := range result {
				if !strings.ContainsRune(Letters, r) {
					t.Errorf("unexpected character %q in %q", r, result)
				}
			}
		})
	}
}

func TestRandomString_NoRepeatsWithinAlphabet(t *testing.T) {
	result := RandomString(20)

	seen := make(map[rune]bool)
	for _, r := range result {
		if seen[r] {
			t.Fatalf("letter %q repeated in %q", r, result)
		}
		seen[r] = true
	}
}

func TestRandomString_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[RandomString(8)] = true
	}

	// 100 draws from ~3e13 possibilities; a collision here means the generator is broken
	if len(seen) < 99 {
		t.Errorf("expected distinct names, got %d unique out of 100", len(seen))
	}
}

func TestRandomString_Negative(t *testing.T) {
	if got := RandomString(-3); got != "" {
		t.Errorf("expected empty string for negative length, got %q", got)
	}
}
