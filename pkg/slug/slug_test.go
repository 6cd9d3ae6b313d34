// Copyright (c) 2026 Niramaya. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/niramaya/api/pkg/slug"
)

/*
TestFrom verifies the full transformation pipeline: accent removal,
lowercasing, punctuation folding, and hyphen cleanup.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain words", "General Support", "general-support"},
		{"punctuation folds", "Anxiety & Stress Support", "anxiety-stress-support"},
		{"accents stripped", "Café Récovery", "cafe-recovery"},
		{"leading and trailing junk", "  --Hello World!--  ", "hello-world"},
		{"digits kept", "Sleep 101", "sleep-101"},
		{"already a slug", "mindful-living", "mindful-living"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
