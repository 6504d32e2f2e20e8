package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPercent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *float64
	}{
		{
			name:     "positive with sign and percent",
			input:    "+4.25%",
			expected: floatPtr(4.25),
		},
		{
			name:     "negative with percent",
			input:    "-1.5%",
			expected: floatPtr(-1.5),
		},
		{
			name:     "thousands separator",
			input:    "-1,203.5%",
			expected: floatPtr(-1203.5),
		},
		{
			name:     "bare number without percent",
			input:    "2.75",
			expected: floatPtr(2.75),
		},
		{
			name:     "surrounding whitespace",
			input:    "  3.1%  ",
			expected: floatPtr(3.1),
		},
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "dash placeholder",
			input:    "—",
			expected: nil,
		},
		{
			name:     "garbage text",
			input:    "N/A",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanPercent(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.expected, *got, 1e-9)
		})
	}
}

func TestCleanVolume(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *float64
	}{
		{
			name:     "thousands suffix",
			input:    "1.5K",
			expected: floatPtr(1500),
		},
		{
			name:     "millions suffix",
			input:    "1.5M",
			expected: floatPtr(1500000),
		},
		{
			name:     "billions suffix",
			input:    "2B",
			expected: floatPtr(2000000000),
		},
		{
			name:     "lowercase suffix",
			input:    "3.2m",
			expected: floatPtr(3200000),
		},
		{
			name:     "plain number",
			input:    "125000",
			expected: floatPtr(125000),
		},
		{
			name:     "number with commas",
			input:    "1,250,000",
			expected: floatPtr(1250000),
		},
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "suffix without number",
			input:    "M",
			expected: nil,
		},
		{
			name:     "garbage text",
			input:    "n/a",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanVolume(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.expected, *got, 1e-6)
		})
	}
}

func TestCleanRatio(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *float64
	}{
		{
			name:     "decimal ratio",
			input:    "2.35",
			expected: floatPtr(2.35),
		},
		{
			name:     "integer ratio",
			input:    "4",
			expected: floatPtr(4),
		},
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "not a number",
			input:    "high",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanRatio(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.expected, *got, 1e-9)
		})
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
