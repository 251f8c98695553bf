package pacing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRAGStatus(t *testing.T) {
	tests := []struct {
		name    string
		actual  float64
		goal    float64
		elapsed float64
		want    Status
	}{
		{"zero goal is NA", 5, 0, 50, NA},
		{"zero goal with no progress is NA", 0, 0, 0, NA},
		{"completion at 90 is green", 9, 10, 100, Green},
		{"on pace is green", 5, 10, 50, Green},
		{"progress before window opens is green", 1, 10, 0, Green},
		{"completion at 70 is yellow", 7, 10, 100, Yellow},
		{"pacing at 0.85 is yellow", 17, 40, 50, Yellow},
		{"behind pace is red", 2, 10, 60, Red},
		{"no progress no elapsed is red", 0, 10, 0, Red},
		{"completion just under 70 and off pace is red", 6.9, 10, 100, Red},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RAGStatus(tt.actual, tt.goal, tt.elapsed))
		})
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent float64
		length  int
		want    string
	}{
		{50, 10, "█████░░░░░"},
		{100, 10, "██████████"},
		{0, 10, "░░░░░░░░░░"},
		{25, 8, "██░░░░░░"},
		{150, 10, "██████████"},
		{-20, 10, "░░░░░░░░░░"},
		{50, 0, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressBar(tt.percent, tt.length), "percent=%v length=%d", tt.percent, tt.length)
	}
}
