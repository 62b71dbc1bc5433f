package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRating_Mean(t *testing.T) {
	tests := []struct {
		name   string
		rating Rating
		want   float64
	}{
		{
			name:   "all fives",
			rating: Rating{ItemDescriptionAccuracy: 5, CommunicationSupport: 5, DeliverySpeed: 5, OverallExperience: 5},
			want:   5.0,
		},
		{
			name:   "mixed scores",
			rating: Rating{ItemDescriptionAccuracy: 5, CommunicationSupport: 4, DeliverySpeed: 3, OverallExperience: 4},
			want:   4.0,
		},
		{
			name:   "fractional mean",
			rating: Rating{ItemDescriptionAccuracy: 5, CommunicationSupport: 4, DeliverySpeed: 4, OverallExperience: 4},
			want:   4.25,
		},
		{
			name:   "all ones",
			rating: Rating{ItemDescriptionAccuracy: 1, CommunicationSupport: 1, DeliverySpeed: 1, OverallExperience: 1},
			want:   1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.rating.Mean(), 0.0001)
		})
	}
}

func TestIsValidScore(t *testing.T) {
	assert.False(t, IsValidScore(0))
	assert.True(t, IsValidScore(1))
	assert.True(t, IsValidScore(3))
	assert.True(t, IsValidScore(5))
	assert.False(t, IsValidScore(6))
	assert.False(t, IsValidScore(-1))
}
