package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	// identical points
	assert.Zero(t, HaversineKm(0, 0, 0, 0))
	assert.Zero(t, HaversineKm(-6.2, 106.8167, -6.2, 106.8167))

	// antipodal points are half the Earth's circumference apart
	assert.InDelta(t, 20015.0, HaversineKm(0, 0, 0, 180), 5.0)
	assert.InDelta(t, 20015.0, HaversineKm(90, 0, -90, 0), 5.0)

	// Jakarta to Bandung is roughly 120 km
	distance := HaversineKm(-6.2000, 106.8167, -6.9147, 107.6098)
	assert.InDelta(t, 120.0, distance, 10.0)

	// symmetric in its arguments
	assert.InDelta(t, distance, HaversineKm(-6.9147, 107.6098, -6.2000, 106.8167), 0.0001)
}
