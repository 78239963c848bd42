package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineM(t *testing.T) {
	// One degree of latitude is ~111.2 km everywhere.
	assert.InDelta(t, 111194.9, HaversineM(13.0, 80.2, 14.0, 80.2), 10)

	// Zero distance to itself.
	assert.Zero(t, HaversineM(13.06, 80.24, 13.06, 80.24))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 1))
	assert.Equal(t, 1.0, Clamp(7, 0, 1))
	assert.Equal(t, 0.4, Clamp(0.4, 0, 1))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.23, RoundTo(1.2345, 2))
	assert.Equal(t, -7.1, RoundTo(-7.05, 1))
	assert.Equal(t, 100.0, RoundTo(99.999, 1))
}
