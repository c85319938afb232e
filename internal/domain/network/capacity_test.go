package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOccupancyPercent(t *testing.T) {
	assert.Equal(t, 0, OccupancyPercent(0, 16))
	assert.Equal(t, 50, OccupancyPercent(8, 16))
	assert.Equal(t, 100, OccupancyPercent(16, 16))
	// Rounding, not truncation.
	assert.Equal(t, 33, OccupancyPercent(1, 3))
	assert.Equal(t, 67, OccupancyPercent(2, 3))
	// Degenerate totals never divide by zero.
	assert.Equal(t, 0, OccupancyPercent(5, 0))
}

func TestCapacityReport(t *testing.T) {
	t.Run("saturated at full occupancy", func(t *testing.T) {
		r := CapacityReport{TotalPorts: 8, OccupiedPorts: 8, Percent: 100}
		assert.True(t, r.Saturated())
		assert.False(t, r.NearSaturation())
	})

	t.Run("near saturation at threshold", func(t *testing.T) {
		r := CapacityReport{TotalPorts: 10, OccupiedPorts: 8, Percent: 80}
		assert.False(t, r.Saturated())
		assert.True(t, r.NearSaturation())
	})

	t.Run("below threshold is neither", func(t *testing.T) {
		r := CapacityReport{TotalPorts: 10, OccupiedPorts: 7, Percent: 70}
		assert.False(t, r.Saturated())
		assert.False(t, r.NearSaturation())
	})
}
