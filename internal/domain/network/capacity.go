package network

import "math"

// NearSaturationThreshold is the occupancy percentage at which a NAP is
// reported as near saturation by the capacity scan.
const NearSaturationThreshold = 80

// OccupancyPercent computes the rounded occupancy percentage of a NAP.
func OccupancyPercent(occupied, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(occupied) / float64(total) * 100))
}

// CapacityReport is the derived occupancy view of a single NAP.
type CapacityReport struct {
	NAPID         uint
	Code          string
	TotalPorts    int
	OccupiedPorts int
	Percent       int
}

// Saturated reports whether every port of the NAP is occupied.
func (r CapacityReport) Saturated() bool {
	return r.TotalPorts > 0 && r.OccupiedPorts >= r.TotalPorts
}

// NearSaturation reports whether occupancy is at or above the warning
// threshold but below 100%.
func (r CapacityReport) NearSaturation() bool {
	return !r.Saturated() && r.Percent >= NearSaturationThreshold
}
