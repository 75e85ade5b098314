package domain

import "math"

// Hospitality metrics are computed from query results, never by the model.
// Both round to 2 decimal places for display.

// OccupancyRate returns occupied-nights over capacity as a percentage:
// (occupiedNights / (rooms * days)) * 100.
func OccupancyRate(occupiedNights float64, rooms, days int) float64 {
	capacity := float64(rooms * days)
	if capacity <= 0 {
		return 0
	}
	return round2(occupiedNights / capacity * 100)
}

// RevPAR returns revenue per available room: totalRevenue / (rooms * days).
func RevPAR(totalRevenue float64, rooms, days int) float64 {
	available := float64(rooms * days)
	if available <= 0 {
		return 0
	}
	return round2(totalRevenue / available)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
