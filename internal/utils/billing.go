package utils

import (
	"math"
	"time"
)

// BillableHours returns the fractional hours between start and end,
// with a minimum charge of one full hour. Booking and immediately
// releasing a spot therefore costs exactly one hour at the snapshot
// rate.
func BillableHours(start, end time.Time) float64 {
	hours := end.Sub(start).Hours()
	if hours < 1 {
		return 1
	}
	return hours
}

// TotalCost computes the charge for a stay: billable hours times the
// hourly rate captured at booking time, rounded to two decimal places.
func TotalCost(start, end time.Time, ratePerHour float64) float64 {
	return math.Round(BillableHours(start, end)*ratePerHour*100) / 100
}
