package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBillableHoursMinimumOneHour(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	// Immediate release still bills a full hour.
	assert.Equal(t, 1.0, BillableHours(start, start))
	assert.Equal(t, 1.0, BillableHours(start, start.Add(5*time.Minute)))
	assert.Equal(t, 1.0, BillableHours(start, start.Add(59*time.Minute)))
}

func TestBillableHoursAboveOneHour(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 1.5, BillableHours(start, start.Add(90*time.Minute)))
	assert.Equal(t, 24.0, BillableHours(start, start.Add(24*time.Hour)))
}

func TestTotalCost(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	// Book then release right away: exactly one hour at the rate.
	assert.Equal(t, 10.0, TotalCost(start, start, 10.0))

	// 2h30m at 10/h
	assert.Equal(t, 25.0, TotalCost(start, start.Add(150*time.Minute), 10.0))

	// Fractional result rounds to two decimal places: 1h20m at 9.99/h.
	assert.Equal(t, 13.32, TotalCost(start, start.Add(80*time.Minute), 9.99))

	// Free lots charge nothing no matter the duration.
	assert.Equal(t, 0.0, TotalCost(start, start.Add(7*time.Hour), 0))
}
