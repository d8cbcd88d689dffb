// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationClosedEvent is published when a reservation is released
// and billed. It carries enough information for downstream consumers to
// log or feed billing without querying the primary database.
type ReservationClosedEvent struct {
	ReservationID uint64  `json:"reservation_id"`
	UserID        uint64  `json:"user_id"`
	Username      string  `json:"username"`
	SpotNumber    string  `json:"spot_number"`
	LotName       string  `json:"lot_name"`
	ParkedAt      string  `json:"parked_at"`
	LeftAt        string  `json:"left_at"`
	CostPerHour   float64 `json:"cost_per_hour"`
	TotalCost     float64 `json:"total_cost"`
}
