package domain

import "time"

type QueueStatus string

const (
	QueueNowServing QueueStatus = "now-serving"
	QueueWaiting    QueueStatus = "waiting"
)

// QueueEntry is a derived, read-only view of one appointment inside a
// barber's active queue for a single day. Entries are recomputed on every
// derivation and never persisted.
type QueueEntry struct {
	AppointmentID     int64       `json:"appointment_id"`
	Code              string      `json:"code"`
	AppointmentNumber int64       `json:"appointment_number"`
	CustomerName      string      `json:"customer_name"`
	ServiceName       string      `json:"service_name"`
	TimeLabel         string      `json:"time"`
	ClockMinutes      int         `json:"clock_minutes"`
	Position          int         `json:"position"`
	WaitEstimate      string      `json:"wait_estimate"`
	QueueStatus       QueueStatus `json:"queue_status"`
	WalkIn            bool        `json:"walk_in"`
}

type StationStatus string

const (
	StationActive    StationStatus = "active"
	StationBreak     StationStatus = "break"
	StationEmergency StationStatus = "emergency"
)

// Station is the per-barber operational state, persisted so it survives
// session teardown and app restarts.
type Station struct {
	ID        int64         `json:"id"`
	BarberID  int64         `json:"barber_id"`
	Status    StationStatus `json:"status"`
	UpdatedAt time.Time     `json:"updated_at"`
}
