package domain

import "time"

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentUpcoming  AppointmentStatus = "upcoming"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// FirstAppointmentNumber is the floor for the per-store ticket counter.
// Numbers are allocated as max(existing)+1 and never reused.
const FirstAppointmentNumber = 1001

type ServiceLine struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"` // minutes
}

type Appointment struct {
	ID                int64             `json:"id"`
	Code              string            `json:"code"`
	AppointmentNumber int64             `json:"appointment_number"`
	BarberID          int64             `json:"barber_id"`
	CustomerID        *int64            `json:"customer_id,omitempty"`
	CustomerName      string            `json:"customer_name"`
	Services          []ServiceLine     `json:"services" gorm:"type:json"`
	Date              time.Time         `json:"date"`
	TimeLabel         string            `json:"time"`
	Status            AppointmentStatus `json:"status"`
	WalkIn            bool              `json:"walk_in"`
	TotalPrice        float64           `json:"total_price"`
	TotalDuration     int               `json:"total_duration"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	CancelledAt       *time.Time        `json:"cancelled_at,omitempty"`
}

// Active reports whether the appointment still occupies a queue slot.
func (a *Appointment) Active() bool {
	return a.Status != AppointmentCompleted && a.Status != AppointmentCancelled
}
