package queue

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"barberq/internal/domain"
)

// DefaultPerCustomerMinutes is the fixed per-customer service estimate used
// for wait-time projection.
const DefaultPerCustomerMinutes = 15

const (
	fallbackCustomerName = "Customer"
	fallbackServiceName  = "Haircut"
)

var clockLayouts = []string{"3:04 PM", "3:04PM", "15:04"}

// ParseClock converts a display clock label ("3:00 PM", "09:30", ...) into
// minutes since midnight. Unparseable or empty labels report ok=false; such
// entries sort to the front of the queue.
func ParseClock(label string) (int, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, false
	}

	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, strings.ToUpper(label)); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}
	return 0, false
}

// FormatWait renders a minute count as "N min" below an hour, otherwise
// "Hh" or "Hh Mm".
func FormatWait(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}

	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Derive computes the barber's active queue for one calendar day.
//
// The input is never mutated and the result is always a fresh slice: an empty
// or fully completed input yields an empty queue, not an error. Entries are
// ordered chronologically by parsed clock time (appointment number breaks
// ties), positions are contiguous from 1, the head entry is now-serving and
// every other entry is waiting.
func Derive(appointments []domain.Appointment, barberID int64, day time.Time, perCustomerMinutes int) []domain.QueueEntry {
	if perCustomerMinutes <= 0 {
		perCustomerMinutes = DefaultPerCustomerMinutes
	}

	type candidate struct {
		appt    domain.Appointment
		minutes int
	}

	active := make([]candidate, 0, len(appointments))
	for _, a := range appointments {
		if a.BarberID != barberID || !a.Active() || !sameDay(a.Date, day) {
			continue
		}
		minutes, _ := ParseClock(a.TimeLabel)
		active = append(active, candidate{appt: a, minutes: minutes})
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].minutes != active[j].minutes {
			return active[i].minutes < active[j].minutes
		}
		return active[i].appt.AppointmentNumber < active[j].appt.AppointmentNumber
	})

	entries := make([]domain.QueueEntry, 0, len(active))
	for i, c := range active {
		name := c.appt.CustomerName
		if name == "" {
			name = fallbackCustomerName
		}

		service := fallbackServiceName
		if len(c.appt.Services) > 0 && c.appt.Services[0].Name != "" {
			service = c.appt.Services[0].Name
		}

		status := domain.QueueWaiting
		if i == 0 {
			status = domain.QueueNowServing
		}

		entries = append(entries, domain.QueueEntry{
			AppointmentID:     c.appt.ID,
			Code:              c.appt.Code,
			AppointmentNumber: c.appt.AppointmentNumber,
			CustomerName:      name,
			ServiceName:       service,
			TimeLabel:         c.appt.TimeLabel,
			ClockMinutes:      c.minutes,
			Position:          i + 1,
			WaitEstimate:      FormatWait(i * perCustomerMinutes),
			QueueStatus:       status,
			WalkIn:            c.appt.WalkIn,
		})
	}
	return entries
}
