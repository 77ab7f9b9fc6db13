package repository

import (
	"context"
	"time"

	"schedule-proposer/internal/schedule"
)

// BusySource reads the occupied periods of a calendar.
type BusySource interface {
	// ListBusy returns the busy intervals in [from, to). All-day events are expanded to the
	// policy's working hours of each covered day.
	ListBusy(ctx context.Context, from, to time.Time, policy schedule.WorkingHoursPolicy) ([]schedule.BusyInterval, error)
}
