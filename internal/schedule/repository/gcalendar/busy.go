package gcalendar

import (
	"context"
	"fmt"
	"time"

	"schedule-proposer/internal/schedule"
	"schedule-proposer/internal/schedule/repository"
	pkgGCal "schedule-proposer/pkg/gcalendar"
)

// EventLister is the slice of the Google Calendar client the busy source needs.
type EventLister interface {
	ListEvents(ctx context.Context, req pkgGCal.ListEventsRequest) ([]pkgGCal.Event, error)
}

type implBusySource struct {
	client     EventLister
	calendarID string
	location   *time.Location
}

// New creates a BusySource reading one Google calendar. Times are reported in loc.
func New(client EventLister, calendarID string, loc *time.Location) repository.BusySource {
	return &implBusySource{
		client:     client,
		calendarID: calendarID,
		location:   loc,
	}
}

// ListBusy converts timed events as is and expands all-day events to the policy's working
// hours of every covered day.
func (s *implBusySource) ListBusy(ctx context.Context, from, to time.Time, policy schedule.WorkingHoursPolicy) ([]schedule.BusyInterval, error) {
	if s.client == nil {
		return nil, schedule.ErrNoBusySource
	}

	events, err := s.client.ListEvents(ctx, pkgGCal.ListEventsRequest{
		CalendarID: s.calendarID,
		TimeMin:    from,
		TimeMax:    to,
		Location:   s.location,
	})
	if err != nil {
		return nil, fmt.Errorf("gcalendar.ListBusy: %w", err)
	}

	busy := make([]schedule.BusyInterval, 0, len(events))
	for _, e := range events {
		if e.AllDay {
			busy = append(busy, schedule.ExpandAllDay(e.StartTime, e.EndTime, policy)...)
			continue
		}
		busy = append(busy, schedule.BusyInterval{
			Start: e.StartTime.In(s.location),
			End:   e.EndTime.In(s.location),
		})
	}
	return busy, nil
}
