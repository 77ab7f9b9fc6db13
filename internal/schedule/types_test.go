package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"schedule-proposer/internal/schedule"
)

func TestWorkingHoursPolicy_Validate(t *testing.T) {
	valid := schedule.DefaultPolicy()
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(p *schedule.WorkingHoursPolicy)
	}{
		{"start after end", func(p *schedule.WorkingHoursPolicy) { p.StartHour = 23; p.EndHour = 18 }},
		{"hour out of range", func(p *schedule.WorkingHoursPolicy) { p.EndHour = 25 }},
		{"negative hour", func(p *schedule.WorkingHoursPolicy) { p.StartHour = -1 }},
		{"zero duration", func(p *schedule.WorkingHoursPolicy) { p.SlotDurationMinutes = 0 }},
		{"zero granularity", func(p *schedule.WorkingHoursPolicy) { p.SlotGranularityMinutes = 0 }},
		{"zero horizon", func(p *schedule.WorkingHoursPolicy) { p.HorizonDays = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := schedule.DefaultPolicy()
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), schedule.ErrInvalidPolicy)
		})
	}
}

func TestBusyInterval_Overlaps(t *testing.T) {
	base := time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)
	b := schedule.BusyInterval{Start: base.Add(19 * time.Hour), End: base.Add(20 * time.Hour)}

	assert.True(t, b.Overlaps(base.Add(18*time.Hour+30*time.Minute), base.Add(19*time.Hour+30*time.Minute)))
	assert.False(t, b.Overlaps(base.Add(18*time.Hour), base.Add(19*time.Hour)), "touching start is free")
	assert.False(t, b.Overlaps(base.Add(20*time.Hour), base.Add(21*time.Hour)), "touching end is free")
}

func TestExpandAllDay(t *testing.T) {
	loc := time.FixedZone("JST", 9*3600)
	policy := schedule.DefaultPolicy()

	t.Run("multi day", func(t *testing.T) {
		got := schedule.ExpandAllDay(
			time.Date(2024, 5, 8, 0, 0, 0, 0, loc),
			time.Date(2024, 5, 10, 0, 0, 0, 0, loc),
			policy,
		)
		if assert.Len(t, got, 2) {
			assert.True(t, got[0].Start.Equal(time.Date(2024, 5, 8, 18, 0, 0, 0, loc)))
			assert.True(t, got[0].End.Equal(time.Date(2024, 5, 8, 23, 0, 0, 0, loc)))
			assert.True(t, got[1].Start.Equal(time.Date(2024, 5, 9, 18, 0, 0, 0, loc)))
		}
	})

	t.Run("end equal to start is one day", func(t *testing.T) {
		day := time.Date(2024, 5, 8, 0, 0, 0, 0, loc)
		assert.Len(t, schedule.ExpandAllDay(day, day, policy), 1)
	})
}
