package usecase

import (
	"time"

	"schedule-proposer/internal/schedule"
	"schedule-proposer/pkg/datemath"
)

// Decision is the full output of one engine run.
type Decision struct {
	Result        schedule.MatchResult
	Outcome       schedule.Outcome
	Slots         []schedule.Slot
	RawCandidates []string
	Suggestions   []datemath.Suggestion
	Err           error // set only when a panic was recovered
}

// Config holds the tunables of the schedule use case.
type Config struct {
	Timezone          string
	Policy            schedule.WorkingHoursPolicy
	ProximityChars    int
	MinOverlapMinutes int
	CalendarTimeout   time.Duration
	Keywords          []string
}
