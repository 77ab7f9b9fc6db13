package schedule

import "context"

// UseCase defines the business logic interface for the schedule domain.
type UseCase interface {
	// Propose extracts date/time suggestions from the input text, reconciles them with the
	// calendar and the working-hours policy and returns the decision.
	Propose(ctx context.Context, input ProposeInput) (ProposeOutput, error)

	// AvailableSlots lists every free slot inside the horizon as formatted strings.
	AvailableSlots(ctx context.Context) (AvailableSlotsOutput, error)

	// IsScheduleRelated reports whether a message is about arranging a meeting.
	IsScheduleRelated(subject, body string) bool
}
