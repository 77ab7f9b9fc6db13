package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"schedule-proposer/internal/schedule"
	"schedule-proposer/internal/schedule/repository"
	"schedule-proposer/pkg/datemath"
	"schedule-proposer/pkg/llmprovider"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

type mockBusySource struct {
	busy        []schedule.BusyInterval
	err         error
	calls       int
	hadDeadline bool
}

func (m *mockBusySource) ListBusy(ctx context.Context, from, to time.Time, policy schedule.WorkingHoursPolicy) ([]schedule.BusyInterval, error) {
	m.calls++
	_, m.hadDeadline = ctx.Deadline()
	return m.busy, m.err
}

type mockLLM struct {
	text  string
	err   error
	calls int
}

func (m *mockLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &llmprovider.Response{
		Content: llmprovider.Message{Role: "assistant", Parts: []llmprovider.Part{{Text: m.text}}},
		Usage:   &llmprovider.Usage{},
	}, nil
}

var errMock = errors.New("mock failure")

// Monday, May 6, 2024 09:00 JST.
func testNow(t *testing.T) time.Time {
	t.Helper()
	loc, err := datemath.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	return time.Date(2024, 5, 6, 9, 0, 0, 0, loc)
}

func testClock(t *testing.T) datemath.Clock {
	return datemath.NewClock(testNow(t))
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	parser, err := datemath.NewParser("Asia/Tokyo")
	require.NoError(t, err)
	return NewEngine(parser, datemath.NewExtractor(0), 0)
}

func slotAt(t *testing.T, month time.Month, day, hour, minute, durationMinutes int) schedule.Slot {
	t.Helper()
	loc := testNow(t).Location()
	date := time.Date(2024, month, day, 0, 0, 0, 0, loc)
	start := time.Date(2024, month, day, hour, minute, 0, 0, loc)
	return schedule.Slot{
		Date:    date,
		Weekday: datemath.MondayIndex(date),
		Start:   start,
		End:     start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

func newTestUseCase(t *testing.T, busy *mockBusySource, llm LLMGenerator) *implUseCase {
	t.Helper()
	var src repository.BusySource
	if busy != nil {
		src = busy
	}
	uc, err := New(&mockLogger{}, src, llm, nil, Config{
		Timezone: "Asia/Tokyo",
		Policy:   schedule.DefaultPolicy(),
	})
	require.NoError(t, err)
	now := testNow(t)
	uc.now = func() time.Time { return now }
	return uc
}
