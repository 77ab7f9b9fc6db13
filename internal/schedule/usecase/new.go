package usecase

import (
	"fmt"
	"strings"
	"time"

	"schedule-proposer/internal/schedule"
	"schedule-proposer/internal/schedule/repository"
	"schedule-proposer/pkg/datemath"
	pkgLog "schedule-proposer/pkg/log"
	"schedule-proposer/pkg/metrics"
)

const defaultCalendarTimeout = 10 * time.Second

// DefaultKeywords mark a message as being about arranging a meeting.
var DefaultKeywords = []string{
	"日程", "スケジュール", "予定", "空き時間", "都合", "面談", "面接", "打ち合わせ",
	"ミーティング", "会議", "訪問", "来社",
	"schedule", "meeting", "appointment", "interview", "visit",
}

type implUseCase struct {
	l               pkgLog.Logger
	busy            repository.BusySource
	llm             LLMGenerator
	metrics         *metrics.ScheduleMetrics
	engine          *Engine
	parser          *datemath.Parser
	policy          schedule.WorkingHoursPolicy
	calendarTimeout time.Duration
	keywords        []string
	now             func() time.Time
}

// New creates a new schedule UseCase instance. busy and llm may be nil: without a busy
// source every slot inside working hours is free, without llm the analysis step is skipped.
func New(
	l pkgLog.Logger,
	busy repository.BusySource,
	llm LLMGenerator,
	m *metrics.ScheduleMetrics,
	cfg Config,
) (*implUseCase, error) {
	if err := cfg.Policy.Validate(); err != nil {
		return nil, err
	}

	parser, err := datemath.NewParser(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("schedule usecase: %w", err)
	}

	timeout := cfg.CalendarTimeout
	if timeout <= 0 {
		timeout = defaultCalendarTimeout
	}

	keywords := cfg.Keywords
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}

	return &implUseCase{
		l:               l,
		busy:            busy,
		llm:             llm,
		metrics:         m,
		engine:          NewEngine(parser, datemath.NewExtractor(cfg.ProximityChars), cfg.MinOverlapMinutes),
		parser:          parser,
		policy:          cfg.Policy,
		calendarTimeout: timeout,
		keywords:        lowered,
		now:             time.Now,
	}, nil
}
