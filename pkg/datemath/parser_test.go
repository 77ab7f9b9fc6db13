package datemath_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedule-proposer/pkg/datemath"
)

func newTestParser(t *testing.T) (*datemath.Parser, datemath.Clock) {
	t.Helper()
	p, err := datemath.NewParser("Asia/Tokyo")
	require.NoError(t, err)
	// Monday, May 6, 2024 09:00 JST
	clock := p.Clock(time.Date(2024, 5, 6, 9, 0, 0, 0, p.Location()))
	return p, clock
}

func TestNewParser(t *testing.T) {
	_, err := datemath.NewParser("Asia/Tokyo")
	require.NoError(t, err)

	_, err = datemath.NewParser("Invalid/Timezone")
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	p, clock := newTestParser(t)

	tests := []struct {
		name      string
		raw       string
		wantNil   bool
		wantYear  int
		wantMonth int
		wantDay   int
		wantWday  int
		wantTime  bool
		wantStart string
		wantEnd   string
	}{
		{name: "full date with range", raw: "2024年5月10日 19:00-20:00", wantYear: 2024, wantMonth: 5, wantDay: 10, wantWday: 4, wantTime: true, wantStart: "19:00", wantEnd: "20:00"},
		{name: "partial date with wave dash range", raw: "5月10日(金) 21:00〜23:00", wantYear: 2024, wantMonth: 5, wantDay: 10, wantWday: 4, wantTime: true, wantStart: "21:00", wantEnd: "23:00"},
		{name: "slash date with kanji range", raw: "5/10 19時〜21時", wantYear: 2024, wantMonth: 5, wantDay: 10, wantWday: 4, wantTime: true, wantStart: "19:00", wantEnd: "21:00"},
		{name: "pm single time", raw: "5月10日 午後2時", wantYear: 2024, wantMonth: 5, wantDay: 10, wantWday: 4, wantTime: true, wantStart: "14:00", wantEnd: "15:00"},
		{name: "pm marker carries to end", raw: "5月10日 午後2時〜4時", wantYear: 2024, wantMonth: 5, wantDay: 10, wantWday: 4, wantTime: true, wantStart: "14:00", wantEnd: "16:00"},
		{name: "am to pm", raw: "5月10日 午前10時〜午後2時", wantYear: 2024, wantMonth: 5, wantDay: 10, wantWday: 4, wantTime: true, wantStart: "10:00", wantEnd: "14:00"},
		{name: "english pm range", raw: "5月10日 1-3pm", wantYear: 2024, wantMonth: 5, wantDay: 10, wantWday: 4, wantTime: true, wantStart: "13:00", wantEnd: "15:00"},
		{name: "half hour", raw: "5月10日 19時半", wantYear: 2024, wantMonth: 5, wantDay: 10, wantWday: 4, wantTime: true, wantStart: "19:30", wantEnd: "20:30"},
		{name: "english am single", raw: "12/25 10:00am", wantYear: 2024, wantMonth: 12, wantDay: 25, wantWday: 2, wantTime: true, wantStart: "10:00", wantEnd: "11:00"},
		{name: "full width digits", raw: "５月１０日 １９：００", wantYear: 2024, wantMonth: 5, wantDay: 10, wantWday: 4, wantTime: true, wantStart: "19:00", wantEnd: "20:00"},
		{name: "date only", raw: "5月10日", wantYear: 2024, wantMonth: 5, wantDay: 10, wantWday: 4},
		{name: "weekday from text is ignored", raw: "5月10日(月)", wantYear: 2024, wantMonth: 5, wantDay: 10, wantWday: 4},
		{name: "invalid time degrades to date only", raw: "5月10日 25:00", wantYear: 2024, wantMonth: 5, wantDay: 10, wantWday: 4},
		{name: "no date", raw: "明日の夜", wantNil: true},
		{name: "slash glued to trailing digit", raw: "5/100", wantNil: true},
		{name: "slash inside iso-like date", raw: "2024/5/10", wantNil: true},
		{name: "time glued to trailing digit is dropped", raw: "5月10日 19:001", wantYear: 2024, wantMonth: 5, wantDay: 10, wantWday: 4},
		{name: "impossible date", raw: "2月30日", wantNil: true},
		{name: "empty", raw: "   ", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := p.Parse(tt.raw, clock)
			if tt.wantNil {
				assert.Nil(t, s)
				return
			}
			require.NotNil(t, s)
			assert.Equal(t, tt.raw, s.OriginalText)
			assert.Equal(t, tt.wantYear, s.Year)
			assert.Equal(t, tt.wantMonth, s.Month)
			assert.Equal(t, tt.wantDay, s.Day)
			assert.Equal(t, tt.wantWday, s.Weekday)
			assert.Equal(t, tt.wantTime, s.HasTime)
			if tt.wantTime {
				assert.Equal(t, tt.wantStart, s.Start.Format("15:04"))
				assert.Equal(t, tt.wantEnd, s.End.Format("15:04"))
			}
		})
	}
}

func TestParse_OvernightRange(t *testing.T) {
	p, clock := newTestParser(t)

	s := p.Parse("5月10日 23:00-1:00", clock)
	require.NotNil(t, s)
	require.True(t, s.HasTime)
	assert.Equal(t, 2*time.Hour, s.End.Sub(s.Start))
}

func TestParseAll_DropsFailuresAndDuplicates(t *testing.T) {
	p, clock := newTestParser(t)

	got := p.ParseAll([]string{"5月10日", "2024年5月10日", "5月10日 19:00", "5/10 19:00", "bogus"}, clock)

	require.Len(t, got, 2)
	assert.False(t, got[0].HasTime)
	assert.True(t, got[1].HasTime)
	assert.Equal(t, "19:00", got[1].Start.Format("15:04"))
}
