package timecalc_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/trivial-time-client/internal/timecalc"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{90, "1m"},
		{3600, "1h 0m"},
		{3661, "1h 1m"},
		{5400, "1h 30m"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDuration(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatDurationHHMMSS(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00:00"},
		{61, "00:01:01"},
		{3661, "01:01:01"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDurationHHMMSS(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDurationHHMMSS(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestWeek(t *testing.T) {
	// 2026-02-27 is a Friday (week 9).
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	week := timecalc.Week(fri)

	wantMonday := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
	wantNextMonday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	if !week.From.Equal(wantMonday) {
		t.Errorf("Week from = %v, want %v", week.From, wantMonday)
	}
	if !week.To.Equal(wantNextMonday) {
		t.Errorf("Week to = %v, want %v", week.To, wantNextMonday)
	}

	sun := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	if got := timecalc.Week(sun); !got.From.Equal(wantMonday) {
		t.Errorf("Week(sunday) from = %v, want %v", got.From, wantMonday)
	}
}

func TestDayAndMonth(t *testing.T) {
	ts := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)

	day := timecalc.Day(ts)
	if !day.From.Equal(time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)) || !day.To.Equal(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Day = %v – %v", day.From, day.To)
	}

	month := timecalc.Month(ts)
	if !month.From.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) || !month.To.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Month = %v – %v", month.From, month.To)
	}
}

func TestRangeOverlap(t *testing.T) {
	r := timecalc.Day(time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC))
	at := func(day, hour int) time.Time { return time.Date(2026, 2, day, hour, 0, 0, 0, time.UTC) }

	tests := []struct {
		name       string
		start, end time.Time
		want       time.Duration
	}{
		{"inside", at(27, 9), at(27, 11), 2 * time.Hour},
		{"crosses start", at(26, 22), at(27, 1), time.Hour},
		{"crosses end", at(27, 23), at(28, 2), time.Hour},
		{"before", at(26, 1), at(26, 2), 0},
		{"after", at(28, 1), at(28, 2), 0},
		{"inverted", at(27, 5), at(27, 4), 0},
	}
	for _, tt := range tests {
		if got := r.Overlap(tt.start, tt.end); got != tt.want {
			t.Errorf("%s: Overlap = %v, want %v", tt.name, got, tt.want)
		}
	}
	if !r.Contains(at(27, 0)) || r.Contains(at(28, 0)) {
		t.Error("Contains must be half-open")
	}
}

func TestISOWeekLabel(t *testing.T) {
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	got := timecalc.ISOWeekLabel(fri)
	if got != "2026-W09" {
		t.Errorf("ISOWeekLabel = %q, want %q", got, "2026-W09")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	b := time.Date(2026, 2, 27, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	if !timecalc.SameDay(a, b) {
		t.Error("SameDay: expected same day for a and b")
	}
	if timecalc.SameDay(a, c) {
		t.Error("SameDay: expected different day for a and c")
	}
}
