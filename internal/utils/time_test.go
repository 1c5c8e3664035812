package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone America/New_York", timezone: "America/New_York", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}

	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{
			name: "same day",
			a:    time.Date(2024, 3, 1, 0, 5, 0, 0, ny),
			b:    time.Date(2024, 3, 1, 23, 55, 0, 0, ny),
			want: 0,
		},
		{
			name: "late night to early morning",
			a:    time.Date(2024, 3, 1, 23, 59, 0, 0, ny),
			b:    time.Date(2024, 3, 2, 0, 1, 0, 0, ny),
			want: 1,
		},
		{
			name: "across spring forward",
			a:    time.Date(2024, 3, 9, 12, 0, 0, 0, ny),
			b:    time.Date(2024, 3, 11, 0, 30, 0, 0, ny),
			want: 2,
		},
		{
			name: "across fall back",
			a:    time.Date(2024, 11, 2, 23, 0, 0, 0, ny),
			b:    time.Date(2024, 11, 3, 23, 30, 0, 0, ny),
			want: 1,
		},
		{
			name: "backwards",
			a:    time.Date(2024, 3, 5, 9, 0, 0, 0, ny),
			b:    time.Date(2024, 3, 3, 9, 0, 0, 0, ny),
			want: -2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b, ny); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDayBounds(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}

	// 2024-03-10 is 23 hours long in New York
	start, end := DayBounds(time.Date(2024, 3, 10, 15, 0, 0, 0, ny))
	if got := end.Sub(start); got != 23*time.Hour {
		t.Errorf("DayBounds() span = %v, want 23h", got)
	}
	if start.Hour() != 0 || end.Day() != 11 {
		t.Errorf("DayBounds() = [%v, %v)", start, end)
	}
}

func TestNextOccurrence(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	if got := NextOccurrence(now, 20, 0); !got.Equal(time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)) {
		t.Errorf("later today: got %v", got)
	}
	if got := NextOccurrence(now, 8, 0); !got.Equal(time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("already passed: got %v", got)
	}
	if got := NextOccurrence(now, 9, 30); !got.Equal(now) {
		t.Errorf("exactly now: got %v", got)
	}
}

func TestTimestampRoundTripKeepsOrder(t *testing.T) {
	a := time.Date(2024, 5, 1, 9, 30, 0, 5, time.UTC)
	b := time.Date(2024, 5, 1, 9, 30, 0, 400, time.UTC)

	sa, sb := FormatTimestamp(a), FormatTimestamp(b)
	if !(sa < sb) {
		t.Errorf("lexical order broken: %q >= %q", sa, sb)
	}

	parsed, err := ParseTimestamp(sa)
	if err != nil {
		t.Fatalf("ParseTimestamp() error = %v", err)
	}
	if !parsed.Equal(a) {
		t.Errorf("ParseTimestamp() = %v, want %v", parsed, a)
	}

	if _, err := ParseTimestamp("2024-05-01T09:30:00+02:00"); err != nil {
		t.Errorf("RFC3339 fallback failed: %v", err)
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{-5 * time.Second, "0:00"},
		{90 * time.Second, "1:30"},
		{61 * time.Minute, "1:01:00"},
	}
	for _, tt := range tests {
		if got := FormatRemaining(tt.in); got != tt.want {
			t.Errorf("FormatRemaining(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
