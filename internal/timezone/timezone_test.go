package timezone

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC), 0},
		{"backwards", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), -9},
		{"across spring forward", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 11, 0, 30, 0, 0, ny), 2},
		{"late evening local", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 23, 30, 0, 0, ny), 1},
		{"leap year", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Fatalf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLocationFallback(t *testing.T) {
	if got := Location("Not/AZone"); got == nil {
		t.Fatal("expected a fallback location")
	}
	if IsValid("") {
		t.Fatal("empty timezone must be invalid")
	}
}

func TestToday(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	clock := FixedClock{At: time.Date(2024, 1, 2, 22, 0, 0, 0, ny)}

	got := Today(clock)
	want, _ := ParseDate("2024-01-02")
	if !got.Equal(want) {
		t.Fatalf("Today = %v, want %v", got, want)
	}
}
