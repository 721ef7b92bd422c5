package ingest

import (
	"testing"
	"time"
)

func TestParseSeasonYears(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  SeasonYears
	}{
		{
			name:  "cross-year season",
			title: "2024-25 Men's Ice Hockey Schedule",
			want:  SeasonYears{First: 2024, Second: 2025},
		},
		{
			name:  "single-year season",
			title: "2024 Football Schedule",
			want:  SeasonYears{First: 2024},
		},
		{
			name:  "no year in title",
			title: "Schedule",
			want:  SeasonYears{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseSeasonYears(tt.title); got != tt.want {
				t.Errorf("ParseSeasonYears(%q) = %+v, want %+v", tt.title, got, tt.want)
			}
		})
	}
}

func TestInferGameYear(t *testing.T) {
	crossYear := SeasonYears{First: 2024, Second: 2025}

	tests := []struct {
		name  string
		date  string
		years SeasonYears
		want  int
	}{
		{name: "fall month uses first year", date: "Nov 12", years: crossYear, want: 2024},
		{name: "winter month uses second year", date: "Jan 15", years: crossYear, want: 2025},
		{name: "spring month uses second year", date: "Mar 3", years: crossYear, want: 2025},
		{name: "single-year season", date: "Sep 20", years: SeasonYears{First: 2024}, want: 2024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferGameYear(tt.date, tt.years); got != tt.want {
				t.Errorf("InferGameYear(%q, %+v) = %d, want %d", tt.date, tt.years, got, tt.want)
			}
		})
	}
}

func TestStripWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jan 15 (Sat)", "Jan 15"},
		{"(Sat) Jan 15", "Jan 15"},
		{"Jan 15", "Jan 15"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StripWeekday(tt.in); got != tt.want {
			t.Errorf("StripWeekday(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseTimeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"7:00 p.m.", "7:00 PM"},
		{"7:00 PM", "7:00 PM"},
		{"7 pm", "7:00 PM"},
		{"11:00 AM", "11:00 AM"},
		{"19:30", "7:30 PM"},
		{"7:30", "7:30 PM"},
		{"noon-ish", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ParseTimeString(tt.in); got != tt.want {
			t.Errorf("ParseTimeString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConvertToUTC(t *testing.T) {
	eastern, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load eastern timezone: %v", err)
	}

	tests := []struct {
		name string
		date string
		time string
		want *time.Time
	}{
		{
			name: "winter evening game crosses to next UTC day",
			date: "Jan 15 2025",
			time: "7:00 PM",
			want: timePtr(time.Date(2025, time.January, 16, 0, 0, 0, 0, time.UTC)),
		},
		{
			name: "no time defaults to local midnight",
			date: "Jan 15 2025",
			time: "",
			want: timePtr(time.Date(2025, time.January, 15, 5, 0, 0, 0, time.UTC)),
		},
		{
			name: "daylight saving offset",
			date: "Sep 20 2024",
			time: "1:00 PM",
			want: timePtr(time.Date(2024, time.September, 20, 17, 0, 0, 0, time.UTC)),
		},
		{
			name: "unparseable date",
			date: "sometime soon",
			time: "7:00 PM",
			want: nil,
		},
		{
			name: "empty date",
			date: "",
			time: "7:00 PM",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertToUTC(tt.date, tt.time, eastern)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ConvertToUTC(%q, %q) = %v, want %v", tt.date, tt.time, got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("ConvertToUTC(%q, %q) = %v, want %v", tt.date, tt.time, got, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
