package formatter

import (
	"testing"
	"time"
)

func TestFormatViews(t *testing.T) {
	cases := []struct {
		views int64
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1K"},
		{1234, "1.2K"},
		{1500000, "1.5M"},
		{2000000, "2M"},
		{1400000000, "1.4B"},
	}

	for _, tc := range cases {
		if got := FormatViews(tc.views); got != tc.want {
			t.Errorf("FormatViews(%d) = %q, want %q", tc.views, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		iso  string
		want string
	}{
		{"PT3M33S", "3:33"},
		{"PT45S", "0:45"},
		{"PT1H2M3S", "1:02:03"},
		{"PT1H", "1:00:00"},
		{"", "0:00"},
		{"garbage", "0:00"},
	}

	for _, tc := range cases {
		if got := FormatDuration(tc.iso); got != tc.want {
			t.Errorf("FormatDuration(%q) = %q, want %q", tc.iso, got, tc.want)
		}
	}
}

func TestFormatDurationLong(t *testing.T) {
	cases := []struct {
		iso  string
		want string
	}{
		{"PT1H15M30S", "1h 15m 30s"},
		{"PT2M", "2m"},
		{"PT1H5S", "1h 5s"},
		{"", "0s"},
	}

	for _, tc := range cases {
		if got := FormatDurationLong(tc.iso); got != tc.want {
			t.Errorf("FormatDurationLong(%q) = %q, want %q", tc.iso, got, tc.want)
		}
	}
}

func TestSecondsToISO(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "PT0S"},
		{45, "PT45S"},
		{120, "PT2M"},
		{3723, "PT1H2M3S"},
		{3600, "PT1H"},
	}

	for _, tc := range cases {
		if got := SecondsToISO(tc.seconds); got != tc.want {
			t.Errorf("SecondsToISO(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatRelativeDate(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		t    time.Time
		want string
	}{
		{"same day", now.Add(-2 * time.Hour), "today"},
		{"one day", now.AddDate(0, 0, -1), "yesterday"},
		{"five days", now.AddDate(0, 0, -5), "5 days ago"},
		{"five weeks", now.AddDate(0, 0, -35), "1 month ago"},
		{"three months", now.AddDate(0, 0, -90), "3 months ago"},
		{"two years", time.Date(2022, 6, 15, 12, 0, 0, 0, time.UTC), "2022-06-15"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatRelativeDate(tc.t, now); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
