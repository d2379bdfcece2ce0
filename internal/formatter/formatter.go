// package formatter provides human-readable rendering of video fields
// (view counts, ISO-8601 durations, dates) for CLI output
package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/bmoreira/tubecrate/internal/sorting"
)

// FormatViews renders a view count compactly: 999 stays as-is, larger
// counts collapse to 1.2K / 3.4M / 1.1B.
func FormatViews(views int64) string {
	switch {
	case views >= 1_000_000_000:
		return trimZero(float64(views)/1_000_000_000) + "B"
	case views >= 1_000_000:
		return trimZero(float64(views)/1_000_000) + "M"
	case views >= 1_000:
		return trimZero(float64(views)/1_000) + "K"
	default:
		return fmt.Sprintf("%d", views)
	}
}

// FormatDuration renders an ISO-8601 duration as M:SS or H:MM:SS.
func FormatDuration(iso string) string {
	total := sorting.ParseDuration(iso)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormatDurationLong renders an ISO-8601 duration as "1h 15m 30s",
// omitting zero components ("0s" for empty or malformed input).
func FormatDurationLong(iso string) string {
	total := sorting.ParseDuration(iso)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	parts := []string{}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}

// SecondsToISO converts a duration in seconds to its ISO-8601 form.
func SecondsToISO(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	iso := "PT"
	if h > 0 {
		iso += fmt.Sprintf("%dH", h)
	}
	if m > 0 {
		iso += fmt.Sprintf("%dM", m)
	}
	if s > 0 || iso == "PT" {
		iso += fmt.Sprintf("%dS", s)
	}
	return iso
}

// FormatRelativeDate renders t relative to now ("today", "3 days ago",
// "2 months ago"), falling back to YYYY-MM-DD past a year.
func FormatRelativeDate(t, now time.Time) string {
	days := int(now.Sub(t).Hours() / 24)

	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 30:
		return fmt.Sprintf("%d days ago", days)
	case days < 365:
		months := days / 30
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	default:
		return t.Format("2006-01-02")
	}
}

func trimZero(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
