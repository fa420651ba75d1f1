package meta

import (
	"fmt"
	"time"
)

// OrdinalSuffix returns the English ordinal suffix for a day of the month:
// 1st, 2nd, 3rd, 4th..20th, 21st, 22nd, 23rd, 24th..30th, 31st.
func OrdinalSuffix(day int) string {
	switch day {
	case 1, 21, 31:
		return "st"
	case 2, 22:
		return "nd"
	case 3, 23:
		return "rd"
	default:
		return "th"
	}
}

// HumanTimestamp renders a time as e.g. "Monday 24th November 2025
// 18:03:45" in the UTC calendar.
func HumanTimestamp(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s %d%s %s %d %s",
		t.Weekday(), t.Day(), OrdinalSuffix(t.Day()), t.Month(), t.Year(),
		t.Format("15:04:05"))
}

// HumanTimestampSup is HumanTimestamp with the ordinal suffix wrapped in
// <sup> tags, for markdown surfaces.
func HumanTimestampSup(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s %d<sup>%s</sup> %s %d %s",
		t.Weekday(), t.Day(), OrdinalSuffix(t.Day()), t.Month(), t.Year(),
		t.Format("15:04:05"))
}
