package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SeasonYears are the calendar years a schedule page spans. A cross-year
// season ("2024-25") carries both; a single-year season leaves Second zero.
type SeasonYears struct {
	First  int
	Second int
}

var (
	seasonYearsRe = regexp.MustCompile(`(\d{4})(?:-(\d{2}))?`)
	weekdayRe     = regexp.MustCompile(`\([^)]*\)`)
	timeRe        = regexp.MustCompile(`(\d{1,2}):?(\d{2})?\s*(am|pm)?`)
)

// ParseSeasonYears extracts the season years from a schedule page title
// like "2024-25 Men's Ice Hockey Schedule".
func ParseSeasonYears(title string) SeasonYears {
	m := seasonYearsRe.FindStringSubmatch(title)
	if m == nil {
		return SeasonYears{}
	}

	first, _ := strconv.Atoi(m[1])
	years := SeasonYears{First: first}
	if m[2] != "" {
		// "2024-25" carries only the century-less second year.
		second, _ := strconv.Atoi(m[1][:2] + m[2])
		years.Second = second
	}
	return years
}

// InferGameYear determines the calendar year of a game from its month:
// August through December belong to the first year of a cross-year season,
// January through July to the second.
func InferGameYear(dateText string, years SeasonYears) int {
	if years.Second == 0 {
		return years.First
	}
	if len(dateText) < 3 {
		return years.First
	}
	switch dateText[:3] {
	case "Aug", "Sep", "Oct", "Nov", "Dec":
		return years.First
	default:
		return years.Second
	}
}

// StripWeekday removes a parenthetical weekday from a scraped date, turning
// "Jan 15 (Sat)" into "Jan 15".
func StripWeekday(dateText string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(weekdayRe.ReplaceAllString(dateText, "")), " "))
}

// ParseTimeString normalizes scraped kickoff time text into "H:MM AM" form.
// It tolerates "p.m."/"pm"/"PM" and bare 24-hour "HH:MM", defaults to PM
// when no meridiem is given, and returns "" for unparseable text.
func ParseTimeString(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "p.m.", "pm")
	s = strings.ReplaceAll(s, "a.m.", "am")

	m := timeRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}

	hours, _ := strconv.Atoi(m[1])
	minutes := m[2]
	if minutes == "" {
		minutes = "00"
	}

	meridiem := m[3]
	if meridiem == "" {
		// Bare 24-hour clock, or a page that dropped the meridiem; kickoffs
		// without one are overwhelmingly afternoon or evening.
		meridiem = "pm"
		if hours >= 13 {
			hours -= 12
		}
	}

	return fmt.Sprintf("%d:%s %s", hours, minutes, strings.ToUpper(meridiem))
}

var dateTimeLayouts = []string{"Jan 2 2006 3:04 PM", "January 2 2006 3:04 PM", "Jan. 2 2006 3:04 PM"}
var dateLayouts = []string{"Jan 2 2006", "January 2 2006", "Jan. 2 2006"}

// ConvertToUTC converts a display date ("Jan 15 2025") and normalized time
// ("7:00 PM") in the given local zone to a UTC instant. Games with no
// parseable time default to local midnight. Unparseable dates yield nil;
// conversion failure is never fatal to ingestion.
func ConvertToUTC(date, timeOfDay string, loc *time.Location) *time.Time {
	if date == "" {
		return nil
	}

	if timeOfDay != "" {
		for _, layout := range dateTimeLayouts {
			if local, err := time.ParseInLocation(layout, date+" "+timeOfDay, loc); err == nil {
				utc := local.UTC()
				return &utc
			}
		}
	}

	for _, layout := range dateLayouts {
		if local, err := time.ParseInLocation(layout, date, loc); err == nil {
			utc := local.UTC()
			return &utc
		}
	}

	return nil
}
