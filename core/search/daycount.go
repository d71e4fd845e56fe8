package search

import "github.com/golang-module/carbon/v2"

const (
	dateLayout = "2006-01-02"
	// MinYear is the first year of the Gregorian calendar.
	MinYear = 1582
)

// DayCount converts a Gregorian calendar date to its Julian Day Number.
func DayCount(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// ParseSince parses a YYYY-MM-DD cutoff date no earlier than MinYear and no
// later than today, returning its day count.
func ParseSince(value string, today carbon.Carbon) (int, error) {
	invalid := ValidationError{Field: "since", Value: value, Kind: KindBadDate}
	if len(value) != len(dateLayout) {
		return 0, invalid
	}

	c := carbon.ParseByLayout(value, dateLayout)
	if c.Error != nil {
		return 0, invalid
	}
	// carbon normalises overflowing dates, so compare against the input
	if c.ToDateString() != value {
		return 0, invalid
	}
	if c.Year() < MinYear {
		return 0, invalid
	}

	days := DayCount(c.Year(), c.Month(), c.Day())
	if days > DayCount(today.Year(), today.Month(), today.Day()) {
		return 0, invalid
	}
	return days, nil
}
