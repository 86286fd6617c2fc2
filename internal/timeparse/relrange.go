package timeparse

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// rangeRe accepts a count and a single period unit, with the usual spelling
// variants ("1 day", "2wks", "3 Months", "1y").
var rangeRe = regexp.MustCompile(`(?i)^(\d+)\s*(?:(d)(?:ay|ays)?|(w)(?:k|eek|ks|eeks)?|(m)(?:o|onth|os|onths)?|(y)(?:r|e|ear|rs|es|ears)?)$`)

// ResolveSince parses a relative range bound against a reference "now".
// "now" itself resolves to the start of tomorrow, so that an exclusive upper
// bound still covers all of today. "N days" resolves to the start of the day
// N-1 days back, "N weeks" to the Monday of the week N-1 weeks back,
// "N months" to the first of the month N-1 months back, and "N years" to
// January 1st N-1 years back, so "1 week" means "since the start of this
// week". All boundaries are local midnights.
func ResolveSince(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "now") {
		return startOfDay(now.AddDate(0, 0, 1)), nil
	}

	m := rangeRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	// "0 days" behaves like "1 day" rather than pointing at the future.
	n := atoi(m[1])
	if n > 0 {
		n--
	}

	day := startOfDay(now)
	switch {
	case m[2] != "": // days
		return day.AddDate(0, 0, -n), nil
	case m[3] != "": // weeks, starting Monday
		back := (int(now.Weekday()) + 6) % 7
		monday := day.AddDate(0, 0, -back)
		return monday.AddDate(0, 0, -7*n), nil
	case m[4] != "": // months
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first.AddDate(0, -n, 0), nil
	default: // years
		return time.Date(now.Year()-n, time.January, 1, 0, 0, 0, 0, now.Location()), nil
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
