// Package timeparse resolves the user-facing time grammar into absolute
// instants. Two grammars live here: full timestamps for --start/--end
// (Resolve) and relative range bounds for --since/--until (ResolveSince).
// Everything is interpreted as local wall-clock time; no timezone
// conversion happens at this layer.
package timeparse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimestamp is returned for any string that matches neither
// grammar, or that names an impossible instant.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// timestampRe accepts an optional date part (ISO yyyy-mm-dd, or a relative
// day word) followed by hh:mm with optional seconds. A "T" or whitespace may
// separate date and time, with arbitrary surrounding whitespace, matching
// case-insensitively.
var timestampRe = regexp.MustCompile(`(?i)^(?:(\d{4})-(\d{2})-(\d{2})\s*T?\s*|(yesterday|today|monday|tuesday|wednesday|thursday|friday|saturday|sunday)\s+)?(\d{2}):(\d{2})(?::(\d{2}))?$`)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Resolve parses a timestamp string against a reference "now". A bare
// "16:40" resolves to 16:40 on now's calendar date; "2024-05-01 16:40"
// keeps its own embedded date. The date part may also be "today",
// "yesterday", or a weekday name meaning the most recent such weekday
// strictly before now; naming today's own weekday is ambiguous and fails.
func Resolve(s string, now time.Time) (time.Time, error) {
	m := timestampRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}

	year, month, day := now.Date()
	switch {
	case m[1] != "":
		year = atoi(m[1])
		month = time.Month(atoi(m[2]))
		day = atoi(m[3])
	case m[4] != "":
		d, err := resolveDayWord(strings.ToLower(m[4]), now)
		if err != nil {
			return time.Time{}, err
		}
		year, month, day = d.Date()
	}

	hour, minute := atoi(m[5]), atoi(m[6])
	sec := 0
	if m[7] != "" {
		sec = atoi(m[7])
	}
	if hour > 23 || minute > 59 || sec > 59 {
		return time.Time{}, fmt.Errorf("%w: %q: time of day out of range", ErrInvalidTimestamp, s)
	}

	t := time.Date(year, month, day, hour, minute, sec, 0, now.Location())
	// time.Date normalizes impossible dates (Feb 30 becomes Mar 2); reject
	// anything that did not round-trip.
	if ty, tm, td := t.Date(); ty != year || tm != month || td != day {
		return time.Time{}, fmt.Errorf("%w: %q: no such date", ErrInvalidTimestamp, s)
	}
	return t, nil
}

func resolveDayWord(word string, now time.Time) (time.Time, error) {
	switch word {
	case "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}

	wd, ok := weekdays[word]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: unknown day %q", ErrInvalidTimestamp, word)
	}
	back := int(now.Weekday()-wd+7) % 7
	if back == 0 {
		// "monday" on a Monday could mean today or a week ago.
		return time.Time{}, fmt.Errorf("%w: %q is ambiguous today", ErrInvalidTimestamp, word)
	}
	return now.AddDate(0, 0, -back), nil
}

// atoi converts digit-only regexp captures; the pattern guarantees they parse.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
