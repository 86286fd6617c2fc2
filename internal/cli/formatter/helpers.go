package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrJohz/timesheettool/internal/domain"
)

// FormatDuration renders a duration as "3h 0m 0s". Once a unit has been
// emitted every smaller unit follows, so durations read column-stable in
// listings: "14m 4s", "1h 11m 11s", "1d 2h 0m 0s".
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}

	var parts []string
	emit := func(n int64, unit string, force bool) {
		if n > 0 || force {
			parts = append(parts, fmt.Sprintf("%d%s", n, unit))
		}
	}

	secs := int64(d / time.Second)
	emit(secs/86400, "d", false)
	secs %= 86400
	emit(secs/3600, "h", len(parts) > 0)
	secs %= 3600
	emit(secs/60, "m", len(parts) > 0)
	emit(secs%60, "s", len(parts) > 0)

	return strings.Join(parts, " ")
}

// DecimalHours renders a duration as fractional hours, "9.25".
func DecimalHours(d time.Duration) string {
	return fmt.Sprintf("%.2f", d.Hours())
}

// SignedDecimalHours renders a duration as fractional hours with an explicit
// sign, "+1.00" or "-0.50", for running balances.
func SignedDecimalHours(d time.Duration) string {
	return fmt.Sprintf("%+.2f", d.Hours())
}

// DayHeading renders a date as "We  1 May '24": two-letter weekday and a
// space-padded day of month, compact enough for the listing gutter.
func DayHeading(t time.Time) string {
	return fmt.Sprintf("%s %2d %s", t.Format("Monday")[:2], t.Day(), t.Format("Jan '06"))
}

// Clock renders the time of day as "09:00:00".
func Clock(t time.Time) string {
	return t.Format("15:04:05")
}

// ShortID renders a record id as a dimmed 5-character handle, "(3fa2c)".
func ShortID(id string) string {
	if len(id) > domain.ShortIDLen {
		id = id[:domain.ShortIDLen]
	}
	return StyleDim.Render("(" + id + ")")
}
