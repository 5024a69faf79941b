// Package values implements the GitQL runtime value algebra: a value
// paired with its DataType, literal rendering, equality, optional
// ordering, and the operator implementations the executor drives.
// Mirrors original_source/crates/gitql-core/src/values/*.rs.
package values

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gql-run/gitql/types"
)

// Value is the runtime counterpart of types.DataType.
type Value interface {
	// Literal renders the value as a display string (also used by
	// INTO OUTFILE).
	Literal() string
	// Type returns the value's concrete DataType.
	Type() types.DataType
	// Equal reports value equality, independent of Compare.
	Equal(other Value) bool
	// Compare returns a total order when one exists, or (0, false)
	// when the two values are incomparable.
	Compare(other Value) (int, bool)
}

// Interval preserves each of its six fields independently; arithmetic
// never normalizes (e.g. 90 minutes stays 90 minutes, it does not
// become 1 hour 30 minutes). Mirrors original_source's Interval.
type Interval struct {
	Years, Months, Days, Hours, Minutes int
	Seconds                             float64
}

// Add returns the field-wise sum of a and b.
func (a Interval) Add(b Interval) Interval {
	return Interval{
		Years: a.Years + b.Years, Months: a.Months + b.Months, Days: a.Days + b.Days,
		Hours: a.Hours + b.Hours, Minutes: a.Minutes + b.Minutes, Seconds: a.Seconds + b.Seconds,
	}
}

// Sub returns the field-wise difference of a and b.
func (a Interval) Sub(b Interval) Interval {
	return Interval{
		Years: a.Years - b.Years, Months: a.Months - b.Months, Days: a.Days - b.Days,
		Hours: a.Hours - b.Hours, Minutes: a.Minutes - b.Minutes, Seconds: a.Seconds - b.Seconds,
	}
}

// String renders the interval the way original_source's Display impl
// does: zero fields are elided, plural units get an "s", and the time
// portion is colon-joined without unit labels.
func (a Interval) String() string {
	var parts []string
	plural := func(n int, unit string) string {
		if n == 1 || n == -1 {
			return fmt.Sprintf("%d %s", n, unit)
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}
	if a.Years != 0 {
		parts = append(parts, plural(a.Years, "year"))
	}
	if a.Months != 0 {
		parts = append(parts, plural(a.Months, "mon"))
	}
	if a.Days != 0 {
		parts = append(parts, plural(a.Days, "day"))
	}
	var timeParts []string
	if a.Hours != 0 {
		timeParts = append(timeParts, strconv.Itoa(a.Hours))
	}
	if a.Minutes != 0 {
		timeParts = append(timeParts, strconv.Itoa(a.Minutes))
	}
	if a.Seconds != 0 {
		timeParts = append(timeParts, formatSeconds(a.Seconds))
	}
	if len(timeParts) > 0 {
		joined := timeParts[0]
		for _, p := range timeParts[1:] {
			joined += ":" + p
		}
		parts = append(parts, joined)
	}
	if len(parts) == 0 {
		return "0 seconds"
	}
	joined := parts[0]
	for _, p := range parts[1:] {
		joined += " " + p
	}
	return joined
}

func formatSeconds(s float64) string {
	if s == float64(int64(s)) {
		return strconv.FormatInt(int64(s), 10)
	}
	return strconv.FormatFloat(s, 'f', -1, 64)
}

// dateFormat/timeFormat/dateTimeFormat mirror original_source's
// date_utils.rs chrono formats.
const (
	dateFormat     = "2006-01-02"
	timeFormat     = "15:04:05"
	dateTimeFormat = "2006-01-02 15:04:05"
)

// TimestampToDate renders a UTC epoch-seconds value as a date string.
func TimestampToDate(ts int64) string { return time.Unix(ts, 0).UTC().Format(dateFormat) }

// TimestampToTime renders a UTC epoch-seconds value as a time string.
func TimestampToTime(ts int64) string { return time.Unix(ts, 0).UTC().Format(timeFormat) }

// TimestampToDateTime renders a UTC epoch-seconds value as a
// datetime string.
func TimestampToDateTime(ts int64) string { return time.Unix(ts, 0).UTC().Format(dateTimeFormat) }

// ParseDateTime parses "YYYY-MM-DD HH:MM:SS" into UTC epoch seconds,
// returning ok=false (not an error) on malformed input, matching
// original_source's date_time_to_time_stamp which silently falls back
// to 0 -- this implementation instead reports failure so callers can
// decide, which is the more defensible Go idiom for a fallible parse.
func ParseDateTime(s string) (int64, bool) {
	t, err := time.ParseInLocation(dateTimeFormat, s, time.UTC)
	if err != nil {
		return 0, false
	}
	return t.Unix(), true
}

// ParseDate parses "YYYY-MM-DD" into UTC epoch seconds.
func ParseDate(s string) (int64, bool) {
	t, err := time.ParseInLocation(dateFormat, s, time.UTC)
	if err != nil {
		return 0, false
	}
	return t.Unix(), true
}
