package values

import (
	"strconv"
	"strings"
)

// ParseInterval parses the whitespace-separated unit components of an
// `INTERVAL '...'` literal (spec.md §4.3 "Interval literal"): an
// integer followed by one of year[s]/mon[s]/day[s], or an
// `HH:MM[:SS]` triple for hours/minutes/seconds. Components may be
// concatenated, e.g. "1 year 2 mons 03:04:05".
func ParseInterval(text string) (Interval, error) {
	var iv Interval
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return iv, opErr("empty interval literal")
	}
	for i := 0; i < len(fields); i++ {
		tok := fields[i]
		if strings.Contains(tok, ":") {
			h, m, s, err := parseClock(tok)
			if err != nil {
				return iv, err
			}
			iv.Hours += h
			iv.Minutes += m
			iv.Seconds += s
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return iv, opErr("expected an integer value in interval literal, got %q", tok)
		}
		i++
		if i >= len(fields) {
			return iv, opErr("interval value %d has no unit", n)
		}
		unit := strings.ToLower(fields[i])
		switch unit {
		case "year", "years":
			iv.Years += n
		case "mon", "mons", "month", "months":
			iv.Months += n
		case "day", "days":
			iv.Days += n
		default:
			return iv, opErr("unknown interval unit %q", fields[i])
		}
	}
	return iv, nil
}

func parseClock(tok string) (hours, minutes int, seconds float64, err error) {
	parts := strings.Split(tok, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, opErr("invalid HH:MM[:SS] interval component %q", tok)
	}
	hours, err1 := strconv.Atoi(parts[0])
	minutes, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, 0, opErr("invalid HH:MM[:SS] interval component %q", tok)
	}
	if len(parts) == 3 {
		secs, err3 := strconv.ParseFloat(parts[2], 64)
		if err3 != nil {
			return 0, 0, 0, opErr("invalid HH:MM:SS interval component %q", tok)
		}
		seconds = secs
	}
	return hours, minutes, seconds, nil
}
