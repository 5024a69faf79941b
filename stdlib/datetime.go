package stdlib

import (
	"time"

	"github.com/gql-run/gitql/types"
	"github.com/gql-run/gitql/values"
)

var dateOrDateTime = types.NewVariant(types.DateType, types.DateTimeType)

func timestampOf(v values.Value) (int64, bool) {
	switch x := v.(type) {
	case values.DateValue:
		return int64(x), true
	case values.DateTimeValue:
		return int64(x), true
	}
	return 0, false
}

// registerDateTimeFunctions wires the date/time category: now,
// current_date, current_time, and the calendar-field extraction
// functions. Mirrors original_source/crates/gitql-std/src/date.rs and
// crates/gitql-core/src/date_utils.rs.
func registerDateTimeFunctions(r *Registry) {
	r.addStandard("now", Signature{
		Parameters: nil,
		ReturnType: types.DateTimeType,
	}, func(args []values.Value) (values.Value, error) {
		return values.DateTimeValue(time.Now().UTC().Unix()), nil
	})

	r.addStandard("current_date", Signature{
		Parameters: nil,
		ReturnType: types.DateType,
	}, func(args []values.Value) (values.Value, error) {
		now := time.Now().UTC()
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return values.DateValue(midnight.Unix()), nil
	})

	r.addStandard("current_time", Signature{
		Parameters: nil,
		ReturnType: types.TimeType,
	}, func(args []values.Value) (values.Value, error) {
		return values.TimeValue(time.Now().UTC().Format("15:04:05")), nil
	})

	yearMonthDay := func(name string, field func(time.Time) int) {
		r.addStandard(name, Signature{
			Parameters: []types.DataType{dateOrDateTime},
			ReturnType: types.IntType,
		}, func(args []values.Value) (values.Value, error) {
			ts, ok := timestampOf(args[0])
			if !ok {
				return nil, opErrf("%s expects a DATE or DATETIME argument", name)
			}
			return values.IntValue(field(time.Unix(ts, 0).UTC())), nil
		})
	}
	yearMonthDay("year", func(t time.Time) int { return t.Year() })
	yearMonthDay("month", func(t time.Time) int { return int(t.Month()) })
	yearMonthDay("day", func(t time.Time) int { return t.Day() })
	yearMonthDay("hour", func(t time.Time) int { return t.Hour() })
	yearMonthDay("minute", func(t time.Time) int { return t.Minute() })
	yearMonthDay("second", func(t time.Time) int { return t.Second() })
	yearMonthDay("weekday", func(t time.Time) int { return int(t.Weekday()) })

	r.addStandard("date_add", Signature{
		Parameters: []types.DataType{dateOrDateTime, types.IntervalType},
		ReturnType: types.DateTimeType,
	}, func(args []values.Value) (values.Value, error) {
		ts, ok := timestampOf(args[0])
		if !ok {
			return nil, opErrf("date_add expects a DATE or DATETIME argument")
		}
		iv, ok := args[1].(values.IntervalValue)
		if !ok {
			return nil, opErrf("date_add expects an INTERVAL second argument")
		}
		t := time.Unix(ts, 0).UTC()
		t = t.AddDate(iv.Years, iv.Months, iv.Days)
		t = t.Add(time.Duration(iv.Hours)*time.Hour + time.Duration(iv.Minutes)*time.Minute + time.Duration(iv.Seconds*float64(time.Second)))
		return values.DateTimeValue(t.Unix()), nil
	})

	r.addStandard("date_sub", Signature{
		Parameters: []types.DataType{dateOrDateTime, types.IntervalType},
		ReturnType: types.DateTimeType,
	}, func(args []values.Value) (values.Value, error) {
		ts, ok := timestampOf(args[0])
		if !ok {
			return nil, opErrf("date_sub expects a DATE or DATETIME argument")
		}
		iv, ok := args[1].(values.IntervalValue)
		if !ok {
			return nil, opErrf("date_sub expects an INTERVAL second argument")
		}
		t := time.Unix(ts, 0).UTC()
		t = t.AddDate(-iv.Years, -iv.Months, -iv.Days)
		t = t.Add(-(time.Duration(iv.Hours)*time.Hour + time.Duration(iv.Minutes)*time.Minute + time.Duration(iv.Seconds*float64(time.Second))))
		return values.DateTimeValue(t.Unix()), nil
	})
}
