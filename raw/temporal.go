package raw

import "github.com/brinewire/pof/errs"

// ZoneKind identifies whether a Time carries no zone, UTC, or an explicit
// hour/minute offset.
type ZoneKind uint8

const (
	ZoneNone ZoneKind = iota
	ZoneUTC
	ZoneOffset
)

func (z ZoneKind) String() string {
	switch z {
	case ZoneNone:
		return "none"
	case ZoneUTC:
		return "utc"
	case ZoneOffset:
		return "offset"
	default:
		return "unknown"
	}
}

// Date is a raw Gregorian calendar date.
type Date struct {
	Year, Month, Day int
}

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Validate enforces the range invariants from the wire grammar: month in
// [1,12], day in [1, days-in-month], with Feb 29 valid only in leap years.
func (d Date) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return errs.Range("date: month out of range")
	}

	maxDay := daysInMonth[d.Month-1]
	if d.Month == 2 && isLeapYear(d.Year) {
		maxDay = 29
	}

	if d.Day < 1 || d.Day > maxDay {
		return errs.Range("date: day out of range for month")
	}

	return nil
}

// Time is a raw time-of-day, optionally zoned.
type Time struct {
	Hour, Minute, Second, Nanosecond int
	Zone                             ZoneKind
	HourOffset, MinuteOffset         int
}

// Validate enforces the range invariants from §6: second may be 60 only
// when nanosecond is 0 (a leap second with no sub-second component).
func (t Time) Validate() error {
	if t.Hour < 0 || t.Hour > 23 {
		return errs.Range("time: hour out of range")
	}
	if t.Minute < 0 || t.Minute > 59 {
		return errs.Range("time: minute out of range")
	}
	if t.Second < 0 || t.Second > 60 {
		return errs.Range("time: second out of range")
	}
	if t.Second == 60 && t.Nanosecond != 0 {
		return errs.Range("time: leap second must carry zero nanoseconds")
	}
	if t.Nanosecond < 0 || t.Nanosecond > 999_999_999 {
		return errs.Range("time: nanosecond out of range")
	}

	if t.Zone == ZoneOffset {
		if t.HourOffset < -23 || t.HourOffset > 23 {
			return errs.Range("time: hour offset out of range")
		}
		if t.MinuteOffset < 0 || t.MinuteOffset > 59 {
			return errs.Range("time: minute offset out of range")
		}
	}

	return nil
}

// DateTime is a raw date combined with a raw time-of-day.
type DateTime struct {
	Date
	Time
}

// Validate validates both the date and time components.
func (dt DateTime) Validate() error {
	if err := dt.Date.Validate(); err != nil {
		return err
	}

	return dt.Time.Validate()
}

// YearMonthInterval is a raw (years, months) interval.
type YearMonthInterval struct {
	Years, Months int
}

// TimeInterval is a raw (hours, minutes, seconds, nanoseconds) interval
// with no date component and no zone, distinct from DayTimeInterval in
// that it never carries a day count.
type TimeInterval struct {
	Hours, Minutes, Seconds, Nanoseconds int
}

// DayTimeInterval is a raw (days, hours, minutes, seconds, nanoseconds)
// interval.
type DayTimeInterval struct {
	Days, Hours, Minutes, Seconds, Nanoseconds int
}
