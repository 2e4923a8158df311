package clock

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Clock supplies the current time in the restaurant's configured timezone.
// All policy comparisons go through a Clock so tests can inject a fixed time.
type Clock interface {
	Now() time.Time
}

// FixedOffsetClock is a Clock pinned to a fixed UTC offset. The restaurant
// operates in a single timezone configured via TZ_SHIFT; DST is not observed.
type FixedOffsetClock struct {
	loc *time.Location
}

// NewFixedOffsetClock creates a Clock for the given UTC offset in hours.
// Fractional offsets (e.g. 5.5 for IST) are supported.
func NewFixedOffsetClock(shiftHours float64) *FixedOffsetClock {
	offset := int(shiftHours * 3600)
	name := fmt.Sprintf("UTC%+.1f", shiftHours)
	return &FixedOffsetClock{loc: time.FixedZone(name, offset)}
}

// Now returns the current wall-clock time in the configured offset.
func (c *FixedOffsetClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// TimeOfDay is a clock time with no date component, counted in seconds since
// midnight. The reservation domain works exclusively in times of day: a
// booking is always for the current service day.
type TimeOfDay int

// MustParse parses a "15:04" or "15:04:05" string, panicking on bad input.
// Intended for constants and tests.
func MustParse(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeOfDay parses a "15:04" or "15:04:05" formatted string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return At(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q, expected HH:MM or HH:MM:SS", s)
}

// At builds a TimeOfDay from hour, minute and second components.
func At(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// TimeOfDayFrom extracts the time-of-day portion of a full timestamp.
func TimeOfDayFrom(t time.Time) TimeOfDay {
	return At(t.Hour(), t.Minute(), t.Second())
}

// Hour returns the hour component (0-23).
func (t TimeOfDay) Hour() int { return int(t) / 3600 }

// Minute returns the minute component (0-59).
func (t TimeOfDay) Minute() int { return (int(t) % 3600) / 60 }

// Second returns the second component (0-59).
func (t TimeOfDay) Second() int { return int(t) % 60 }

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }

// After reports whether t is later in the day than other.
func (t TimeOfDay) After(other TimeOfDay) bool { return t > other }

// Add shifts the time of day by d, wrapping around midnight in either
// direction. Adding -2h to 01:00 yields 23:00.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	const day = 24 * 3600
	s := (int(t) + int(d/time.Second)) % day
	if s < 0 {
		s += day
	}
	return TimeOfDay(s)
}

// String formats the time as "15:04:05".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// MarshalJSON encodes the time as a "15:04:05" JSON string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts "15:04" or "15:04:05" JSON strings.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer, storing the time as a SQL TIME string.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner for TIME columns. Drivers hand TIME values
// back as strings, byte slices or full timestamps depending on the dialect.
func (t *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = 0
		return nil
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		return t.Scan(string(v))
	case time.Time:
		*t = TimeOfDayFrom(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}
