package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidRange is returned when an activity ends at or before it starts.
	// The message is user-facing and shown next to the form.
	ErrInvalidRange = errors.New("la hora de fin debe ser mayor que la de inicio")

	// ErrUnknownDay is returned for a day outside the canonical week.
	ErrUnknownDay = errors.New("unknown weekday")
)

// View configuration bounds for the displayed hour range. Input layers
// clamp into these; end > start is deliberately not cross-validated, an
// empty hour range just renders an empty grid.
const (
	MinStartHour = 5
	MaxStartHour = 12
	MinEndHour   = 13
	MaxEndHour   = 23
)

// Days is the canonical week, Monday first. Column order in the grid and
// the only valid values for Activity.Day.
var Days = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

// ValidDay reports whether day is one of the canonical weekday names.
func ValidDay(day string) bool {
	for _, d := range Days {
		if d == day {
			return true
		}
	}
	return false
}

// TimeOfDay is a clock time with minute precision, no date and no zone.
// It marshals to and from the "HH:MM" form used in exports.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a zero-padded 24-hour "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: hour out of range", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: minute out of range", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// After reports whether t is strictly later than u.
func (t TimeOfDay) After(u TimeOfDay) bool {
	return t.Minutes() > u.Minutes()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalJSON encodes the time as an "HH:MM" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

// UnmarshalJSON decodes an "HH:MM" string.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("time must be a string: %w", err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Activity is a single weekly schedule entry. There is no date component;
// the schedule models one prototypical week.
type Activity struct {
	Day      string    `json:"day"`
	Title    string    `json:"title"`
	Start    TimeOfDay `json:"start"`
	End      TimeOfDay `json:"end"`
	Location string    `json:"location"`
	Note     string    `json:"note"`
}

// AddInput is the raw form/API input for creating an activity.
// Times arrive as "HH:MM" strings from the input layer.
type AddInput struct {
	Day      string `json:"day"`
	Title    string `json:"title"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location"`
	Note     string `json:"note"`
}
