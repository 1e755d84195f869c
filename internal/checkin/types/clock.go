package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayLayout is the venue-local calendar day format used as the ledger key.
const DayLayout = "2006-01-02"

// TimeOfDay is a wall-clock time expressed as seconds since midnight.
type TimeOfDay int

const secondsPerDay = 24 * 60 * 60

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("bad time of day %q: want HH:MM or HH:MM:SS", s)
	}

	limits := []int{23, 59, 59}
	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || len(p) != 2 || n < 0 || n > limits[i] {
			return 0, fmt.Errorf("bad time of day %q", s)
		}
		fields[i] = n
	}

	return TimeOfDay(fields[0]*3600 + fields[1]*60 + fields[2]), nil
}

// MustTimeOfDay is ParseTimeOfDay for literals known to be valid.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeOfDayOf truncates t to the second in t's own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}

func (t TimeOfDay) Valid() bool { return t >= 0 && t < secondsPerDay }

func (t TimeOfDay) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60)%60, s%60)
}

// Window is an inclusive time-of-day range: Start <= t <= End.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (w Window) Contains(t TimeOfDay) bool {
	return w.Start <= t && t <= w.End
}

func (w Window) Validate() error {
	if !w.Start.Valid() || !w.End.Valid() {
		return fmt.Errorf("window %s-%s out of range", w.Start, w.End)
	}
	if w.Start > w.End {
		return fmt.Errorf("window start %s is after end %s", w.Start, w.End)
	}
	return nil
}

func (w Window) String() string {
	return w.Start.String() + "-" + w.End.String()
}
