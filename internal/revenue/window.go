package revenue

import (
	"fmt"
	"strings"
	"time"

	"github.com/merx-commerce/merx/internal/platform/httpx"
)

const dateLayout = "2006-01-02"

// Window is an inclusive date range over invoice creation instants.
// Calendar dates are widened to full-day bounds in UTC.
type Window struct {
	Start time.Time
	End   time.Time
}

// ParseWindow builds a Window from YYYY-MM-DD bounds. The start date is
// widened to 00:00:00 and the end date to the last nanosecond of the day so
// both boundary dates are inclusive.
func ParseWindow(start, end string) (Window, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return Window{}, fmt.Errorf("start date: %w", err)
	}
	endDate, err := parseDate(end)
	if err != nil {
		return Window{}, fmt.Errorf("end date: %w", err)
	}
	w := Window{
		Start: startDate,
		End:   endDate.AddDate(0, 0, 1).Add(-time.Nanosecond),
	}
	if w.Start.After(w.End) {
		return Window{}, fmt.Errorf("start %s after end %s: %w", start, end, httpx.ErrInvalidArgument)
	}
	return w, nil
}

// Contains reports whether t falls inside the window, inclusive on both ends.
func (w Window) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(w.Start) && !t.After(w.End)
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("missing: %w", httpx.ErrInvalidArgument)
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparsable %q: %w", raw, httpx.ErrInvalidArgument)
	}
	return t, nil
}
