package revenue

import "time"

// WeekStart truncates t to the Monday 00:00 UTC that opens its calendar
// week. The engine pins weeks to UTC rather than a store-specific timezone.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
