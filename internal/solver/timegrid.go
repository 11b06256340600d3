package solver

import "time"

// baseMonday anchors slot 0 to a Monday at 08:00. Only the weekday/time-of-day
// component is meaningful; callers compare and format durations, not this
// particular calendar date.
var baseMonday = time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)

// slotToTime maps a slot index in [0, TotalSlots) to its (day, hour) instant:
// day = slot / SlotsPerDay, hour = 08:00 + (slot % SlotsPerDay).
func slotToTime(slot int) time.Time {
	day := slot / SlotsPerDay
	hour := slot % SlotsPerDay
	return baseMonday.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
}

const timestampLayout = "2006-01-02 15:04:05"
