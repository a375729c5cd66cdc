package models

import "time"

// Schedule day indices as served by the backend: 0 = Monday .. 6 = Sunday.
// Sunday never carries lessons but keeping it makes the arithmetic total.
const (
	DayMonday = iota
	DayTuesday
	DayWednesday
	DayThursday
	DayFriday
	DaySaturday
	DaySunday
)

// ScheduleEntry is one slot of a group's two-week rotating schedule.
// Subjects merged into the same slot are carried as parallel lists and
// joined with a separator when the calendar event is rendered.
type ScheduleEntry struct {
	Week      int      `json:"week"`
	Day       int      `json:"day"`
	Index     int      `json:"index"`
	Names     []string `json:"names"`
	Lecturers []string `json:"lecturers"`
	Locations []string `json:"locations"`
}

// GroupSchedule is the full schedule of one group as fetched from the
// backend. Immutable once fetched.
type GroupSchedule struct {
	Entries []ScheduleEntry `json:"entries"`
}

// Weekday maps a schedule day index onto time.Weekday.
func Weekday(day int) time.Weekday {
	return time.Weekday((day + 1) % 7)
}
