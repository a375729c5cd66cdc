package models

// EventDateTime is a Google Calendar timestamp with its zone identifier.
type EventDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// CalendarEvent is the payload posted to the Google Calendar events
// endpoint. Derived from a ScheduleEntry, never persisted.
type CalendarEvent struct {
	Summary     string        `json:"summary"`
	Description string        `json:"description"`
	Start       EventDateTime `json:"start"`
	End         EventDateTime `json:"end"`
	Recurrence  []string      `json:"recurrence"`
	Location    string        `json:"location"`
}
