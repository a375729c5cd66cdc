package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/kpiexport/gateway/internal/models"
	appErrors "github.com/kpiexport/gateway/pkg/errors"
)

const (
	subjectSeparator = " | "
	lecturerPrefix   = "Викладач: "
	institutionName  = "КПІ ім. Ігоря Сікорського"
)

// EventService turns schedule entries into Google Calendar event
// payloads. It is pure: no network, no clock reads, identical inputs
// yield identical payloads.
type EventService struct {
	loc    *time.Location
	tzName string
}

// NewEventService creates the builder for the given IANA zone, the civil
// time all timetable slots are defined in.
func NewEventService(tzName string) (*EventService, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", tzName, err)
	}
	return &EventService{loc: loc, tzName: tzName}, nil
}

// Location returns the institution location used for the destination
// calendar itself.
func (s *EventService) Location() string {
	return institutionName
}

// FirstOccurrence computes the concrete date of the entry's first
// lesson within the term. The anchor counts as the first candidate when
// it already falls on the entry's weekday; week 1 entries shift one week
// into the rotation. The first-semester guard pushes dates past mid-month
// forward when an anchor other than day 1 walks the date out of range.
func (s *EventService) FirstOccurrence(term models.Term, entry models.ScheduleEntry) time.Time {
	anchor := term.Anchor
	offset := (int(models.Weekday(entry.Day)) - int(anchor.Weekday()) + 7) % 7
	date := anchor.AddDate(0, 0, offset)

	if entry.Week == 1 {
		date = date.AddDate(0, 0, 7)
	}
	if term.Semester == models.SemesterFirst && date.Day() > 14 {
		date = date.AddDate(0, 0, 14)
	}

	return date
}

// Build composes the calendar event payload for one schedule entry: the
// first occurrence date, the slot's wall-clock times converted from civil
// time to UTC instants, and a two-week recurrence bounded by the end of
// term.
func (s *EventService) Build(entry models.ScheduleEntry, term models.Term) (models.CalendarEvent, error) {
	if entry.Week != 0 && entry.Week != 1 {
		return models.CalendarEvent{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("schedule entry week %d out of range", entry.Week))
	}
	if entry.Day < models.DayMonday || entry.Day > models.DaySunday {
		return models.CalendarEvent{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("schedule entry day %d out of range", entry.Day))
	}

	date := s.FirstOccurrence(term, entry)
	slot := SlotTimes(entry.Index)

	start := time.Date(date.Year(), date.Month(), date.Day(), slot.Start.Hour, slot.Start.Minute, 0, 0, s.loc)
	end := time.Date(date.Year(), date.Month(), date.Day(), slot.End.Hour, slot.End.Minute, 0, 0, s.loc)

	recurrence, err := biweeklyRule(term.End())
	if err != nil {
		return models.CalendarEvent{}, err
	}

	summary := strings.Join(entry.Names, subjectSeparator)
	return models.CalendarEvent{
		Summary:     summary,
		Description: summary + "\n" + lecturerPrefix + strings.Join(entry.Lecturers, subjectSeparator),
		Start: models.EventDateTime{
			DateTime: start.UTC().Format(time.RFC3339),
			TimeZone: s.tzName,
		},
		End: models.EventDateTime{
			DateTime: end.UTC().Format(time.RFC3339),
			TimeZone: s.tzName,
		},
		Recurrence: []string{recurrence},
		Location:   institutionName + ", " + strings.Join(entry.Locations, subjectSeparator),
	}, nil
}

// BuildAll converts a whole schedule, preserving entry order.
func (s *EventService) BuildAll(entries []models.ScheduleEntry, term models.Term) ([]models.CalendarEvent, error) {
	events := make([]models.CalendarEvent, 0, len(entries))
	for _, entry := range entries {
		event, err := s.Build(entry, term)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// biweeklyRule renders the two-week rotation as an RRULE bounded by the
// end-of-term date.
func biweeklyRule(until time.Time) (string, error) {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.WEEKLY,
		Interval: 2,
		Until:    until.UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("build recurrence rule: %w", err)
	}
	return "RRULE:" + rule.OrigOptions.RRuleString(), nil
}
