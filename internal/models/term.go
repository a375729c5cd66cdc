package models

import "time"

// Semester identifies one of the two academic halves of a year.
type Semester int

const (
	// SemesterFirst runs September through January.
	SemesterFirst Semester = iota
	// SemesterSecond runs February through June.
	SemesterSecond
)

// Term is the resolved current academic term: which semester it is, the
// calendar year it falls in, and the anchor ("day 0") of the term.
type Term struct {
	Semester Semester
	Year     int
	Anchor   time.Time
}

// End returns the end-of-term date used as the recurrence UNTIL bound:
// December 31 for the first semester, June 10 for the second.
func (t Term) End() time.Time {
	if t.Semester == SemesterSecond {
		return time.Date(t.Year, time.June, 10, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
}
