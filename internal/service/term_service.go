package service

import (
	"time"

	"github.com/kpiexport/gateway/internal/models"
)

// TermService resolves the current academic term from the wall clock.
type TermService struct {
	now func() time.Time
	loc *time.Location
}

// NewTermService creates a term resolver. The now function is injectable
// for tests; nil means time.Now.
func NewTermService(now func() time.Time, loc *time.Location) *TermService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &TermService{now: now, loc: loc}
}

// Current resolves the term the given moment falls into. January through
// June belong to the second semester (anchored at February 1), July
// onward to the first semester of the next academic year (anchored at
// September 1).
func (s *TermService) Current() models.Term {
	now := s.now().In(s.loc)
	year := now.Year()

	if now.Month() < time.July {
		return models.Term{
			Semester: models.SemesterSecond,
			Year:     year,
			Anchor:   time.Date(year, time.February, 1, 0, 0, 0, 0, s.loc),
		}
	}

	return models.Term{
		Semester: models.SemesterFirst,
		Year:     year,
		Anchor:   time.Date(year, time.September, 1, 0, 0, 0, 0, s.loc),
	}
}
