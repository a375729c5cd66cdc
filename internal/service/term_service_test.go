package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpiexport/gateway/internal/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTermServiceCurrentFirstSemester(t *testing.T) {
	svc := NewTermService(fixedClock(time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC)), time.UTC)

	term := svc.Current()
	assert.Equal(t, models.SemesterFirst, term.Semester)
	assert.Equal(t, 2025, term.Year)
	assert.Equal(t, time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), term.Anchor)
}

func TestTermServiceCurrentSecondSemester(t *testing.T) {
	svc := NewTermService(fixedClock(time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)), time.UTC)

	term := svc.Current()
	assert.Equal(t, models.SemesterSecond, term.Semester)
	assert.Equal(t, 2026, term.Year)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), term.Anchor)
}

func TestTermServiceJuneIsSecondJulyIsFirst(t *testing.T) {
	june := NewTermService(fixedClock(time.Date(2026, time.June, 30, 23, 59, 0, 0, time.UTC)), time.UTC)
	assert.Equal(t, models.SemesterSecond, june.Current().Semester)

	july := NewTermService(fixedClock(time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)), time.UTC)
	assert.Equal(t, models.SemesterFirst, july.Current().Semester)
}

func TestTermServiceSeptemberBeforeAnchorStillFirstSemester(t *testing.T) {
	svc := NewTermService(fixedClock(time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC)), time.UTC)

	term := svc.Current()
	require.Equal(t, models.SemesterFirst, term.Semester)
	assert.Equal(t, time.September, term.Anchor.Month())
}

func TestTermEndBounds(t *testing.T) {
	first := models.Term{Semester: models.SemesterFirst, Year: 2025}
	assert.Equal(t, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), first.End())

	second := models.Term{Semester: models.SemesterSecond, Year: 2026}
	assert.Equal(t, time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC), second.End())
}
