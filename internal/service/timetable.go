package service

// LessonTime is a wall-clock lecture boundary in the institution's civil
// time.
type LessonTime struct {
	Hour   int
	Minute int
}

// LessonSlot is the start/end pair of one timetable position.
type LessonSlot struct {
	Start LessonTime
	End   LessonTime
}

// lessonSlots is the fixed KPI bell schedule for slots 0 through 5.
var lessonSlots = [6]LessonSlot{
	{Start: LessonTime{8, 30}, End: LessonTime{10, 5}},
	{Start: LessonTime{10, 25}, End: LessonTime{12, 0}},
	{Start: LessonTime{12, 20}, End: LessonTime{13, 55}},
	{Start: LessonTime{14, 15}, End: LessonTime{15, 50}},
	{Start: LessonTime{16, 10}, End: LessonTime{17, 45}},
	{Start: LessonTime{18, 30}, End: LessonTime{20, 5}},
}

// fallbackSlot is returned for any index beyond the real timetable. It is
// a placeholder, not a seventh lecture slot: the backend has produced
// out-of-range indices before and an event at a visibly late hour beats a
// dropped one.
var fallbackSlot = LessonSlot{Start: LessonTime{20, 20}, End: LessonTime{21, 55}}

// SlotTimes maps a lecture index onto its wall-clock start/end pair.
func SlotTimes(index int) LessonSlot {
	if index < 0 || index >= len(lessonSlots) {
		return fallbackSlot
	}
	return lessonSlots[index]
}
