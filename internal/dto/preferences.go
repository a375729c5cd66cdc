package dto

// UpdatePreferencesRequest replaces the stored wizard preferences for a
// device.
type UpdatePreferencesRequest struct {
	Group          string `json:"group"`
	CalendarName   string `json:"calendarName"`
	StudentName    string `json:"studentName"`
	AuthIntroShown bool   `json:"authIntroShown"`
}
