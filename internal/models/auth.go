package models

import "time"

// AuthSession is one pending OAuth popup round-trip. The fragment is the
// raw location fragment the callback page captured; it is nil until the
// popup lands back on the redirect URI. Sessions are held in memory only,
// the bearer token inside the fragment must never reach durable storage.
type AuthSession struct {
	ID        string
	AuthURL   string
	Fragment  *string
	CreatedAt time.Time
}

// Preferences are the last-used wizard inputs for one device, including
// whether the OAuth consent explainer was already acknowledged.
type Preferences struct {
	Group          string `json:"group"`
	CalendarName   string `json:"calendarName"`
	StudentName    string `json:"studentName"`
	AuthIntroShown bool   `json:"authIntroShown"`
}
