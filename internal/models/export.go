package models

import "time"

// ExportStatus captures the export job lifecycle.
type ExportStatus string

const (
	ExportStatusQueued      ExportStatus = "QUEUED"
	ExportStatusAuthorizing ExportStatus = "AUTHORIZING"
	ExportStatusFetching    ExportStatus = "FETCHING_SCHEDULE"
	ExportStatusInProgress  ExportStatus = "IN_PROGRESS"
	ExportStatusFinished    ExportStatus = "FINISHED"
	ExportStatusFailed      ExportStatus = "FAILED"
)

// ExportJob tracks one export run. Completed counts network steps that
// succeeded (calendar creation plus each event creation); Total is fixed
// at entryCount+1 once the schedule is known and Completed never exceeds
// it. The job lives in memory only: no export state survives a restart,
// and the OAuth token is deliberately not part of the record.
type ExportJob struct {
	ID           string       `json:"id"`
	Group        string       `json:"group"`
	CalendarName string       `json:"calendarName"`
	StudentName  string       `json:"studentName,omitempty"`
	Status       ExportStatus `json:"status"`
	Completed    int          `json:"completed"`
	Total        int          `json:"total"`
	Created      int          `json:"created"`
	Failed       int          `json:"failed"`
	CalendarID   *string      `json:"calendarId,omitempty"`
	ErrorMessage *string      `json:"error,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	FinishedAt   *time.Time   `json:"finishedAt,omitempty"`
}

// PartiallyCompleted reports whether the run mutated the target calendar
// before failing. A false value means the export is safe to retry from
// scratch.
func (j *ExportJob) PartiallyCompleted() bool {
	return j.Status == ExportStatusFailed && j.CalendarID != nil
}
