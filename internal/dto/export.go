package dto

import (
	"time"

	"github.com/kpiexport/gateway/internal/models"
)

// CreateExportRequest starts an export run.
type CreateExportRequest struct {
	Group         string `json:"group" validate:"required"`
	CalendarName  string `json:"calendarName" validate:"required"`
	StudentName   string `json:"studentName"`
	AuthSessionID string `json:"authSessionId" validate:"required"`
	DeviceID      string `json:"deviceId"`
}

// ExportJobResponse is returned on job acceptance.
type ExportJobResponse struct {
	ID     string              `json:"id"`
	Status models.ExportStatus `json:"status"`
}

// ExportStatusResponse exposes job progress to polling clients.
type ExportStatusResponse struct {
	ID                 string              `json:"id"`
	Status             models.ExportStatus `json:"status"`
	Completed          int                 `json:"completed"`
	Total              int                 `json:"total"`
	Created            int                 `json:"created"`
	Failed             int                 `json:"failed"`
	CalendarID         *string             `json:"calendarId,omitempty"`
	PartiallyCompleted bool                `json:"partiallyCompleted"`
	Error              *string             `json:"error,omitempty"`
	FinishedAt         *time.Time          `json:"finishedAt,omitempty"`
}

// NewExportStatusResponse maps a job record onto the response shape.
func NewExportStatusResponse(job *models.ExportJob) *ExportStatusResponse {
	return &ExportStatusResponse{
		ID:                 job.ID,
		Status:             job.Status,
		Completed:          job.Completed,
		Total:              job.Total,
		Created:            job.Created,
		Failed:             job.Failed,
		CalendarID:         job.CalendarID,
		PartiallyCompleted: job.PartiallyCompleted(),
		Error:              job.ErrorMessage,
		FinishedAt:         job.FinishedAt,
	}
}
