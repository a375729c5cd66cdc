package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpiexport/gateway/internal/dto"
	"github.com/kpiexport/gateway/internal/models"
	appErrors "github.com/kpiexport/gateway/pkg/errors"
)

type exportServiceMock struct {
	startResp  *models.ExportJob
	startErr   error
	statusResp *models.ExportJob
	statusErr  error
	lastReq    dto.CreateExportRequest
	lastID     string
}

func (m *exportServiceMock) Start(_ context.Context, req dto.CreateExportRequest) (*models.ExportJob, error) {
	m.lastReq = req
	return m.startResp, m.startErr
}

func (m *exportServiceMock) Status(_ context.Context, id string) (*models.ExportJob, error) {
	m.lastID = id
	return m.statusResp, m.statusErr
}

func TestExportHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &exportServiceMock{
		startResp: &models.ExportJob{ID: "job-1", Status: models.ExportStatusQueued},
	}
	handler := NewExportHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"group":"ІП-82","calendarName":"KPI Schedule","authSessionId":"sess-1"}`
	req, _ := http.NewRequest(http.MethodPost, "/exports", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "ІП-82", mockSvc.lastReq.Group)
	assert.Equal(t, "sess-1", mockSvc.lastReq.AuthSessionID)

	var envelope struct {
		Data dto.ExportJobResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "job-1", envelope.Data.ID)
	assert.Equal(t, models.ExportStatusQueued, envelope.Data.Status)
}

func TestExportHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewExportHandler(&exportServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/exports", bytes.NewBufferString(`{"group":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportHandlerCreateServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &exportServiceMock{startErr: appErrors.ErrAuthIntroRequired}
	handler := NewExportHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"group":"ІП-82","calendarName":"KPI Schedule","authSessionId":"sess-1"}`
	req, _ := http.NewRequest(http.MethodPost, "/exports", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, appErrors.ErrAuthIntroRequired.Status, w.Code)
}

func TestExportHandlerStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	calendarID := "cal-1"
	mockSvc := &exportServiceMock{
		statusResp: &models.ExportJob{
			ID:         "job-1",
			Status:     models.ExportStatusInProgress,
			Completed:  2,
			Total:      4,
			CalendarID: &calendarID,
		},
	}
	handler := NewExportHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/exports/job-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}

	handler.Status(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "job-1", mockSvc.lastID)

	var envelope struct {
		Data dto.ExportStatusResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, models.ExportStatusInProgress, envelope.Data.Status)
	assert.Equal(t, 2, envelope.Data.Completed)
	assert.Equal(t, 4, envelope.Data.Total)
	require.NotNil(t, envelope.Data.CalendarID)
	assert.Equal(t, "cal-1", *envelope.Data.CalendarID)
}

func TestExportHandlerStatusNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &exportServiceMock{statusErr: appErrors.ErrNotFound}
	handler := NewExportHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/exports/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Status(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
