package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpiexport/gateway/internal/dto"
	"github.com/kpiexport/gateway/internal/models"
)

type authServiceMock struct {
	session      *models.AuthSession
	sessionErr   error
	depositErr   error
	lastID       string
	lastFragment string
}

func (m *authServiceMock) CreateSession(context.Context) (*models.AuthSession, error) {
	return m.session, m.sessionErr
}

func (m *authServiceMock) DepositFragment(_ context.Context, sessionID, fragment string) error {
	m.lastID = sessionID
	m.lastFragment = fragment
	return m.depositErr
}

func TestAuthHandlerCreateSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &authServiceMock{
		session: &models.AuthSession{ID: "sess-1", AuthURL: "https://accounts.example/auth?state=sess-1"},
	}
	handler := NewAuthHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/auth/sessions", nil)
	c.Request = req

	handler.CreateSession(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Data dto.AuthSessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "sess-1", envelope.Data.ID)
	assert.Contains(t, envelope.Data.AuthURL, "state=sess-1")
}

func TestAuthHandlerDepositFragment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &authServiceMock{}
	handler := NewAuthHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"fragment":"#access_token=abc&token_type=Bearer"}`
	req, _ := http.NewRequest(http.MethodPost, "/auth/sessions/sess-1/fragment", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sess-1"}}

	handler.DepositFragment(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "sess-1", mockSvc.lastID)
	assert.Equal(t, "#access_token=abc&token_type=Bearer", mockSvc.lastFragment)
}

func TestAuthHandlerDepositFragmentInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&authServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/auth/sessions/sess-1/fragment", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sess-1"}}

	handler.DepositFragment(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlerDepositFragmentUnknownSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &authServiceMock{depositErr: errors.New("auth session not found")}
	handler := NewAuthHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"fragment":"#error=access_denied"}`
	req, _ := http.NewRequest(http.MethodPost, "/auth/sessions/missing/fragment", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.DepositFragment(c)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthHandlerLanding(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&authServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/oauth", nil)
	c.Request = req

	handler.Landing(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	page := w.Body.String()
	assert.Contains(t, page, "access_token")
	assert.Contains(t, page, "state")
	assert.Contains(t, page, "/api/v1/auth/sessions/")
}
