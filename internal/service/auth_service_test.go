package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpiexport/gateway/internal/repository"
	"github.com/kpiexport/gateway/pkg/config"
	appErrors "github.com/kpiexport/gateway/pkg/errors"
)

type fakePopup struct {
	openErr   error
	script    []func() (string, error)
	reads     int
	closed    bool
	openedURL string
}

func (p *fakePopup) Open(u string) error {
	p.openedURL = u
	return p.openErr
}

func (p *fakePopup) ReadFragment() (string, error) {
	idx := p.reads
	if idx >= len(p.script) {
		idx = len(p.script) - 1
	}
	p.reads++
	return p.script[idx]()
}

func (p *fakePopup) Close() {
	p.closed = true
}

func fragmentOf(s string) func() (string, error) {
	return func() (string, error) { return s, nil }
}

func readFailure() (string, error) {
	return "", errors.New("cross-origin location read")
}

func testAuthService(sessions *repository.AuthSessionRepository, timeout time.Duration) *AuthService {
	cfg := config.GoogleConfig{
		ClientID:       "client-123",
		AuthURL:        "https://accounts.example.com/o/oauth2/v2/auth",
		Scope:          "https://www.googleapis.com/auth/calendar",
		RedirectOrigin: "http://localhost:8080",
	}
	return NewAuthService(sessions, cfg, 2*time.Millisecond, timeout, nil)
}

func TestAcquireTokenResolvesToken(t *testing.T) {
	svc := testAuthService(nil, time.Second)
	popup := &fakePopup{script: []func() (string, error){
		fragmentOf("#access_token=ya29.token&token_type=Bearer&expires_in=3599"),
	}}

	token, err := svc.AcquireToken(context.Background(), popup, "https://auth.example")
	require.NoError(t, err)
	assert.Equal(t, "ya29.token", token)
	assert.True(t, popup.closed)
	assert.Equal(t, "https://auth.example", popup.openedURL)
}

func TestAcquireTokenToleratesCrossOriginReads(t *testing.T) {
	svc := testAuthService(nil, time.Second)
	popup := &fakePopup{script: []func() (string, error){
		readFailure,
		readFailure,
		readFailure,
		fragmentOf("#access_token=abc&token_type=Bearer"),
	}}

	token, err := svc.AcquireToken(context.Background(), popup, "https://auth.example")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
	assert.GreaterOrEqual(t, popup.reads, 4)
}

func TestAcquireTokenKeepsPollingOnForeignFragment(t *testing.T) {
	svc := testAuthService(nil, time.Second)
	popup := &fakePopup{script: []func() (string, error){
		fragmentOf(""),
		fragmentOf("#state=pending"),
		fragmentOf("#access_token=xyz&token_type=Bearer"),
	}}

	token, err := svc.AcquireToken(context.Background(), popup, "https://auth.example")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)
}

func TestAcquireTokenDenied(t *testing.T) {
	svc := testAuthService(nil, time.Second)
	popup := &fakePopup{script: []func() (string, error){
		fragmentOf("#error=access_denied"),
	}}

	_, err := svc.AcquireToken(context.Background(), popup, "https://auth.example")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAuthDenied.Code, appErrors.FromError(err).Code)
	assert.True(t, popup.closed)
}

func TestAcquireTokenPopupBlocked(t *testing.T) {
	svc := testAuthService(nil, time.Second)
	popup := &fakePopup{openErr: errors.New("window.open returned null")}

	_, err := svc.AcquireToken(context.Background(), popup, "https://auth.example")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAuthPopupBlocked.Code, appErrors.FromError(err).Code)
}

func TestAcquireTokenTimesOut(t *testing.T) {
	svc := testAuthService(nil, 30*time.Millisecond)
	popup := &fakePopup{script: []func() (string, error){readFailure}}

	_, err := svc.AcquireToken(context.Background(), popup, "https://auth.example")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAuthTimeout.Code, appErrors.FromError(err).Code)
	assert.True(t, popup.closed)
}

func TestAcquireTokenHonoursContextCancellation(t *testing.T) {
	svc := testAuthService(nil, time.Minute)
	popup := &fakePopup{script: []func() (string, error){readFailure}}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.AcquireToken(ctx, popup, "https://auth.example")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAuthTimeout.Code, appErrors.FromError(err).Code)
}

func TestCreateSessionBuildsAuthURL(t *testing.T) {
	sessions := repository.NewAuthSessionRepository()
	svc := testAuthService(sessions, time.Second)

	session, err := svc.CreateSession(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)

	parsed, err := url.Parse(session.AuthURL)
	require.NoError(t, err)
	query := parsed.Query()
	assert.Equal(t, "token", query.Get("response_type"))
	assert.Equal(t, "client-123", query.Get("client_id"))
	assert.Equal(t, "https://www.googleapis.com/auth/calendar", query.Get("scope"))
	assert.Equal(t, "http://localhost:8080/oauth", query.Get("redirect_uri"))
	assert.Equal(t, session.ID, query.Get("state"))
}

func TestTokenForSessionRoundTrip(t *testing.T) {
	sessions := repository.NewAuthSessionRepository()
	svc := testAuthService(sessions, time.Second)

	session, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.DepositFragment(context.Background(), session.ID, "#access_token=tok-42&token_type=Bearer"))

	token, err := svc.TokenForSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok-42", token)

	// Resolving consumes the session.
	_, err = sessions.Get(session.ID)
	assert.Error(t, err)
}

func TestTokenForSessionUnknownSession(t *testing.T) {
	sessions := repository.NewAuthSessionRepository()
	svc := testAuthService(sessions, time.Second)

	_, err := svc.TokenForSession(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAuthPopupBlocked.Code, appErrors.FromError(err).Code)
}
