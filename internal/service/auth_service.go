package service

import (
	"context"
	"net/url"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kpiexport/gateway/internal/models"
	"github.com/kpiexport/gateway/internal/repository"
	"github.com/kpiexport/gateway/pkg/config"
	appErrors "github.com/kpiexport/gateway/pkg/errors"
)

// Popup abstracts the OAuth popup window: something that can be opened
// on an authorization URL, asked for its current location fragment, and
// closed. ReadFragment errors mean "not resolved yet" — a real popup
// throws on cross-origin reads for as long as it sits on the provider's
// domain — so the broker ignores them and keeps polling.
type Popup interface {
	Open(url string) error
	ReadFragment() (string, error)
	Close()
}

const deniedFragment = "#error=access_denied"

var tokenFragmentPattern = regexp.MustCompile(`^#access_token=([^&]+)&token_type`)

// AuthService brokers OAuth implicit-grant tokens. It issues
// authorization URLs bound to a session, and resolves tokens by polling
// a Popup until the redirect fragment carries a token or a denial.
type AuthService struct {
	sessions     *repository.AuthSessionRepository
	cfg          config.GoogleConfig
	pollInterval time.Duration
	timeout      time.Duration
	logger       *zap.Logger
}

// NewAuthService constructs the broker.
func NewAuthService(sessions *repository.AuthSessionRepository, cfg config.GoogleConfig, pollInterval, timeout time.Duration, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pollInterval <= 0 {
		pollInterval = 100 * time.Millisecond
	}
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}
	return &AuthService{
		sessions:     sessions,
		cfg:          cfg,
		pollInterval: pollInterval,
		timeout:      timeout,
		logger:       logger,
	}
}

// CreateSession registers a pending OAuth round-trip and returns the
// session together with the authorization URL the client should open in
// a popup. The session id travels through the OAuth state parameter so
// the callback page can route the fragment back.
func (s *AuthService) CreateSession(_ context.Context) (*models.AuthSession, error) {
	id := uuid.NewString()

	query := url.Values{}
	query.Set("scope", s.cfg.Scope)
	query.Set("response_type", "token")
	query.Set("client_id", s.cfg.ClientID)
	query.Set("redirect_uri", s.cfg.RedirectOrigin+"/oauth")
	query.Set("state", id)

	return s.sessions.Create(id, s.cfg.AuthURL+"?"+query.Encode()), nil
}

// DepositFragment stores the location fragment the callback page
// captured for the session.
func (s *AuthService) DepositFragment(_ context.Context, sessionID, fragment string) error {
	return s.sessions.DepositFragment(sessionID, fragment)
}

// TokenForSession resolves the token for a pending session by polling
// its popup.
func (s *AuthService) TokenForSession(ctx context.Context, sessionID string) (string, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return "", appErrors.Clone(appErrors.ErrAuthPopupBlocked, "unknown auth session")
	}
	return s.AcquireToken(ctx, &sessionPopup{sessions: s.sessions, id: sessionID}, session.AuthURL)
}

// AcquireToken runs the popup polling protocol: open the authorization
// URL, then poll the fragment at a fixed interval until it matches the
// token pattern or the exact denial marker. Polling is bounded by the
// configured timeout and by ctx.
func (s *AuthService) AcquireToken(ctx context.Context, popup Popup, authURL string) (string, error) {
	if err := popup.Open(authURL); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrAuthPopupBlocked.Code, appErrors.ErrAuthPopupBlocked.Status, appErrors.ErrAuthPopupBlocked.Message)
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(s.timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			popup.Close()
			return "", appErrors.Wrap(ctx.Err(), appErrors.ErrAuthTimeout.Code, appErrors.ErrAuthTimeout.Status, appErrors.ErrAuthTimeout.Message)
		case <-deadline.C:
			popup.Close()
			return "", appErrors.ErrAuthTimeout
		case <-ticker.C:
			fragment, err := popup.ReadFragment()
			if err != nil {
				continue
			}
			if match := tokenFragmentPattern.FindStringSubmatch(fragment); match != nil {
				popup.Close()
				return match[1], nil
			}
			if fragment == deniedFragment {
				popup.Close()
				return "", appErrors.ErrAuthDenied
			}
		}
	}
}

// sessionPopup adapts a pending auth session to the Popup interface: the
// browser opens the URL, the callback page deposits the fragment, and
// reading before that behaves like a cross-origin location read.
type sessionPopup struct {
	sessions *repository.AuthSessionRepository
	id       string
}

func (p *sessionPopup) Open(string) error {
	_, err := p.sessions.Get(p.id)
	return err
}

func (p *sessionPopup) ReadFragment() (string, error) {
	return p.sessions.Fragment(p.id)
}

func (p *sessionPopup) Close() {
	p.sessions.Delete(p.id)
}
