package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kpiexport/gateway/internal/dto"
	"github.com/kpiexport/gateway/internal/models"
	appErrors "github.com/kpiexport/gateway/pkg/errors"
	"github.com/kpiexport/gateway/pkg/response"
)

type authService interface {
	CreateSession(ctx context.Context) (*models.AuthSession, error)
	DepositFragment(ctx context.Context, sessionID, fragment string) error
}

// AuthHandler manages OAuth popup sessions and the redirect landing
// page.
type AuthHandler struct {
	service authService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// CreateSession godoc
// @Summary Open an OAuth popup session
// @Tags Auth
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /auth/sessions [post]
func (h *AuthHandler) CreateSession(c *gin.Context) {
	session, err := h.service.CreateSession(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, dto.AuthSessionResponse{ID: session.ID, AuthURL: session.AuthURL})
}

// DepositFragment godoc
// @Summary Deliver the OAuth redirect fragment for a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.DepositFragmentRequest true "Captured fragment"
// @Success 204
// @Router /auth/sessions/{id}/fragment [post]
func (h *AuthHandler) DepositFragment(c *gin.Context) {
	var req dto.DepositFragmentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Fragment == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid fragment payload"))
		return
	}
	if err := h.service.DepositFragment(c.Request.Context(), c.Param("id"), req.Fragment); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// oauthLandingPage forwards the implicit-grant fragment back to the
// gateway. The session id rides in the OAuth state parameter; the page
// rebuilds the canonical fragment the token broker's matcher expects,
// because the provider is free to order fragment parameters however it
// likes.
const oauthLandingPage = `<!DOCTYPE html>
<html>
<head><title>Authentication</title></head>
<body>
<p>Finishing authentication, you can close this window.</p>
<script>
(function () {
    var params = new URLSearchParams(window.location.hash.slice(1));
    var state = params.get('state');
    if (!state) { return; }

    var fragment;
    if (params.get('error')) {
        fragment = '#error=' + params.get('error');
    } else {
        fragment = '#access_token=' + params.get('access_token') +
            '&token_type=' + params.get('token_type');
    }

    fetch('/api/v1/auth/sessions/' + encodeURIComponent(state) + '/fragment', {
        method: 'POST',
        headers: {'Content-Type': 'application/json'},
        body: JSON.stringify({fragment: fragment})
    }).then(function () { window.close(); });
})();
</script>
</body>
</html>`

// Landing serves the OAuth redirect target.
func (h *AuthHandler) Landing(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(oauthLandingPage))
}
