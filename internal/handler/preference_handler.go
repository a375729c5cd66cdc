package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kpiexport/gateway/internal/dto"
	"github.com/kpiexport/gateway/internal/models"
	"github.com/kpiexport/gateway/internal/repository"
	appErrors "github.com/kpiexport/gateway/pkg/errors"
	"github.com/kpiexport/gateway/pkg/response"
)

// PreferenceHandler exposes per-device wizard preferences.
type PreferenceHandler struct {
	store repository.PreferenceRepository
}

// NewPreferenceHandler constructs handler.
func NewPreferenceHandler(store repository.PreferenceRepository) *PreferenceHandler {
	return &PreferenceHandler{store: store}
}

// Get godoc
// @Summary Get device preferences
// @Tags Preferences
// @Produce json
// @Param deviceId path string true "Device ID"
// @Success 200 {object} response.Envelope
// @Router /preferences/{deviceId} [get]
func (h *PreferenceHandler) Get(c *gin.Context) {
	prefs, err := h.store.Get(c.Request.Context(), c.Param("deviceId"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load preferences"))
		return
	}
	response.JSON(c, http.StatusOK, prefs)
}

// Update godoc
// @Summary Replace device preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Param deviceId path string true "Device ID"
// @Param payload body dto.UpdatePreferencesRequest true "Preferences"
// @Success 200 {object} response.Envelope
// @Router /preferences/{deviceId} [put]
func (h *PreferenceHandler) Update(c *gin.Context) {
	var req dto.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	prefs := models.Preferences{
		Group:          req.Group,
		CalendarName:   req.CalendarName,
		StudentName:    req.StudentName,
		AuthIntroShown: req.AuthIntroShown,
	}
	if err := h.store.Put(c.Request.Context(), c.Param("deviceId"), prefs); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store preferences"))
		return
	}
	response.JSON(c, http.StatusOK, prefs)
}
