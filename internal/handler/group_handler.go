package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kpiexport/gateway/internal/models"
	"github.com/kpiexport/gateway/pkg/response"
)

type groupService interface {
	List(ctx context.Context, query string) ([]string, error)
	Schedule(ctx context.Context, groupName, lastName string) (*models.GroupSchedule, error)
}

// GroupHandler serves the group list and group schedules.
type GroupHandler struct {
	service groupService
}

// NewGroupHandler constructs handler.
func NewGroupHandler(svc groupService) *GroupHandler {
	return &GroupHandler{service: svc}
}

// List godoc
// @Summary List group names
// @Tags Groups
// @Produce json
// @Param q query string false "Prefix filter, transliteration-aware"
// @Success 200 {object} response.Envelope
// @Router /groups [get]
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.service.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups)
}

// Schedule godoc
// @Summary Get a group's schedule
// @Tags Groups
// @Produce json
// @Param name path string true "Group name"
// @Param lastName query string false "Student last name for elective resolution"
// @Success 200 {object} response.Envelope
// @Router /groups/{name}/schedule [get]
func (h *GroupHandler) Schedule(c *gin.Context) {
	schedule, err := h.service.Schedule(c.Request.Context(), c.Param("name"), c.Query("lastName"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule)
}
