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

type exportService interface {
	Start(ctx context.Context, req dto.CreateExportRequest) (*models.ExportJob, error)
	Status(ctx context.Context, id string) (*models.ExportJob, error)
}

// ExportHandler manages export job endpoints.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs handler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Create godoc
// @Summary Start a schedule export
// @Tags Exports
// @Accept json
// @Produce json
// @Param payload body dto.CreateExportRequest true "Export request"
// @Success 202 {object} response.Envelope
// @Router /exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	var req dto.CreateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	job, err := h.service.Start(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, dto.ExportJobResponse{ID: job.ID, Status: job.Status})
}

// Status godoc
// @Summary Get export job progress
// @Tags Exports
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /exports/{id} [get]
func (h *ExportHandler) Status(c *gin.Context) {
	job, err := h.service.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewExportStatusResponse(job))
}
