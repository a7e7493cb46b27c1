package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
	"github.com/jengzang/fleetmap-backend-go/internal/service"
	"github.com/jengzang/fleetmap-backend-go/pkg/response"
)

// PipelineHandler handles HTTP requests for pipeline features
type PipelineHandler struct {
	service *service.PipelineService
}

// NewPipelineHandler creates a new pipeline handler
func NewPipelineHandler(service *service.PipelineService) *PipelineHandler {
	return &PipelineHandler{service: service}
}

// ListFeatures handles GET /api/v1/pipelines
func (h *PipelineHandler) ListFeatures(c *gin.Context) {
	var filter models.PipelineFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	if filter.Limit <= 0 || filter.Limit > 10000 {
		filter.Limit = 1000
	}

	features, err := h.service.List(filter)
	if err != nil {
		fail(c, "Failed to get pipeline features", err)
		return
	}

	response.Success(c, gin.H{
		"data":  features,
		"count": len(features),
	})
}

// IngestFeatures handles POST /api/v1/pipelines
func (h *PipelineHandler) IngestFeatures(c *gin.Context) {
	var features []models.PipelineFeature
	if err := c.ShouldBindJSON(&features); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	n, err := h.service.Ingest(features)
	if err != nil {
		fail(c, "Failed to ingest pipeline features", err)
		return
	}

	response.Created(c, gin.H{"upserted": n})
}
