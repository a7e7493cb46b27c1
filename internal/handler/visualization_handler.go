package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
	"github.com/jengzang/fleetmap-backend-go/internal/service"
	"github.com/jengzang/fleetmap-backend-go/pkg/response"
)

// VisualizationHandler handles HTTP requests for map layers
type VisualizationHandler struct {
	fleet     *service.FleetService
	pipelines *service.PipelineService
}

// NewVisualizationHandler creates a new visualization handler
func NewVisualizationHandler(fleet *service.FleetService, pipelines *service.PipelineService) *VisualizationHandler {
	return &VisualizationHandler{fleet: fleet, pipelines: pipelines}
}

// GetFleetHeatmap handles GET /api/v1/viz/fleet-heatmap
func (h *VisualizationHandler) GetFleetHeatmap(c *gin.Context) {
	var filter models.FleetFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	layer, summary, err := h.fleet.Heatmap(filter)
	if err != nil {
		fail(c, "Failed to build fleet heatmap", err)
		return
	}

	response.Success(c, gin.H{
		"layer":   layer,
		"summary": summary,
	})
}

// GetFleetBins handles GET /api/v1/viz/fleet-bins
func (h *VisualizationHandler) GetFleetBins(c *gin.Context) {
	var filter models.FleetFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	bins, err := h.fleet.Bins(filter)
	if err != nil {
		fail(c, "Failed to aggregate fleet records", err)
		return
	}

	response.Success(c, bins)
}

// GetPipelines handles GET /api/v1/viz/pipelines
func (h *VisualizationHandler) GetPipelines(c *gin.Context) {
	var filter models.PipelineFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	layer, report, err := h.pipelines.PathLayer(filter)
	if err != nil {
		fail(c, "Failed to get pipeline paths", err)
		return
	}

	response.Success(c, gin.H{
		"layer":  layer,
		"report": report,
	})
}

// GetPipelinesGeoJSON handles GET /api/v1/viz/pipelines/geojson. The body is
// a bare FeatureCollection so GIS tools can load it directly.
func (h *VisualizationHandler) GetPipelinesGeoJSON(c *gin.Context) {
	var filter models.PipelineFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	fc, err := h.pipelines.GeoJSON(filter)
	if err != nil {
		fail(c, "Failed to export pipelines", err)
		return
	}

	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

// fail maps service errors onto 400 or 500
func fail(c *gin.Context, message string, err error) {
	if service.IsClientError(err) {
		response.Error(c, http.StatusBadRequest, message, err)
		return
	}
	response.Error(c, http.StatusInternalServerError, message, err)
}
