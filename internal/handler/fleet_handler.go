package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
	"github.com/jengzang/fleetmap-backend-go/internal/service"
	"github.com/jengzang/fleetmap-backend-go/pkg/response"
)

// FleetHandler handles HTTP requests for vehicle records
type FleetHandler struct {
	service *service.FleetService
}

// NewFleetHandler creates a new fleet handler
func NewFleetHandler(service *service.FleetService) *FleetHandler {
	return &FleetHandler{service: service}
}

// ListRecords handles GET /api/v1/fleet/records
func (h *FleetHandler) ListRecords(c *gin.Context) {
	var filter models.FleetFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	// Default limit
	if filter.Limit <= 0 || filter.Limit > 50000 {
		filter.Limit = 1000
	}

	records, err := h.service.ListRecords(filter)
	if err != nil {
		fail(c, "Failed to get vehicle records", err)
		return
	}

	response.Success(c, gin.H{
		"data":  records,
		"count": len(records),
	})
}

// IngestRecords handles POST /api/v1/fleet/records
func (h *FleetHandler) IngestRecords(c *gin.Context) {
	var records []models.VehicleRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	n, err := h.service.Ingest(records)
	if err != nil {
		fail(c, "Failed to ingest vehicle records", err)
		return
	}

	response.Created(c, gin.H{"inserted": n})
}
