package service

import (
	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

// OverlaySummary describes a computed layer set
type OverlaySummary struct {
	Heatmap    models.HeatmapSummary    `json:"heatmap"`
	Extraction *models.ExtractionReport `json:"extraction,omitempty"`
}

// OverlayService computes complete layer sets for overlay sessions
type OverlayService struct {
	fleet     *FleetService
	pipelines *PipelineService
}

// NewOverlayService creates a new overlay service
func NewOverlayService(fleet *FleetService, pipelines *PipelineService) *OverlayService {
	return &OverlayService{fleet: fleet, pipelines: pipelines}
}

// Layers computes the layer set for filter. A layer with nothing to draw is
// left nil.
func (s *OverlayService) Layers(filter models.OverlayFilter) (models.LayerSet, OverlaySummary, error) {
	var (
		ls      models.LayerSet
		summary OverlaySummary
		err     error
	)

	ls.Points, summary.Heatmap, err = s.fleet.Heatmap(filter.Fleet)
	if err != nil {
		return models.LayerSet{}, OverlaySummary{}, err
	}

	if filter.PipelinesEnabled() {
		layer, report, err := s.pipelines.PathLayer(filter.Pipelines)
		if err != nil {
			return models.LayerSet{}, OverlaySummary{}, err
		}
		ls.Paths = layer
		summary.Extraction = &report
	}

	return ls, summary, nil
}
