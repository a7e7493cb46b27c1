package models

// Aggregation levels for the fleet heatmap
const (
	LevelCity  = "city"
	LevelState = "state"
	LevelGrid  = "grid"
)

// FleetFilter represents filter parameters for fleet heatmap and bin queries
type FleetFilter struct {
	Level        string `form:"level" json:"level"`               // city, state, grid
	Scale        string `form:"scale" json:"scale"`               // linear, logarithmic; empty = per-level default
	FuelType     string `form:"fuelType" json:"fuelType"`
	VehicleClass string `form:"vehicleClass" json:"vehicleClass"`
	State        string `form:"state" json:"state"`
	Year         int    `form:"year" json:"year"`
	Precision    uint   `form:"precision" json:"precision"` // geohash length for the grid level
	Limit        int    `form:"limit" json:"limit"`
}

// PipelineFilter represents filter parameters for pipeline path queries
type PipelineFilter struct {
	Operator  string  `form:"operator" json:"operator"`
	Status    string  `form:"status" json:"status"`
	Tolerance float64 `form:"tolerance" json:"tolerance"` // Douglas-Peucker tolerance in degrees, 0 = off
	Limit     int     `form:"limit" json:"limit"`
}

// OverlayFilter is the message a map client sends over the overlay websocket
// whenever its active selection changes.
type OverlayFilter struct {
	Fleet     FleetFilter    `json:"fleet"`
	Pipelines PipelineFilter `json:"pipelines"`
	// ShowPipelines toggles the path layer; nil keeps it on.
	ShowPipelines *bool `json:"showPipelines,omitempty"`
}

// PipelinesEnabled reports whether the path layer should be sent
func (f OverlayFilter) PipelinesEnabled() bool {
	return f.ShowPipelines == nil || *f.ShowPipelines
}
