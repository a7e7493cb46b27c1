package models

// WeightedPoint is a single jittered heat sample. Weight is on the scale the
// rendering layer expects (0-100 by default).
type WeightedPoint struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Weight float64 `json:"weight"`
}

// PointDatum is the wire form of a weighted point. Position is [lng, lat].
type PointDatum struct {
	Position [2]float64 `json:"position"`
	Weight   float64    `json:"weight"`
}

// PointLayer describes a heatmap layer for the map client
type PointLayer struct {
	ID           string       `json:"id"`
	Data         []PointDatum `json:"data"`
	RadiusPixels int          `json:"radiusPixels"`
	ColorRange   [][3]uint8   `json:"colorRange"`
	Aggregation  string       `json:"aggregation"` // always "SUM"
}

// HeatmapSummary describes how a point layer was produced
type HeatmapSummary struct {
	Level         string    `json:"level"` // "city", "state", "grid"
	Scale         string    `json:"scale"` // "linear", "logarithmic"
	Bins          int       `json:"bins"`
	Points        int       `json:"points"`
	TotalVehicles int       `json:"totalVehicles"`
	MinValue      int       `json:"minValue"`
	MaxValue      int       `json:"maxValue"`
	Dropped       DropStats `json:"dropped"`

	Distribution BinDistribution `json:"distribution"`
}

// BinDistribution describes how vehicles spread across bins
type BinDistribution struct {
	Median   float64 `json:"median"`
	P90      float64 `json:"p90"`
	// Evenness is the normalized entropy of bin shares; 0 means one bin
	// holds every vehicle
	Evenness float64 `json:"evenness"`
	TopShare float64 `json:"topShare"`
}
