package models

// VehicleRecord is one row of fleet-adoption data as delivered by the data source.
type VehicleRecord struct {
	ID           int64  `json:"id,omitempty" db:"id"`
	City         string `json:"city" db:"city" validate:"required"`
	State        string `json:"state" db:"state" validate:"required"`
	VehicleCount int    `json:"vehicleCount" db:"vehicle_count" validate:"gte=0"`
	VehicleClass string `json:"vehicleClass" db:"vehicle_class"`
	FuelType     string `json:"fuelType" db:"fuel_type"`
	Year         *int   `json:"year,omitempty" db:"year" validate:"omitempty,gte=1900,lte=2100"`
}

// Coordinate is a WGS84 position in degrees
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LocationBin aggregates records sharing a resolvable (city, state).
// TotalVehicles always equals the sum of ByClass.
type LocationBin struct {
	City          string         `json:"city"`
	State         string         `json:"state"`
	Lat           float64        `json:"lat"`
	Lng           float64        `json:"lng"`
	ByClass       map[string]int `json:"byClass"`
	TotalVehicles int            `json:"totalVehicles"`
}

// StateBin aggregates records per state, positioned at the state centroid.
type StateBin struct {
	State         string  `json:"state"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	TotalVehicles int     `json:"totalVehicles"`
}

// GridBin aggregates location bins falling into the same geohash cell.
type GridBin struct {
	Geohash       string         `json:"geohash"`
	Lat           float64        `json:"lat"`
	Lng           float64        `json:"lng"`
	ByClass       map[string]int `json:"byClass"`
	TotalVehicles int            `json:"totalVehicles"`
}

// DropStats counts records excluded from an aggregation
type DropStats struct {
	Records  int `json:"records"`
	Vehicles int `json:"vehicles"`
}
