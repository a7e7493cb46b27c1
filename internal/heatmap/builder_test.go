package heatmap

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/fleetmap-backend-go/internal/fleet"
	"github.com/jengzang/fleetmap-backend-go/internal/gazetteer"
	"github.com/jengzang/fleetmap-backend-go/internal/intensity"
	"github.com/jengzang/fleetmap-backend-go/internal/jitter"
	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

func newTestBuilder() *Builder {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewBuilder(
		fleet.NewAggregator(gazetteer.Default(), log),
		jitter.New(jitter.DefaultConfig()),
		LayerStyle{},
	)
}

func testRecords() []models.VehicleRecord {
	return []models.VehicleRecord{
		{City: "Austin", State: "TX", VehicleCount: 10, VehicleClass: "8"},
		{City: "Austin", State: "TX", VehicleCount: 5, VehicleClass: "6"},
		{City: "Houston", State: "TX", VehicleCount: 5, VehicleClass: "8"},
		{City: "Seattle", State: "WA", VehicleCount: 3, VehicleClass: "7"},
		{City: "Gotham", State: "NJ", VehicleCount: 4},
	}
}

func TestBuild_CityLevel(t *testing.T) {
	b := newTestBuilder()

	layer, summary, err := b.Build(testRecords(), models.FleetFilter{})
	require.NoError(t, err)
	require.NotNil(t, layer)

	assert.Equal(t, LayerID, layer.ID)
	assert.Equal(t, "SUM", layer.Aggregation)
	assert.Equal(t, 40, layer.RadiusPixels)
	assert.Equal(t, DefaultColorRange, layer.ColorRange)

	assert.Equal(t, models.LevelCity, summary.Level)
	assert.Equal(t, string(intensity.Linear), summary.Scale)
	assert.Equal(t, 3, summary.Bins)
	assert.Equal(t, 23, summary.TotalVehicles)
	assert.Equal(t, 3, summary.MinValue)
	assert.Equal(t, 15, summary.MaxValue)
	assert.Equal(t, models.DropStats{Records: 1, Vehicles: 4}, summary.Dropped)
	assert.Equal(t, len(layer.Data), summary.Points)
	assert.Equal(t, 5.0, summary.Distribution.Median)
	assert.InDelta(t, 15.0/23.0, summary.Distribution.TopShare, 1e-9)

	// Austin has the max count, so weight 1 gives Density points at full scale
	austin := layer.Data[:8]
	for _, d := range austin {
		assert.Equal(t, 100.0, d.Weight)
		assert.InDelta(t, -97.7431, d.Position[0], 0.05)
		assert.InDelta(t, 30.2672, d.Position[1], 0.05)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	b := newTestBuilder()
	l1, _, err := b.Build(testRecords(), models.FleetFilter{})
	require.NoError(t, err)
	l2, _, err := b.Build(testRecords(), models.FleetFilter{})
	require.NoError(t, err)
	assert.Equal(t, l1, l2)
}

func TestBuild_StateLevelDefaultsToLog(t *testing.T) {
	b := newTestBuilder()

	layer, summary, err := b.Build(testRecords(), models.FleetFilter{Level: "state"})
	require.NoError(t, err)
	require.NotNil(t, layer)

	assert.Equal(t, string(intensity.Logarithmic), summary.Scale)
	assert.Equal(t, 3, summary.Bins)
	assert.Zero(t, summary.Dropped.Records)
	for _, d := range layer.Data {
		assert.GreaterOrEqual(t, d.Weight, intensity.LogFloor*100-1e-9)
		assert.LessOrEqual(t, d.Weight, 100.0+1e-9)
	}
}

func TestBuild_GridLevel(t *testing.T) {
	b := newTestBuilder()

	_, summary, err := b.Build(testRecords(), models.FleetFilter{Level: "grid", Precision: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Bins)
	assert.Equal(t, 23, summary.TotalVehicles)
}

func TestBuild_StateFilter(t *testing.T) {
	b := newTestBuilder()

	_, summary, err := b.Build(testRecords(), models.FleetFilter{State: "Texas"})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Bins)
	assert.Equal(t, 20, summary.TotalVehicles)
}

func TestBuild_EmptyGivesNilLayer(t *testing.T) {
	b := newTestBuilder()

	layer, summary, err := b.Build(nil, models.FleetFilter{})
	require.NoError(t, err)
	assert.Nil(t, layer)
	assert.Zero(t, summary.Points)
	assert.Zero(t, summary.MaxValue)
}

func TestBuild_InvalidInput(t *testing.T) {
	b := newTestBuilder()

	_, _, err := b.Build(testRecords(), models.FleetFilter{Level: "county"})
	assert.ErrorIs(t, err, ErrUnknownLevel)

	_, _, err = b.Build(testRecords(), models.FleetFilter{Scale: "cubic"})
	assert.ErrorIs(t, err, intensity.ErrUnknownScale)
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", models.LevelCity},
		{"City", models.LevelCity},
		{" state ", models.LevelState},
		{"grid", models.LevelGrid},
	}
	for _, tt := range tests {
		got, err := Level(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
