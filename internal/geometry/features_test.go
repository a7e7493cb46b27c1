package geometry

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

func testFeatures() []models.PipelineFeature {
	return []models.PipelineFeature{
		{ID: "a", Operator: "Kinder", Coordinates: models.RawCoordinates(`"[[[-97.1,30.2],[-97.3,30.4]]]"`)},
		{ID: "b", Operator: "Energy", Coordinates: models.RawCoordinates(`"not json"`)},
		{ID: "c", Operator: "Energy", Coordinates: models.RawCoordinates(`[[[-96,32],[-96.5,32.5]],[[-95,29],[-95.2,29.1]]]`)},
		{ID: "d", Operator: "Energy"},
	}
}

func TestExtractFeatures_IsolatesFailures(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	e := NewExtractor(DefaultMaxDepth, log)

	in := testFeatures()
	out, report := e.ExtractFeatures(in)

	require.Len(t, out, 4)
	assert.Len(t, out[0].Paths, 1)
	assert.NotNil(t, out[1].Paths)
	assert.Empty(t, out[1].Paths)
	assert.Len(t, out[2].Paths, 2)
	assert.Empty(t, out[3].Paths)

	assert.Equal(t, models.ExtractionReport{
		Features:  4,
		Paths:     3,
		Failed:    1,
		FailedIDs: []string{"b"},
	}, report)

	// input untouched
	assert.Nil(t, in[0].Paths)
}

func TestExtractFeatures_DepthFailure(t *testing.T) {
	e := NewExtractor(3, nil)
	out, report := e.ExtractFeatures([]models.PipelineFeature{
		{ID: "deep", Coordinates: models.RawCoordinates(deepJSON(8))},
		{ID: "ok", Coordinates: models.RawCoordinates(`[[1,2],[3,4]]`)},
	})

	assert.Empty(t, out[0].Paths)
	assert.Len(t, out[1].Paths, 1)
	assert.Equal(t, []string{"deep"}, report.FailedIDs)
}

func TestExtractFeatures_Empty(t *testing.T) {
	out, report := ExtractFeatures(nil)
	assert.Empty(t, out)
	assert.Equal(t, models.ExtractionReport{}, report)
}
