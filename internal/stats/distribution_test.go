package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

func TestQuantile(t *testing.T) {
	values := []float64{4, 1, 3, 2}

	assert.Equal(t, 1.0, Quantile(values, 0))
	assert.Equal(t, 4.0, Quantile(values, 1))
	assert.InDelta(t, 2.5, Quantile(values, 0.5), 1e-9)
	assert.InDelta(t, 3.7, Quantile(values, 0.9), 1e-9)
	assert.Equal(t, 4.0, Quantile(values, 2))
	assert.Zero(t, Quantile(nil, 0.5))
	// input order preserved
	assert.Equal(t, []float64{4, 1, 3, 2}, values)
}

func TestNormalizedEntropy(t *testing.T) {
	assert.InDelta(t, 1.0, NormalizedEntropy([]float64{5, 5, 5, 5}), 1e-9)
	assert.Zero(t, NormalizedEntropy([]float64{9, 0, 0}))
	assert.Zero(t, NormalizedEntropy([]float64{3}))
	assert.Zero(t, NormalizedEntropy([]float64{0, 0}))

	e := NormalizedEntropy([]float64{10, 1})
	assert.Greater(t, e, 0.0)
	assert.Less(t, e, 1.0)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, models.BinDistribution{}, Describe(nil))

	d := Describe([]int{15, 5, 0})
	assert.Equal(t, 5.0, d.Median)
	assert.InDelta(t, 13.0, d.P90, 1e-9)
	assert.InDelta(t, 0.75, d.TopShare, 1e-9)
	assert.Greater(t, d.Evenness, 0.0)
	assert.Less(t, d.Evenness, 1.0)
}
