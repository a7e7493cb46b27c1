// Package stats describes how vehicles are spread across bins.
package stats

import (
	"math"
	"sort"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

// Describe summarizes bin totals. Empty input gives the zero value.
func Describe(counts []int) models.BinDistribution {
	if len(counts) == 0 {
		return models.BinDistribution{}
	}

	values := make([]float64, len(counts))
	var sum, top float64
	for i, c := range counts {
		values[i] = float64(c)
		sum += values[i]
		top = math.Max(top, values[i])
	}

	d := models.BinDistribution{
		Median:   Quantile(values, 0.5),
		P90:      Quantile(values, 0.9),
		Evenness: NormalizedEntropy(values),
	}
	if sum > 0 {
		d.TopShare = top / sum
	}
	return d
}

// Quantile returns the q-th quantile (0-1) using linear interpolation
// between closest ranks. values is not modified.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	q = math.Min(math.Max(q, 0), 1)

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// NormalizedEntropy is the Shannon entropy of the value shares divided by
// log2(n): 1 when every value is equal, 0 when one value holds everything.
func NormalizedEntropy(values []float64) float64 {
	if len(values) <= 1 {
		return 0
	}

	var sum float64
	for _, v := range values {
		if v > 0 {
			sum += v
		}
	}
	if sum == 0 {
		return 0
	}

	var entropy float64
	for _, v := range values {
		if v > 0 {
			p := v / sum
			entropy -= p * math.Log2(p)
		}
	}
	return entropy / math.Log2(float64(len(values)))
}
