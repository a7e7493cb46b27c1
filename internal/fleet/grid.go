package fleet

import (
	"github.com/mmcloughlin/geohash"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

// DefaultGridPrecision is the geohash length used when none is given (~39 km cells)
const DefaultGridPrecision uint = 4

// MaxGridPrecision is the longest geohash accepted
const MaxGridPrecision uint = 12

// ByGrid merges location bins into geohash cells of the given precision. Each
// cell is positioned at its decoded geohash point. Totals are conserved.
func ByGrid(bins []models.LocationBin, precision uint) []models.GridBin {
	if precision == 0 {
		precision = DefaultGridPrecision
	}
	if precision > MaxGridPrecision {
		precision = MaxGridPrecision
	}

	var out []models.GridBin
	index := make(map[string]int)

	for _, b := range bins {
		hash := geohash.EncodeWithPrecision(b.Lat, b.Lng, precision)
		i, exists := index[hash]
		if !exists {
			lat, lng := geohash.Decode(hash)
			i = len(out)
			index[hash] = i
			out = append(out, models.GridBin{
				Geohash: hash,
				Lat:     lat,
				Lng:     lng,
				ByClass: make(map[string]int),
			})
		}
		cell := &out[i]
		for class, n := range b.ByClass {
			cell.ByClass[class] += n
		}
		cell.TotalVehicles += b.TotalVehicles
	}
	return out
}
