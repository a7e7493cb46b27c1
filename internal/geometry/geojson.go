package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
	"github.com/jengzang/fleetmap-backend-go/internal/spatial"
)

// FeatureCollection exports extracted features as GeoJSON MultiLineStrings.
// Features without paths are skipped. The collection carries a bbox when it
// has any point.
func FeatureCollection(features []models.PipelineFeature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	var all []models.Path
	for _, f := range features {
		if len(f.Paths) == 0 {
			continue
		}
		all = append(all, f.Paths...)

		mls := make(orb.MultiLineString, 0, len(f.Paths))
		var meters float64
		for _, p := range f.Paths {
			mls = append(mls, toLineString(p))
			meters += spatial.PathLength(p)
		}

		gf := geojson.NewFeature(mls)
		gf.ID = f.ID
		gf.Properties["operator"] = f.Operator
		gf.Properties["status"] = f.Status
		gf.Properties["paths"] = len(f.Paths)
		gf.Properties["length_km"] = meters / 1000
		fc.Append(gf)
	}

	if b, ok := spatial.BoundingBox(all); ok {
		fc.BBox = geojson.BBox{b.MinLng, b.MinLat, b.MaxLng, b.MaxLat}
	}
	return fc
}
