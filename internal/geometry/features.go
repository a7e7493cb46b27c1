package geometry

import (
	"github.com/sirupsen/logrus"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

// ExtractFeatures flattens the geometry of every feature using DefaultMaxDepth
func ExtractFeatures(features []models.PipelineFeature) ([]models.PipelineFeature, models.ExtractionReport) {
	return defaultExtractor.ExtractFeatures(features)
}

// ExtractFeatures returns copies of features with Paths populated. A feature
// whose geometry cannot be read gets empty Paths and is listed in the report;
// the rest of the batch is unaffected. The input slice is not modified.
func (e *Extractor) ExtractFeatures(features []models.PipelineFeature) ([]models.PipelineFeature, models.ExtractionReport) {
	out := make([]models.PipelineFeature, len(features))
	report := models.ExtractionReport{Features: len(features)}

	for i, f := range features {
		paths, err := e.Extract(f.Coordinates)
		if err != nil {
			report.Failed++
			report.FailedIDs = append(report.FailedIDs, f.ID)
			if e.log != nil {
				e.log.WithFields(logrus.Fields{
					"feature_id": f.ID,
					"operator":   f.Operator,
				}).WithError(err).Warn("failed to extract pipeline geometry")
			}
			paths = []models.Path{}
		}
		f.Paths = paths
		out[i] = f
		report.Paths += len(paths)
	}

	return out, report
}
