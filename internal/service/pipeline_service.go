package service

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"

	"github.com/jengzang/fleetmap-backend-go/internal/geometry"
	"github.com/jengzang/fleetmap-backend-go/internal/models"
	"github.com/jengzang/fleetmap-backend-go/internal/repository"
)

// Path styles by pipeline status
var (
	DefaultPathStyle = models.PathStyle{StrokeColor: "#1f78b4", StrokeWeight: 2, StrokeOpacity: 0.8}

	statusStyles = map[string]models.PathStyle{
		"active":   DefaultPathStyle,
		"planned":  {StrokeColor: "#ff7f00", StrokeWeight: 2, StrokeOpacity: 0.6},
		"inactive": {StrokeColor: "#999999", StrokeWeight: 1, StrokeOpacity: 0.5},
	}
)

// StyleForStatus returns the stroke for a pipeline status
func StyleForStatus(status string) models.PathStyle {
	if s, ok := statusStyles[strings.ToLower(strings.TrimSpace(status))]; ok {
		return s
	}
	return DefaultPathStyle
}

// PipelineService handles business logic for pipeline geometry
type PipelineService struct {
	repo     *repository.PipelineRepository
	cache    *geometry.PathCache
	validate *validator.Validate
	log      logrus.FieldLogger
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(repo *repository.PipelineRepository, cache *geometry.PathCache, log logrus.FieldLogger) *PipelineService {
	return &PipelineService{repo: repo, cache: cache, validate: validator.New(), log: log}
}

// Features loads features and extracts their paths. Features whose geometry
// cannot be read are kept with no paths and listed in the report.
func (s *PipelineService) Features(filter models.PipelineFilter) ([]models.PipelineFeature, models.ExtractionReport, error) {
	features, err := s.repo.List(filter)
	if err != nil {
		return nil, models.ExtractionReport{}, err
	}

	extracted, report := s.cache.ExtractFeatures(features)
	if report.Failed > 0 {
		s.log.WithFields(logrus.Fields{
			"features": report.Features,
			"failed":   report.Failed,
		}).Warn("some pipeline features have unreadable geometry")
	}
	return extracted, report, nil
}

// PathLayer builds the drawable path layer. It is nil when there are no
// paths.
func (s *PipelineService) PathLayer(filter models.PipelineFilter) (*models.PathLayer, models.ExtractionReport, error) {
	features, report, err := s.Features(filter)
	if err != nil {
		return nil, report, err
	}
	return BuildPathLayer(features, filter.Tolerance), report, nil
}

// GeoJSON exports the filtered features as a FeatureCollection
func (s *PipelineService) GeoJSON(filter models.PipelineFilter) (*geojson.FeatureCollection, error) {
	features, _, err := s.Features(filter)
	if err != nil {
		return nil, err
	}
	if filter.Tolerance > 0 {
		// features may be shared with the cache
		out := make([]models.PipelineFeature, len(features))
		for i, f := range features {
			f.Paths = geometry.Simplify(f.Paths, filter.Tolerance)
			out[i] = f
		}
		features = out
	}
	return geometry.FeatureCollection(features), nil
}

// List returns stored features without extracting geometry
func (s *PipelineService) List(filter models.PipelineFilter) ([]models.PipelineFeature, error) {
	return s.repo.List(filter)
}

// Ingest validates and upserts a batch of features
func (s *PipelineService) Ingest(features []models.PipelineFeature) (int, error) {
	if len(features) == 0 {
		return 0, fmt.Errorf("%w: empty batch", ErrInvalidInput)
	}
	if len(features) > MaxIngestBatch {
		return 0, fmt.Errorf("%w: batch exceeds %d features", ErrInvalidInput, MaxIngestBatch)
	}
	for i := range features {
		if err := s.validate.Struct(features[i]); err != nil {
			return 0, fmt.Errorf("%w: feature %d: %v", ErrInvalidInput, i, err)
		}
	}

	n, err := s.repo.UpsertBatch(features)
	if err != nil {
		return 0, err
	}
	s.cache.Purge()
	s.log.WithField("features", n).Info("pipeline features ingested")
	return n, nil
}

// BuildPathLayer turns extracted features into path descriptors, optionally
// simplified. Returns nil when no feature has a path.
func BuildPathLayer(features []models.PipelineFeature, tolerance float64) *models.PathLayer {
	var descs []models.PathDescriptor
	for _, f := range features {
		style := StyleForStatus(f.Status)
		for _, p := range geometry.Simplify(f.Paths, tolerance) {
			descs = append(descs, models.PathDescriptor{FeatureID: f.ID, Points: p, Style: style})
		}
	}
	if len(descs) == 0 {
		return nil
	}
	return &models.PathLayer{Paths: descs}
}
