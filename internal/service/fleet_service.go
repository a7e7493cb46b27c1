package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/jengzang/fleetmap-backend-go/internal/fleet"
	"github.com/jengzang/fleetmap-backend-go/internal/heatmap"
	"github.com/jengzang/fleetmap-backend-go/internal/models"
	"github.com/jengzang/fleetmap-backend-go/internal/repository"
)

// MaxIngestBatch caps the number of items accepted per ingest request
const MaxIngestBatch = 10000

// FleetService handles business logic for fleet records and heatmaps
type FleetService struct {
	repo       *repository.VehicleRepository
	aggregator *fleet.Aggregator
	builder    *heatmap.Builder
	validate   *validator.Validate
	log        logrus.FieldLogger
}

// NewFleetService creates a new fleet service
func NewFleetService(repo *repository.VehicleRepository, aggregator *fleet.Aggregator, builder *heatmap.Builder, log logrus.FieldLogger) *FleetService {
	return &FleetService{
		repo:       repo,
		aggregator: aggregator,
		builder:    builder,
		validate:   validator.New(),
		log:        log,
	}
}

// Heatmap builds the point layer for filter. The layer is nil when no
// record resolves.
func (s *FleetService) Heatmap(filter models.FleetFilter) (*models.PointLayer, models.HeatmapSummary, error) {
	records, err := s.records(filter)
	if err != nil {
		return nil, models.HeatmapSummary{}, err
	}
	return s.builder.Build(records, filter)
}

// Bins returns the raw aggregation for filter
func (s *FleetService) Bins(filter models.FleetFilter) (heatmap.Bins, error) {
	records, err := s.records(filter)
	if err != nil {
		return heatmap.Bins{}, err
	}
	return s.builder.Aggregate(records, filter)
}

// ListRecords returns stored records, state filter included
func (s *FleetService) ListRecords(filter models.FleetFilter) ([]models.VehicleRecord, error) {
	records, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}
	return s.aggregator.FilterState(records, filter.State), nil
}

// Ingest validates and stores a batch. Nothing is stored if any record is
// invalid.
func (s *FleetService) Ingest(records []models.VehicleRecord) (int, error) {
	if len(records) == 0 {
		return 0, fmt.Errorf("%w: empty batch", ErrInvalidInput)
	}
	if len(records) > MaxIngestBatch {
		return 0, fmt.Errorf("%w: batch exceeds %d records", ErrInvalidInput, MaxIngestBatch)
	}
	for i := range records {
		if err := s.validate.Struct(records[i]); err != nil {
			return 0, fmt.Errorf("%w: record %d: %v", ErrInvalidInput, i, err)
		}
	}

	n, err := s.repo.InsertBatch(records)
	if err != nil {
		return 0, err
	}
	s.log.WithField("records", n).Info("vehicle records ingested")
	return n, nil
}

// records loads every match; the limit applies to listing, not aggregation
func (s *FleetService) records(filter models.FleetFilter) ([]models.VehicleRecord, error) {
	filter.Limit = 0
	return s.repo.List(filter)
}
