package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jengzang/fleetmap-backend-go/internal/database"
	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

// PipelineRepository handles database operations for pipeline features
type PipelineRepository struct {
	db *sql.DB
}

// NewPipelineRepository creates a new pipeline repository
func NewPipelineRepository(db *sql.DB) *PipelineRepository {
	return &PipelineRepository{db: db}
}

// List retrieves features by operator and status. Coordinates are returned
// raw; extraction happens in the service layer.
func (r *PipelineRepository) List(filter models.PipelineFilter) ([]models.PipelineFeature, error) {
	query := `SELECT id, operator, status, coordinates FROM pipeline_features`

	var conditions []string
	var args []interface{}

	if filter.Operator != "" {
		conditions = append(conditions, "operator = ? COLLATE NOCASE")
		args = append(args, filter.Operator)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ? COLLATE NOCASE")
		args = append(args, filter.Status)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY id ASC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pipeline features: %w", err)
	}
	defer rows.Close()

	var features []models.PipelineFeature
	for rows.Next() {
		var f models.PipelineFeature
		var coords string

		if err := rows.Scan(&f.ID, &f.Operator, &f.Status, &coords); err != nil {
			return nil, fmt.Errorf("failed to scan pipeline feature: %w", err)
		}
		if coords != "" {
			f.Coordinates = models.RawCoordinates(coords)
		}

		features = append(features, f)
	}

	return features, rows.Err()
}

// UpsertBatch inserts or replaces features by id in one transaction
func (r *PipelineRepository) UpsertBatch(features []models.PipelineFeature) (int, error) {
	if len(features) == 0 {
		return 0, nil
	}

	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO pipeline_features (id, operator, status, coordinates)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				operator = excluded.operator,
				status = excluded.status,
				coordinates = excluded.coordinates,
				updated_at = CURRENT_TIMESTAMP`)
		if err != nil {
			return fmt.Errorf("failed to prepare upsert: %w", err)
		}
		defer stmt.Close()

		for _, f := range features {
			if _, err := stmt.Exec(f.ID, f.Operator, f.Status, string(f.Coordinates)); err != nil {
				return fmt.Errorf("failed to upsert feature %s: %w", f.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(features), nil
}
