package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jengzang/fleetmap-backend-go/internal/database"
	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

// VehicleRepository handles database operations for vehicle records
type VehicleRepository struct {
	db *sql.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// List retrieves records matching the fuel type, vehicle class and year of
// filter. The state filter is left to the aggregator, which understands
// both codes and names. Limit <= 0 returns every match.
func (r *VehicleRepository) List(filter models.FleetFilter) ([]models.VehicleRecord, error) {
	query := `SELECT id, city, state, vehicle_count, vehicle_class, fuel_type, year
		FROM vehicle_records`

	var conditions []string
	var args []interface{}

	if filter.FuelType != "" {
		conditions = append(conditions, "fuel_type = ? COLLATE NOCASE")
		args = append(args, filter.FuelType)
	}
	if filter.VehicleClass != "" {
		conditions = append(conditions, "vehicle_class = ? COLLATE NOCASE")
		args = append(args, filter.VehicleClass)
	}
	if filter.Year > 0 {
		conditions = append(conditions, "year = ?")
		args = append(args, filter.Year)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	// Insertion order keeps aggregation output stable
	query += " ORDER BY id ASC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicle records: %w", err)
	}
	defer rows.Close()

	var records []models.VehicleRecord
	for rows.Next() {
		var rec models.VehicleRecord
		var year sql.NullInt64

		if err := rows.Scan(&rec.ID, &rec.City, &rec.State, &rec.VehicleCount,
			&rec.VehicleClass, &rec.FuelType, &year); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle record: %w", err)
		}
		if year.Valid {
			y := int(year.Int64)
			rec.Year = &y
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

// InsertBatch stores records in one transaction and returns the number written
func (r *VehicleRepository) InsertBatch(records []models.VehicleRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO vehicle_records
			(city, state, vehicle_count, vehicle_class, fuel_type, year)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for i, rec := range records {
			var year interface{}
			if rec.Year != nil {
				year = *rec.Year
			}
			if _, err := stmt.Exec(rec.City, rec.State, rec.VehicleCount,
				rec.VehicleClass, rec.FuelType, year); err != nil {
				return fmt.Errorf("failed to insert record %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(records), nil
}

// Count returns the number of stored records
func (r *VehicleRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM vehicle_records").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count vehicle records: %w", err)
	}
	return n, nil
}
