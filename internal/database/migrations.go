package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Migrations is the built-in schema
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "create_vehicle_records",
		SQL: `
			CREATE TABLE IF NOT EXISTS vehicle_records (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				city TEXT NOT NULL,
				state TEXT NOT NULL,
				vehicle_count INTEGER NOT NULL CHECK (vehicle_count >= 0),
				vehicle_class TEXT NOT NULL DEFAULT '',
				fuel_type TEXT NOT NULL DEFAULT '',
				year INTEGER,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_vehicle_records_fuel ON vehicle_records (fuel_type, vehicle_class);
		`,
	},
	{
		Version: 2,
		Name:    "create_pipeline_features",
		SQL: `
			CREATE TABLE IF NOT EXISTS pipeline_features (
				id TEXT PRIMARY KEY,
				operator TEXT NOT NULL DEFAULT '',
				status TEXT NOT NULL DEFAULT '',
				coordinates TEXT NOT NULL DEFAULT '',
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_pipeline_features_operator ON pipeline_features (operator, status);
		`,
	},
}

// MigrationManager manages database migrations
type MigrationManager struct {
	db             *sql.DB
	migrationsPath string
	log            logrus.FieldLogger
}

// NewMigrationManager creates a new migration manager. migrationsPath is an
// optional directory of NNN_name.sql files applied after the built-in schema.
func NewMigrationManager(db *sql.DB, migrationsPath string, log logrus.FieldLogger) *MigrationManager {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}
	return &MigrationManager{
		db:             db,
		migrationsPath: migrationsPath,
		log:            log,
	}
}

// InitMigrationsTable creates the migrations tracking table
func (m *MigrationManager) InitMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := m.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// GetAppliedMigrations returns a list of applied migration versions
func (m *MigrationManager) GetAppliedMigrations() (map[int]bool, error) {
	rows, err := m.db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

// LoadMigrations returns the built-in migrations plus any found in the
// migrations directory, sorted by version.
func (m *MigrationManager) LoadMigrations() ([]Migration, error) {
	migrations := append([]Migration(nil), Migrations...)

	if m.migrationsPath != "" {
		files, err := os.ReadDir(m.migrationsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read migrations directory: %w", err)
		}

		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
				continue
			}

			// e.g. "010_add_county_column.sql"
			var version int
			var name string
			if _, err := fmt.Sscanf(file.Name(), "%d_%s", &version, &name); err != nil {
				m.log.WithField("file", file.Name()).Warn("skipping migration file with invalid name")
				continue
			}

			content, err := os.ReadFile(filepath.Join(m.migrationsPath, file.Name()))
			if err != nil {
				return nil, fmt.Errorf("failed to read migration file %s: %w", file.Name(), err)
			}

			migrations = append(migrations, Migration{
				Version: version,
				Name:    strings.TrimSuffix(file.Name(), ".sql"),
				SQL:     string(content),
			})
		}
	}

	sort.SliceStable(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}

	return migrations, nil
}

// ApplyMigration applies a single migration
func (m *MigrationManager) ApplyMigration(migration Migration) error {
	err := Transaction(m.db, func(tx *sql.Tx) error {
		for _, stmt := range splitStatements(migration.SQL) {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("failed to execute migration %d: %w", migration.Version, err)
			}
		}
		if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", migration.Version, migration.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.log.WithFields(logrus.Fields{"version": migration.Version, "name": migration.Name}).Info("applied migration")
	return nil
}

// RunMigrations runs all pending migrations
func (m *MigrationManager) RunMigrations() error {
	if err := m.InitMigrationsTable(); err != nil {
		return err
	}

	applied, err := m.GetAppliedMigrations()
	if err != nil {
		return err
	}

	migrations, err := m.LoadMigrations()
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if applied[migration.Version] {
			m.log.WithField("version", migration.Version).Debug("skipping already applied migration")
			continue
		}

		if err := m.ApplyMigration(migration); err != nil {
			return err
		}
	}

	return nil
}

// splitStatements splits on ";". Migrations must not put semicolons inside
// string literals or triggers.
func splitStatements(sql string) []string {
	var out []string
	for _, s := range strings.Split(sql, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
