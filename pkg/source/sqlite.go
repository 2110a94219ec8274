package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/veslund/fleetdex/pkg/models"
)

// SQLite reads the catalog from a local sqlite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the catalog database at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// init creates the database schema.
func (s *SQLite) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS fleets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS vessels (
		id TEXT PRIMARY KEY,
		fleet_id TEXT NOT NULL REFERENCES fleets(id),
		name TEXT NOT NULL,
		class TEXT,
		flag TEXT,
		position INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_vessels_fleet ON vessels(fleet_id);

	CREATE TABLE IF NOT EXISTS inspections (
		vessel_id TEXT NOT NULL REFERENCES vessels(id),
		date TEXT NOT NULL,
		score TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_inspections_vessel ON inspections(vessel_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init catalog schema: %w", err)
	}
	return nil
}

// FetchCatalog returns every fleet with its vessels, both in stored order.
func (s *SQLite) FetchCatalog(ctx context.Context) ([]FleetRecord, error) {
	fleetRows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM fleets ORDER BY position, id")
	if err != nil {
		return nil, fmt.Errorf("query fleets: %w", err)
	}
	defer fleetRows.Close()

	var records []FleetRecord
	index := make(map[string]int)
	for fleetRows.Next() {
		var rec FleetRecord
		if err := fleetRows.Scan(&rec.ID, &rec.Name); err != nil {
			return nil, fmt.Errorf("scan fleet: %w", err)
		}
		index[rec.ID] = len(records)
		records = append(records, rec)
	}
	if err := fleetRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fleets: %w", err)
	}

	vesselRows, err := s.db.QueryContext(ctx,
		"SELECT id, fleet_id, name, class, flag FROM vessels ORDER BY position, id")
	if err != nil {
		return nil, fmt.Errorf("query vessels: %w", err)
	}
	defer vesselRows.Close()

	for vesselRows.Next() {
		var (
			rec         VesselRecord
			fleetID     string
			class, flag sql.NullString
		)
		if err := vesselRows.Scan(&rec.ID, &fleetID, &rec.Name, &class, &flag); err != nil {
			return nil, fmt.Errorf("scan vessel: %w", err)
		}

		meta := make(map[string]string)
		if class.Valid && class.String != "" {
			meta["class"] = class.String
		}
		if flag.Valid && flag.String != "" {
			meta["flag"] = flag.String
		}
		if len(meta) > 0 {
			rec.Meta = meta
		}

		i, ok := index[fleetID]
		if !ok {
			// Orphaned vessel; the tree builder cannot place it. Skip here
			// so catalog construction still sees only well-formed fleets.
			continue
		}
		records[i].Vessels = append(records[i].Vessels, rec)
	}
	if err := vesselRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vessels: %w", err)
	}

	return records, nil
}

// FetchInspections returns a vessel's inspection history in stored order.
func (s *SQLite) FetchInspections(ctx context.Context, vesselID string) ([]models.Inspection, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT date, score FROM inspections WHERE vessel_id = ? ORDER BY position, date", vesselID)
	if err != nil {
		return nil, fmt.Errorf("query inspections for %s: %w", vesselID, err)
	}
	defer rows.Close()

	results := []models.Inspection{}
	for rows.Next() {
		var ins models.Inspection
		if err := rows.Scan(&ins.Date, &ins.Score); err != nil {
			return nil, fmt.Errorf("scan inspection: %w", err)
		}
		results = append(results, ins)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inspections: %w", err)
	}

	return results, nil
}

// Seed replaces the database contents with the given catalog and inspection
// histories. Used by `fleetdex init --demo` and by tests.
func (s *SQLite) Seed(ctx context.Context, records []FleetRecord, inspections map[string][]models.Inspection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"inspections", "vessels", "fleets"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for fi, fleet := range records {
		if _, err := tx.Exec(
			"INSERT INTO fleets (id, name, position) VALUES (?, ?, ?)",
			fleet.ID, fleet.Name, fi); err != nil {
			return fmt.Errorf("insert fleet %s: %w", fleet.ID, err)
		}
		for vi, vessel := range fleet.Vessels {
			if _, err := tx.Exec(
				"INSERT INTO vessels (id, fleet_id, name, class, flag, position) VALUES (?, ?, ?, ?, ?, ?)",
				vessel.ID, fleet.ID, vessel.Name, vessel.Meta["class"], vessel.Meta["flag"], vi); err != nil {
				return fmt.Errorf("insert vessel %s: %w", vessel.ID, err)
			}
			for ii, ins := range inspections[vessel.ID] {
				if _, err := tx.Exec(
					"INSERT INTO inspections (vessel_id, date, score, position) VALUES (?, ?, ?, ?)",
					vessel.ID, ins.Date, ins.Score, ii); err != nil {
					return fmt.Errorf("insert inspection for %s: %w", vessel.ID, err)
				}
			}
		}
	}

	return tx.Commit()
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
