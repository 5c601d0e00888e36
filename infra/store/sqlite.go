package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/depotops/crewboard/core/model"
)

// SQLiteStore persists the board to a SQLite database. Items and crews
// are stored as JSON records with the columns needed for ordering and
// lookup alongside.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures the
// schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS schedule_items (
        id TEXT PRIMARY KEY,
        day TEXT,
        crew_id TEXT,
        record TEXT
    );
    CREATE TABLE IF NOT EXISTS crews (
        id TEXT PRIMARY KEY,
        pos INTEGER,
        record TEXT
    );
    CREATE TABLE IF NOT EXISTS employees (
        id TEXT PRIMARY KEY,
        record TEXT
    );
    CREATE TABLE IF NOT EXISTS vehicles (
        id TEXT PRIMARY KEY,
        record TEXT
    );
    CREATE INDEX IF NOT EXISTS idx_items_day ON schedule_items(day);
    CREATE INDEX IF NOT EXISTS idx_items_crew ON schedule_items(crew_id);`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) CreateItem(ctx context.Context, it model.ScheduleItem) error {
	b, err := json.Marshal(it)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO schedule_items (id, day, crew_id, record) VALUES (?, ?, ?, ?)`,
		it.ID, it.Day().Format("2006-01-02"), it.CrewID, string(b))
	return err
}

func (s *SQLiteStore) UpdateItem(ctx context.Context, it model.ScheduleItem) error {
	b, err := json.Marshal(it)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE schedule_items SET day = ?, crew_id = ?, record = ? WHERE id = ?`,
		it.Day().Format("2006-01-02"), it.CrewID, string(b), it.ID)
	if err != nil {
		return err
	}
	return requireRows(res, it.ID)
}

func (s *SQLiteStore) DeleteItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM schedule_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRows(res, id)
}

func (s *SQLiteStore) CreateCrew(ctx context.Context, c model.Crew) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO crews (id, pos, record) VALUES (?, (SELECT COALESCE(MAX(pos), 0) + 1 FROM crews), ?)`,
		c.ID, string(b))
	return err
}

func (s *SQLiteStore) ArchiveCrew(ctx context.Context, crewID string, at time.Time) error {
	row := s.db.QueryRowContext(ctx, `SELECT record FROM crews WHERE id = ?`, crewID)
	var rec string
	if err := row.Scan(&rec); err != nil {
		return fmt.Errorf("crew %s: %w", crewID, err)
	}
	var c model.Crew
	if err := json.Unmarshal([]byte(rec), &c); err != nil {
		return err
	}
	c.ArchivedAt = &at
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `UPDATE crews SET record = ? WHERE id = ?`, string(b), crewID)
	return err
}

func (s *SQLiteStore) MoveItemsToCrew(ctx context.Context, itemIDs []string, crewID string) error {
	for _, id := range itemIDs {
		row := s.db.QueryRowContext(ctx, `SELECT record FROM schedule_items WHERE id = ?`, id)
		var rec string
		if err := row.Scan(&rec); err != nil {
			return fmt.Errorf("item %s: %w", id, err)
		}
		var it model.ScheduleItem
		if err := json.Unmarshal([]byte(rec), &it); err != nil {
			return err
		}
		it.CrewID = crewID
		if err := s.UpdateItem(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) PutEmployee(ctx context.Context, e model.Employee) error {
	return s.putRecord(ctx, "employees", e.ID, e)
}

func (s *SQLiteStore) PutVehicle(ctx context.Context, v model.Vehicle) error {
	return s.putRecord(ctx, "vehicles", v.ID, v)
}

func (s *SQLiteStore) putRecord(ctx context.Context, table, id string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO `+table+` (id, record) VALUES (?, ?)
         ON CONFLICT(id) DO UPDATE SET record = excluded.record`,
		id, string(b))
	return err
}

func (s *SQLiteStore) Items(ctx context.Context) ([]model.ScheduleItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT record FROM schedule_items ORDER BY day, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []model.ScheduleItem
	for rows.Next() {
		var rec string
		if err := rows.Scan(&rec); err != nil {
			return nil, err
		}
		var it model.ScheduleItem
		if err := json.Unmarshal([]byte(rec), &it); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Crews(ctx context.Context) ([]model.Crew, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT record FROM crews ORDER BY pos`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []model.Crew
	for rows.Next() {
		var rec string
		if err := rows.Scan(&rec); err != nil {
			return nil, err
		}
		var c model.Crew
		if err := json.Unmarshal([]byte(rec), &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Employees(ctx context.Context) ([]model.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT record FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []model.Employee
	for rows.Next() {
		var rec string
		if err := rows.Scan(&rec); err != nil {
			return nil, err
		}
		var e model.Employee
		if err := json.Unmarshal([]byte(rec), &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Vehicles(ctx context.Context) ([]model.Vehicle, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT record FROM vehicles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []model.Vehicle
	for rows.Next() {
		var rec string
		if err := rows.Scan(&rec); err != nil {
			return nil, err
		}
		var v model.Vehicle
		if err := json.Unmarshal([]byte(rec), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

var _ Store = (*SQLiteStore)(nil)

func requireRows(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("item %s not found", id)
	}
	return nil
}
