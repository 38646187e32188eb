package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"tracklet/internal/track"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the registry snapshot in a SQLite database. The
// whole snapshot is small (one user's tasks), so Save replaces it in a
// single transaction rather than diffing rows.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database and runs
// migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// WAL mode keeps readers from blocking the post-command save
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// migrate runs idempotent schema migrations.
func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		project TEXT,
		life_area TEXT,
		is_active INTEGER NOT NULL DEFAULT 0,
		start_time TEXT,
		total_seconds REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS task_tags (
		task_position INTEGER NOT NULL,
		ord INTEGER NOT NULL,
		tag TEXT NOT NULL,
		FOREIGN KEY (task_position) REFERENCES tasks(position)
	);

	CREATE TABLE IF NOT EXISTS daily_entries (
		task_position INTEGER NOT NULL,
		day TEXT NOT NULL,
		seconds REAL NOT NULL,
		UNIQUE (task_position, day),
		FOREIGN KEY (task_position) REFERENCES tasks(position)
	);

	CREATE TABLE IF NOT EXISTS taxonomy (
		kind TEXT NOT NULL,
		ord INTEGER NOT NULL,
		value TEXT NOT NULL,
		UNIQUE (kind, value)
	);

	CREATE INDEX IF NOT EXISTS idx_daily_entries_task ON daily_entries(task_position);
	CREATE INDEX IF NOT EXISTS idx_task_tags_task ON task_tags(task_position);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Save replaces the stored snapshot with the registry's current state.
func (s *SQLiteStore) Save(r *track.Registry) error {
	rec := track.ToRecord(r)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"daily_entries", "task_tags", "tasks", "taxonomy"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for pos, tr := range rec.Tasks {
		_, err := tx.Exec(
			`INSERT INTO tasks (position, name, project, life_area, is_active, start_time, total_seconds)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			pos, tr.Name, tr.Project, tr.LifeArea, tr.IsActive, tr.StartTime, tr.TotalTime,
		)
		if err != nil {
			return fmt.Errorf("insert task %q: %w", tr.Name, err)
		}
		for ord, tag := range tr.Tags {
			if _, err := tx.Exec(
				`INSERT INTO task_tags (task_position, ord, tag) VALUES (?, ?, ?)`,
				pos, ord, tag,
			); err != nil {
				return fmt.Errorf("insert tag %q: %w", tag, err)
			}
		}
		for day, secs := range tr.DailyTime {
			if _, err := tx.Exec(
				`INSERT INTO daily_entries (task_position, day, seconds) VALUES (?, ?, ?)`,
				pos, day, secs,
			); err != nil {
				return fmt.Errorf("insert daily entry %s: %w", day, err)
			}
		}
	}

	sets := []struct {
		kind   string
		values []string
	}{
		{"project", rec.Projects},
		{"tag", rec.Tags},
		{"life_area", rec.LifeAreas},
	}
	for _, set := range sets {
		for ord, value := range set.values {
			if _, err := tx.Exec(
				`INSERT INTO taxonomy (kind, ord, value) VALUES (?, ?, ?)`,
				set.kind, ord, value,
			); err != nil {
				return fmt.Errorf("insert taxonomy %s %q: %w", set.kind, value, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Load rebuilds the registry from the stored snapshot. The record-level
// corruption recovery (multiple actives, bad timestamps) lives in the
// codec, not here.
func (s *SQLiteStore) Load() (*track.Registry, error) {
	rec := &track.Record{
		Tasks:     []track.TaskRecord{},
		Projects:  []string{},
		Tags:      []string{},
		LifeAreas: []string{},
	}

	rows, err := s.db.Query(
		`SELECT position, name, project, life_area, is_active, start_time, total_seconds
		 FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	positions := []int{}
	for rows.Next() {
		var pos int
		var tr track.TaskRecord
		if err := rows.Scan(&pos, &tr.Name, &tr.Project, &tr.LifeArea, &tr.IsActive, &tr.StartTime, &tr.TotalTime); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tr.Tags = []string{}
		tr.DailyTime = map[string]float64{}
		rec.Tasks = append(rec.Tasks, tr)
		positions = append(positions, pos)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	for i, pos := range positions {
		tags, err := s.taskTags(pos)
		if err != nil {
			return nil, err
		}
		daily, err := s.taskDaily(pos)
		if err != nil {
			return nil, err
		}
		rec.Tasks[i].Tags = tags
		rec.Tasks[i].DailyTime = daily
	}

	for _, set := range []struct {
		kind string
		dst  *[]string
	}{
		{"project", &rec.Projects},
		{"tag", &rec.Tags},
		{"life_area", &rec.LifeAreas},
	} {
		values, err := s.taxonomyValues(set.kind)
		if err != nil {
			return nil, err
		}
		*set.dst = values
	}

	return track.FromRecord(rec), nil
}

func (s *SQLiteStore) taskTags(pos int) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT tag FROM task_tags WHERE task_position = ? ORDER BY ord`, pos)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (s *SQLiteStore) taskDaily(pos int) (map[string]float64, error) {
	rows, err := s.db.Query(
		`SELECT day, seconds FROM daily_entries WHERE task_position = ?`, pos)
	if err != nil {
		return nil, fmt.Errorf("query daily entries: %w", err)
	}
	defer rows.Close()

	daily := map[string]float64{}
	for rows.Next() {
		var day string
		var secs float64
		if err := rows.Scan(&day, &secs); err != nil {
			return nil, fmt.Errorf("scan daily entry: %w", err)
		}
		daily[day] = secs
	}
	return daily, rows.Err()
}

func (s *SQLiteStore) taxonomyValues(kind string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT value FROM taxonomy WHERE kind = ? ORDER BY ord`, kind)
	if err != nil {
		return nil, fmt.Errorf("query taxonomy: %w", err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan taxonomy value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
