// Package store persists fetched tide days in a local sqlite file so a
// restart can light the display without waiting on the network.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/coastalhacks/tideclock/pkg/noaa"
	"github.com/coastalhacks/tideclock/pkg/tide"
	"github.com/coastalhacks/tideclock/pkg/timetricks"
)

const sampleTimeFormat = "2006-01-02 15:04"

// Store wraps the database connection.
type Store struct {
	conn *sql.DB
}

// Open creates a new database connection and initializes the schema.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tide_samples (
		day TEXT NOT NULL,
		station INTEGER NOT NULL,
		hour INTEGER NOT NULL,
		sample_time TEXT NOT NULL,
		height REAL NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (day, station, hour)
	);
	CREATE INDEX IF NOT EXISTS idx_tide_samples_day ON tide_samples(day);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// SaveDay replaces the stored samples for a station's calendar day.
func (s *Store) SaveDay(station noaa.Station, day time.Time, series tide.Series) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO tide_samples (day, station, hour, sample_time, height, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`
	dayStr := timetricks.UniqueDay(day)
	createdAt := time.Now().UTC().Format(time.RFC3339)

	for i, sample := range series {
		_, err := tx.Exec(query,
			dayStr,
			int(station),
			i,
			sample.Time.Format(sampleTimeFormat),
			sample.Height,
			createdAt)
		if err != nil {
			return fmt.Errorf("inserting sample %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// LoadDay retrieves the stored series for a station's calendar day. A day
// with no rows returns a nil series and no error.
func (s *Store) LoadDay(station noaa.Station, day time.Time) (tide.Series, error) {
	query := `
	SELECT sample_time, height
	FROM tide_samples
	WHERE day = ? AND station = ?
	ORDER BY hour
	`

	rows, err := s.conn.Query(query, timetricks.UniqueDay(day), int(station))
	if err != nil {
		return nil, fmt.Errorf("querying samples: %w", err)
	}
	defer rows.Close()

	var series tide.Series
	for rows.Next() {
		var timeStr string
		var height float64
		if err := rows.Scan(&timeStr, &height); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		sampleTime, err := time.ParseInLocation(sampleTimeFormat, timeStr, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parsing sample_time: %w", err)
		}
		series = append(series, tide.Sample{Time: sampleTime, Height: height})
	}

	return series, rows.Err()
}

// Prune drops samples from days before the cutoff.
func (s *Store) Prune(before time.Time) error {
	_, err := s.conn.Exec(`DELETE FROM tide_samples WHERE day < ?`, timetricks.UniqueDay(before))
	if err != nil {
		return fmt.Errorf("pruning samples: %w", err)
	}
	return nil
}
