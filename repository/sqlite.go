package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sujal3184/DelhiMetroNavigationApp/internal/network"
	"github.com/sujal3184/DelhiMetroNavigationApp/models"

	_ "modernc.org/sqlite"
)

//go:embed schema_sqlite.sql
var sqliteSchema string

// Fixed-width so timestamps sort correctly as text
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteDB wraps a SQL database connection for SQLite
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB creates a new SQLite database connection
func NewSQLiteDB(dbPath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The network is written rarely and read once at startup
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *SQLiteDB) GetDB() *sql.DB {
	return s.db
}

// EnsureSchema creates the network tables if they don't exist
func (s *SQLiteDB) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SQLiteNetworkRepository stores network snapshots in SQLite
type SQLiteNetworkRepository struct {
	db      *sql.DB
	writeMu sync.Mutex
}

// NewSQLiteNetworkRepository creates a new SQLiteNetworkRepository
func NewSQLiteNetworkRepository(db *sql.DB) *SQLiteNetworkRepository {
	return &SQLiteNetworkRepository{db: db}
}

// SaveNetwork writes a complete snapshot in one transaction and returns its id
func (r *SQLiteNetworkRepository) SaveNetwork(ctx context.Context, source string, stations []network.Station, connections []network.Connection) (uuid.UUID, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	snapshotID := uuid.New()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO network_snapshots (snapshot_id, source, created_at) VALUES (?, ?, ?)`,
		snapshotID.String(), source, time.Now().UTC().Format(sqliteTimeLayout),
	); err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stationStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO stations (snapshot_id, station_id, name, lines, position) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to prepare station insert: %w", err)
	}
	defer stationStmt.Close()

	for i, s := range stations {
		lines, err := encodeLines(s.Lines)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to encode lines of station %s: %w", s.ID, err)
		}
		if _, err := stationStmt.ExecContext(ctx, snapshotID.String(), s.ID, s.Name, lines, i); err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert station %s: %w", s.ID, err)
		}
	}

	connStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO connections (snapshot_id, position, from_station, to_station, line, time_mins) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to prepare connection insert: %w", err)
	}
	defer connStmt.Close()

	for i, c := range connections {
		if _, err := connStmt.ExecContext(ctx, snapshotID.String(), i, c.FromStation, c.ToStation, c.Line, c.TimeMins); err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert connection %s-%s: %w", c.FromStation, c.ToStation, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return snapshotID, nil
}

// LoadNetwork returns the most recently saved snapshot
func (r *SQLiteNetworkRepository) LoadNetwork(ctx context.Context) (*models.NetworkSnapshot, error) {
	var idStr, createdStr string
	snap := &models.NetworkSnapshot{}

	err := r.db.QueryRowContext(ctx, `
		SELECT snapshot_id, source, created_at
		FROM network_snapshots
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`).Scan(&idStr, &snap.Source, &createdStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to fetch latest snapshot: %w", err)
	}

	if snap.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("invalid snapshot id %q: %w", idStr, err)
	}
	if t := parseTimeString(&createdStr); t != nil {
		snap.CreatedAt = *t
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT station_id, name, lines
		FROM stations
		WHERE snapshot_id = ?
		ORDER BY position
	`, idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s network.Station
		var lines string
		if err := rows.Scan(&s.ID, &s.Name, &lines); err != nil {
			return nil, fmt.Errorf("failed to scan station row: %w", err)
		}
		if s.Lines, err = decodeLines(lines); err != nil {
			return nil, fmt.Errorf("invalid lines for station %s: %w", s.ID, err)
		}
		snap.Stations = append(snap.Stations, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating station rows: %w", err)
	}

	connRows, err := r.db.QueryContext(ctx, `
		SELECT from_station, to_station, line, time_mins
		FROM connections
		WHERE snapshot_id = ?
		ORDER BY position
	`, idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}
	defer connRows.Close()

	for connRows.Next() {
		var c network.Connection
		if err := connRows.Scan(&c.FromStation, &c.ToStation, &c.Line, &c.TimeMins); err != nil {
			return nil, fmt.Errorf("failed to scan connection row: %w", err)
		}
		snap.Connections = append(snap.Connections, c)
	}
	if err := connRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating connection rows: %w", err)
	}

	return snap, nil
}

// parseTimeString converts an RFC3339 string to *time.Time
// Returns nil if the input is nil or empty
func parseTimeString(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return nil
	}
	return &t
}

// Lines are stored as a JSON array so names may contain any character
func encodeLines(lines []string) (string, error) {
	if lines == nil {
		lines = []string{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeLines(s string) ([]string, error) {
	lines := []string{}
	if s == "" {
		return lines, nil
	}
	if err := json.Unmarshal([]byte(s), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}
