package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sujal3184/DelhiMetroNavigationApp/internal/network"
	"github.com/sujal3184/DelhiMetroNavigationApp/models"
)

//go:embed schema_postgres.sql
var postgresSchema string

// PostgresNetworkRepository stores network snapshots in PostgreSQL
type PostgresNetworkRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresNetworkRepository(ctx context.Context, databaseURL string) (*PostgresNetworkRepository, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresNetworkRepository{pool: pool}, nil
}

func (r *PostgresNetworkRepository) Close() {
	r.pool.Close()
}

func (r *PostgresNetworkRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (r *PostgresNetworkRepository) SaveNetwork(ctx context.Context, source string, stations []network.Station, connections []network.Connection) (uuid.UUID, error) {
	snapshotID := uuid.New()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO network_snapshots (snapshot_id, source) VALUES ($1, $2)`,
		snapshotID, source,
	); err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	batch := &pgx.Batch{}
	for i, s := range stations {
		batch.Queue(
			`INSERT INTO stations (snapshot_id, station_id, name, lines, position) VALUES ($1, $2, $3, $4, $5)`,
			snapshotID, s.ID, s.Name, s.Lines, i,
		)
	}
	for i, c := range connections {
		batch.Queue(
			`INSERT INTO connections (snapshot_id, position, from_station, to_station, line, time_mins) VALUES ($1, $2, $3, $4, $5, $6)`,
			snapshotID, i, c.FromStation, c.ToStation, c.Line, c.TimeMins,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert network rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return snapshotID, nil
}

func (r *PostgresNetworkRepository) LoadNetwork(ctx context.Context) (*models.NetworkSnapshot, error) {
	snap := &models.NetworkSnapshot{}

	err := r.pool.QueryRow(ctx, `
		SELECT snapshot_id, source, created_at
		FROM network_snapshots
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&snap.ID, &snap.Source, &snap.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to fetch latest snapshot: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT station_id, name, lines
		FROM stations
		WHERE snapshot_id = $1
		ORDER BY position
	`, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s network.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.Lines); err != nil {
			return nil, fmt.Errorf("failed to scan station row: %w", err)
		}
		snap.Stations = append(snap.Stations, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating station rows: %w", err)
	}

	connRows, err := r.pool.Query(ctx, `
		SELECT from_station, to_station, line, time_mins
		FROM connections
		WHERE snapshot_id = $1
		ORDER BY position
	`, snap.ID)
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
