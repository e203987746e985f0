package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of a pgx pool used to read the catalog.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads the catalog from a PostgreSQL table.
type PostgresSource struct {
	db    Querier
	table string
	close func()
}

// NewPostgresSource wraps an existing querier. Close is a no-op.
func NewPostgresSource(db Querier, table string) *PostgresSource {
	return &PostgresSource{db: db, table: table, close: func() {}}
}

// OpenPostgres connects a pool to dsn and verifies it.
func OpenPostgres(ctx context.Context, dsn, table string) (*PostgresSource, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	return &PostgresSource{db: pool, table: table, close: pool.Close}, nil
}

func (s *PostgresSource) Records(ctx context.Context) ([]Record, error) {
	query, err := selectQuery(s.table)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog query failed: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(
			&r.Title,
			&r.Artist,
			&r.Genre,
			&r.Popularity,
			&r.Danceability,
			&r.Energy,
			&r.Tempo,
			&r.Valence,
		); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog rows: %w", err)
	}

	return records, nil
}

func (s *PostgresSource) Close() error {
	s.close()
	return nil
}
