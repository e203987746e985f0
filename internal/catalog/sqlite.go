package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously
)

// SQLiteSource reads the catalog from a SQLite table.
type SQLiteSource struct {
	db    *sql.DB
	table string
}

// OpenSQLite opens the database at path.
func OpenSQLite(path, table string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	return &SQLiteSource{db: db, table: table}, nil
}

func (s *SQLiteSource) Records(ctx context.Context) ([]Record, error) {
	query, err := selectQuery(s.table)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog query failed: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			title, artist, genre             sql.NullString
			popularity                       sql.NullInt64
			danceability, energy, tempo, val sql.NullFloat64
		)
		if err := rows.Scan(&title, &artist, &genre, &popularity, &danceability, &energy, &tempo, &val); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		records = append(records, Record{
			Title:        nullString(title),
			Artist:       nullString(artist),
			Genre:        nullString(genre),
			Popularity:   nullInt(popularity),
			Danceability: nullFloat(danceability),
			Energy:       nullFloat(energy),
			Tempo:        nullFloat(tempo),
			Valence:      nullFloat(val),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog rows: %w", err)
	}

	return records, nil
}

func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
