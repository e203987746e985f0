package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVSource reads a catalog from a CSV file with a header row. Columns are
// matched by name; extra columns are ignored.
type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) Records(ctx context.Context) ([]Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	return ReadCSV(ctx, f)
}

func (s *CSVSource) Close() error { return nil }

// ReadCSV parses catalog records from r.
func ReadCSV(ctx context.Context, r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, col := range Columns {
		if _, ok := positions[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	field := func(row []string, col string) (string, bool) {
		i := positions[col]
		if i >= len(row) {
			return "", false
		}
		v := strings.TrimSpace(row[i])
		return v, v != ""
	}
	text := func(row []string, col string) *string {
		v, ok := field(row, col)
		if !ok {
			return nil
		}
		return &v
	}
	number := func(row []string, col string) *float64 {
		v, ok := field(row, col)
		if !ok {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		return &f
	}
	integer := func(row []string, col string) *int {
		f := number(row, col)
		if f == nil {
			return nil
		}
		i := int(*f)
		return &i
	}

	var records []Record
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		records = append(records, Record{
			Title:        text(row, "track_name"),
			Artist:       text(row, "artists"),
			Genre:        text(row, "track_genre"),
			Popularity:   integer(row, "popularity"),
			Danceability: number(row, "danceability"),
			Energy:       number(row, "energy"),
			Tempo:        number(row, "tempo"),
			Valence:      number(row, "valence"),
		})
	}

	return records, nil
}
