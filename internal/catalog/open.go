package catalog

import (
	"context"
	"fmt"

	"github.com/temcen/songmatch/internal/config"
)

// Open creates the source selected by cfg.Source.
func Open(ctx context.Context, cfg config.CatalogConfig) (Source, error) {
	switch cfg.Source {
	case "", "csv":
		return NewCSVSource(cfg.Path), nil
	case "sqlite":
		return OpenSQLite(cfg.Path, cfg.Table)
	case "postgres":
		if cfg.ConnectTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
			defer cancel()
		}
		return OpenPostgres(ctx, cfg.DSN, cfg.Table)
	default:
		return nil, fmt.Errorf("catalog: unknown source %q", cfg.Source)
	}
}
