// Package migrations applies the embedded schema for each supported SQL dialect.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedded embed.FS

// Up brings the schema to the latest version. dir selects the dialect subtree.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) (int64, error) {
	const op = "storage.migrations.Up"

	fsys, err := fs.Sub(embedded, dir)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return 0, fmt.Errorf("%s: new provider: %w", op, err)
	}

	if _, err = provider.Up(ctx); err != nil {
		return 0, fmt.Errorf("%s: apply: %w", op, err)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: get version: %w", op, err)
	}

	return version, nil
}
