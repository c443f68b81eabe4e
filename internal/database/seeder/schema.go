package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tutor-board/internal/database"
)

// ErrSchemaMismatch marks a seed target missing columns its seeder writes.
var ErrSchemaMismatch = errors.New("schema mismatch")

// demandTableColumns are the tutoring_demands columns DemandSeeder writes.
var demandTableColumns = []string{
	"id", "title", "city", "district", "grade", "subject",
	"salary_min", "salary_max", "published_at", "description", "location",
}

// EnsureTableColumns guards a seeder against the live schema. DemandSeeder
// calls it before opening its transaction, so seeding an unmigrated or older
// tutoring_demands table fails with every missing column named and no rows
// written. Only the public schema is consulted.
func EnsureTableColumns(ctx context.Context, db database.Querier, table string, columns ...string) error {
	if db == nil {
		return database.ErrNilDB
	}
	if table == "" || len(columns) == 0 {
		return fmt.Errorf("seed guard needs a table and columns")
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	present := make(map[string]bool, len(columns))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("inspect %s: %w", table, err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}

	var missing []string
	for _, col := range columns {
		if col == "" {
			return fmt.Errorf("seed guard for %s lists an empty column", table)
		}
		if !present[col] {
			missing = append(missing, table+"."+col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing column %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return nil
}
