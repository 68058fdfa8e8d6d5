// Package backup writes JSON snapshots of the database for offsite keeping.
// Snapshots are write only, there is no restore path.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/velostock/velostock/business/sdk/sqldb"
)

// Tables captured by a snapshot, in dependency order.
var tables = []string{
	"companies",
	"users",
	"vehicles",
	"vehicle_history",
	"vehicle_observations",
	"vehicle_documents",
	"vehicle_costs",
	"leads",
	"bills",
}

// Snapshot dumps every table to a single JSON file named
// backup-<reason>-<timestamp>.json under dir and returns the file path.
// Image blobs are excluded, they dominate the dump size and exist on the
// vehicle record authoritatively.
func Snapshot(ctx context.Context, db *sqlx.DB, dir string, reason string) (string, error) {
	if err := sqldb.StatusCheck(ctx, db); err != nil {
		return "", fmt.Errorf("status check database: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}

	dump := make(map[string][]map[string]any, len(tables))

	for _, table := range tables {
		rows, err := dumpTable(ctx, db, table)
		if err != nil {
			return "", fmt.Errorf("dump table %q: %w", table, err)
		}
		dump[table] = rows
	}

	name := fmt.Sprintf("backup-%s-%s.json", reason, time.Now().UTC().Format(time.RFC3339))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dump); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	return path, nil
}

func dumpTable(ctx context.Context, db *sqlx.DB, table string) ([]map[string]any, error) {
	rows, err := db.QueryxContext(ctx, fmt.Sprintf(`SELECT * FROM "public".%q`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		out = append(out, row)
	}

	return out, rows.Err()
}
