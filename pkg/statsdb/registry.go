package statsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// ErrUnknownDataset is returned for a league with no registered stats database.
var ErrUnknownDataset = errors.New("unknown stats dataset")

// leagueDatasets maps canonical league names to their database file name.
var leagueDatasets = map[string]string{
	"CEBL":       "cebl",
	"U SPORTS":   "usports",
	"CCAA":       "ccaa",
	"HoopQueens": "hoopqueens",
}

// DatasetForLeague resolves a league name to its dataset, case-insensitively.
func DatasetForLeague(league string) (string, error) {
	for name, dataset := range leagueDatasets {
		if strings.EqualFold(name, league) {
			return dataset, nil
		}
	}
	return "", fmt.Errorf("%w: no dataset for league %q", ErrUnknownDataset, league)
}

// Leagues returns the canonical league names in stable order.
func Leagues() []string {
	out := make([]string, 0, len(leagueDatasets))
	for name := range leagueDatasets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Registry opens per-league SQLite stats databases lazily and caches the
// handles for the life of the process.
type Registry struct {
	dir    string
	logger *log.Logger

	mu  sync.Mutex
	dbs map[string]*sql.DB
}

func NewRegistry(dir string, logger *log.Logger) *Registry {
	return &Registry{
		dir:    dir,
		logger: logger,
		dbs:    make(map[string]*sql.DB),
	}
}

// DB returns the handle for a dataset, opening it on first use.
func (r *Registry) DB(dataset string) (*sql.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if db, ok := r.dbs[dataset]; ok {
		return db, nil
	}

	known := false
	for _, d := range leagueDatasets {
		if d == dataset {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, dataset)
	}

	path := filepath.Join(r.dir, dataset+".db")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stats database for %q not found at %s: %w", dataset, path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open stats database %s: %w", path, err)
	}
	r.logger.Printf("[STATSDB] opened dataset %s (%s)", dataset, path)
	r.dbs[dataset] = db
	return db, nil
}

// Execute runs a guarded read-only query against a dataset and returns the
// rows as a list of column-name maps, preserving column order per row via
// the maps' shared key set.
func (r *Registry) Execute(ctx context.Context, dataset, query string, args ...any) ([]map[string]any, error) {
	if err := GuardQuery(query); err != nil {
		return nil, err
	}

	db, err := r.DB(dataset)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", dataset, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	out := make([]map[string]any, 0)
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			// modernc returns TEXT as []byte through the generic scanner
			if b, ok := vals[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = vals[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// Schema returns the CREATE statements of the user tables in a dataset,
// used to ground text-to-SQL prompts.
func (r *Registry) Schema(ctx context.Context, dataset string) (string, error) {
	rows, err := r.Execute(ctx, dataset,
		"SELECT sql FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, row := range rows {
		ddl, _ := row["sql"].(string)
		if ddl == "" {
			continue
		}
		b.WriteString(ddl)
		b.WriteString(";\n\n")
	}
	return strings.TrimSpace(b.String()), nil
}

// Close releases every opened handle. Safe to call more than once.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var firstErr error
	for dataset, db := range r.dbs {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(r.dbs, dataset)
	}
	return firstErr
}
