package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rpgshelf/shelf/pkg/types"
)

// storeFile is one entity store on disk.
type storeFile struct {
	name string
	path string
	db   *sql.DB
	err  error // open failure, nil when db is usable
}

// dsn builds the modernc connection string for a store file.
func dsn(path string, readOnly bool) string {
	q := "?_pragma=busy_timeout(5000)"
	if readOnly {
		q += "&mode=ro"
	}
	return "file:" + path + q
}

// openStore opens the database at path and creates the tables and columns
// of the named store. One connection per file keeps writes serialized.
func openStore(path, store string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn(path, false))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := applySchema(db, store); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// applySchema runs the store's DDL, then adds any column that an older
// file is missing, then ensures the version table exists.
func applySchema(db *sql.DB, store string) error {
	ddl, err := schemaFor(store)
	if err != nil {
		return err
	}
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("creating %s schema: %w", store, err)
	}
	for table, cols := range addedColumns[store] {
		if err := ensureColumns(db, table, cols); err != nil {
			return err
		}
	}
	if _, err := db.Exec(versionTableSQL); err != nil {
		return fmt.Errorf("creating %s version table: %w", store, err)
	}
	return nil
}

// column is a column added after the first release of a table.
type column struct {
	name string
	decl string
}

// addedColumns lists, per store and table, the columns that files created by
// older releases may lack.
var addedColumns = map[string]map[string][]column{
	types.PublishersStore: {
		"publishers": {{"country", "TEXT"}},
	},
	types.PlayersStore: {
		"players": {
			{"is_primary", "INTEGER NOT NULL DEFAULT 0"},
			{"notable", "INTEGER NOT NULL DEFAULT 0"},
		},
	},
	types.SystemsStore: {
		"systems": {
			{"play_status", "TEXT DEFAULT 'Not played'"},
			{"collection_status", "TEXT DEFAULT 'Owned'"},
			{"purchase_price", "REAL"},
			{"purchase_currency", "TEXT"},
			{"sale_price", "REAL"},
			{"sale_currency", "TEXT"},
			{"vtt", "TEXT"},
		},
	},
}

// ensureColumns adds every column in cols that table does not have yet.
func ensureColumns(db *sql.DB, table string, cols []column) error {
	existing, err := tableColumns(db, table)
	if err != nil {
		return err
	}
	for _, c := range cols {
		if existing[c.name] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, c.name, c.decl)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("adding column %s.%s: %w", table, c.name, err)
		}
	}
	return nil
}

// tableColumns returns the set of column names of table.
func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("scanning column of %s: %w", table, err)
		}
		cols[strings.ToLower(name)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns of %s: %w", table, err)
	}
	return cols, nil
}

// nullString maps "" to NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullInt maps a nil id to NULL.
func nullInt(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

// nullFloat maps a nil price to NULL.
func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func intPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
