// Package sqlite backs the invoicing service with a single SQLite database:
// the append-only invoices table plus the two reference tables the pricer
// reads (tax rates by state, processing fees by item type).
//
// WAL mode is enabled on Open so invoice reads never block the writer.
package sqlite

import (
	"database/sql"
	"fmt"

	// Register the pure-Go SQLite driver. modernc.org/sqlite avoids CGO,
	// which keeps the Docker build on Alpine simple.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup, idempotent via IF NOT EXISTS.
// Monetary columns are TEXT holding exact decimal strings; storing them as
// REAL would reintroduce the binary-float rounding the decimal type exists
// to prevent.
const schema = `
CREATE TABLE IF NOT EXISTS invoices (
    -- Invoice identity, assigned on insert.
    id              INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Customer name and shipping address as captured on the request.
    name            TEXT    NOT NULL,
    street          TEXT    NOT NULL,
    city            TEXT    NOT NULL,
    state           TEXT    NOT NULL,
    zipcode         TEXT    NOT NULL,

    -- What was bought.
    item_type       TEXT    NOT NULL,
    item_id         INTEGER NOT NULL,
    quantity        INTEGER NOT NULL,

    -- Money, as exact 2-decimal strings.
    unit_price      TEXT    NOT NULL,
    subtotal        TEXT    NOT NULL,
    tax             TEXT    NOT NULL,
    processing_fee  TEXT    NOT NULL,
    total           TEXT    NOT NULL,

    -- RFC3339 stored as TEXT, SQLite idiom.
    created_at      TEXT    NOT NULL
);

-- The customer-name listing is the only filtered query.
CREATE INDEX IF NOT EXISTS idx_invoices_name ON invoices(name);

CREATE TABLE IF NOT EXISTS tax_rates (
    state  TEXT PRIMARY KEY,
    rate   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS processing_fees (
    item_type  TEXT PRIMARY KEY,
    fee        TEXT NOT NULL
);
`

// seed loads the reference tables. INSERT OR IGNORE keeps restarts and
// operator overrides safe: an existing row is never overwritten.
const seed = `
INSERT OR IGNORE INTO processing_fees (item_type, fee) VALUES
    ('Console', '14.99'),
    ('Game',    '1.49'),
    ('T-Shirt', '1.98');

INSERT OR IGNORE INTO tax_rates (state, rate) VALUES
    ('AK','0.06'), ('AL','0.05'), ('AR','0.06'), ('AZ','0.04'), ('CA','0.06'),
    ('CO','0.04'), ('CT','0.03'), ('DC','0.05'), ('DE','0.05'), ('FL','0.06'),
    ('GA','0.07'), ('HI','0.05'), ('IA','0.04'), ('ID','0.03'), ('IL','0.05'),
    ('IN','0.05'), ('KS','0.06'), ('KY','0.04'), ('LA','0.05'), ('MA','0.05'),
    ('MD','0.07'), ('ME','0.03'), ('MI','0.06'), ('MN','0.06'), ('MO','0.05'),
    ('MS','0.05'), ('MT','0.03'), ('NC','0.05'), ('ND','0.05'), ('NE','0.04'),
    ('NH','0.06'), ('NJ','0.05'), ('NM','0.05'), ('NV','0.04'), ('NY','0.08'),
    ('OH','0.04'), ('OK','0.04'), ('OR','0.07'), ('PA','0.06'), ('RI','0.06'),
    ('SC','0.06'), ('SD','0.06'), ('TN','0.05'), ('TX','0.03'), ('UT','0.04'),
    ('VA','0.06'), ('VT','0.07'), ('WA','0.05'), ('WI','0.03'), ('WV','0.05'),
    ('WY','0.04');
`

// Store owns the database handle shared by the invoice and rate
// repositories.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at the given path, applies the
// schema, and seeds the reference tables.
//
//	store, err := sqlite.Open("./data/invoicing.db")
func Open(path string) (*Store, error) {
	// WAL enables concurrent readers; busy_timeout waits for locks instead
	// of failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	// "sqlite", not "sqlite3", for the modernc driver.
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	if _, err := db.Exec(seed); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: seed reference tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle. Call it with defer in main().
func (s *Store) Close() error {
	return s.db.Close()
}
