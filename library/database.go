package library

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"
)

// driverName is go-sqlite3 with a fold(text) SQL function added to every
// connection. SQLite's LIKE and lower() only fold ASCII letters.
const driverName = "sqlite3_lending"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("fold", foldCase, true)
		},
	})
}

// Database owns the SQLite handle that every repository shares.
type Database struct {
	db  *sql.DB
	log *log.Logger
}

// NewDatabase opens (or creates) the SQLite database at dbPath and makes sure
// the schema exists.
func NewDatabase(dbPath string) (*Database, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	// Enable busy_timeout and foreign keys; cascades on book_authors depend on the latter.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One local user, one file: a single connection keeps the foreign_keys
	// pragma and file locking predictable.
	db.SetMaxOpenConns(1)

	// WAL lets an external viewer read the file while we write.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	database := &Database{db: db, log: log.Default()}
	if err := database.EnsureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return database, nil
}

// SetLogger replaces the logger used for engine diagnostics. A nil logger
// restores the standard one.
func (d *Database) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	d.log = l
}

// Close releases the underlying handle.
func (d *Database) Close() error { return d.db.Close() }

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

// schemaTables lists the tables EnsureSchema creates, in dependency order.
var schemaTables = []string{"books", "authors", "book_authors", "members", "loans"}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS books (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        title TEXT NOT NULL,
        isbn TEXT,
        year_published INTEGER NOT NULL
    );`,
	`CREATE TABLE IF NOT EXISTS authors (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        first_name TEXT NOT NULL,
        last_name TEXT NOT NULL
    );`,
	`CREATE TABLE IF NOT EXISTS book_authors (
        book_id INTEGER NOT NULL REFERENCES books(id) ON DELETE CASCADE,
        author_id INTEGER NOT NULL REFERENCES authors(id) ON DELETE CASCADE,
        PRIMARY KEY (book_id, author_id)
    );`,
	`CREATE TABLE IF NOT EXISTS members (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        first_name TEXT NOT NULL,
        last_name TEXT NOT NULL,
        email TEXT NOT NULL,
        category TEXT NOT NULL
    );`,
	`CREATE TABLE IF NOT EXISTS loans (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        book_id INTEGER NOT NULL REFERENCES books(id),
        member_id INTEGER NOT NULL REFERENCES members(id),
        loan_date TEXT NOT NULL,
        due_date TEXT NOT NULL,
        return_date TEXT
    );`,
}

// EnsureSchema creates any missing table. Existing tables are left alone, so
// calling it again is a no-op.
func (d *Database) EnsureSchema() error {
	for i, stmt := range schemaStatements {
		if _, err := d.db.Exec(stmt); err != nil {
			return d.fail("create table "+schemaTables[i], err)
		}
	}
	return nil
}

// Tables returns the user tables currently present, sorted by name.
func (d *Database) Tables() ([]string, error) {
	rows, err := d.db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, d.fail("list tables", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, d.fail("list tables", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, d.fail("list tables", err)
	}
	return names, nil
}

// fail logs the engine error for op and hands back an ErrStorage that does
// not leak it.
func (d *Database) fail(op string, err error) error {
	d.log.Printf("library: %s: %v", op, err)
	return fmt.Errorf("%w: %s", ErrStorage, op)
}

// affected converts an Exec result into "did anything change".
func (d *Database) affected(op string, res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, d.fail(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, d.fail(op, err)
	}
	return n > 0, nil
}

// inserted converts an Exec result into the new row id.
func (d *Database) inserted(op string, res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, d.fail(op, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, d.fail(op, err)
	}
	return id, nil
}
