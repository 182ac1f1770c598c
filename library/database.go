package library

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Database provides high-level helpers around a SQLite connection. It is the
// persistence adapter: entity repositories live in books.go, users.go, and
// transactions.go as methods on this type.
type Database struct {
	db *sqlx.DB

	addBookStmt *sqlx.Stmt
}

// NewDatabase opens (or creates) the SQLite database at dbPath, applies schema
// migrations, and prepares common statements.
func NewDatabase(dbPath string) (*Database, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	// Enable busy_timeout and foreign keys.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	database := &Database{db: db}
	if err := database.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return database, nil
}

// Close releases prepared statements and closes the DB.
func (d *Database) Close() error {
	if d.addBookStmt != nil {
		d.addBookStmt.Close()
	}
	return d.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sqlx.DB) error {
	// WAL improves write concurrency.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            user_id INTEGER PRIMARY KEY AUTOINCREMENT,
            username TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            user_type TEXT NOT NULL CHECK (user_type IN ('admin','member')),
            admin_type TEXT CHECK (admin_type IN ('super','standard')),
            firstname TEXT NOT NULL,
            surname TEXT NOT NULL,
            date_of_birth TEXT,
            gender TEXT,
            email TEXT NOT NULL DEFAULT '',
            phone_number TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS addresses (
            address_id INTEGER PRIMARY KEY AUTOINCREMENT,
            user_id INTEGER NOT NULL UNIQUE REFERENCES users(user_id) ON DELETE CASCADE,
            street TEXT NOT NULL,
            city TEXT NOT NULL,
            pincode TEXT NOT NULL,
            state TEXT NOT NULL,
            country TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS books (
            book_id INTEGER PRIMARY KEY AUTOINCREMENT,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            genre TEXT NOT NULL DEFAULT '',
            isbn TEXT NOT NULL DEFAULT '',
            is_available INTEGER NOT NULL DEFAULT 1,
            number_of_total_copies INTEGER NOT NULL,
            number_of_available_copies INTEGER NOT NULL,
            CHECK (number_of_available_copies >= 0
               AND number_of_available_copies <= number_of_total_copies)
        );`,
		`CREATE TABLE IF NOT EXISTS transactions (
            transaction_id INTEGER PRIMARY KEY AUTOINCREMENT,
            user_id INTEGER NOT NULL REFERENCES users(user_id),
            book_id INTEGER NOT NULL REFERENCES books(book_id) ON DELETE CASCADE,
            borrow_date TEXT NOT NULL,
            return_date TEXT,
            status TEXT NOT NULL CHECK (status IN ('borrowed','returned'))
        );`,
		// FTS5 virtual table for keyword search over the catalog columns
		`CREATE VIRTUAL TABLE IF NOT EXISTS books_fts USING fts5(
            title, author, genre, content='books', content_rowid='book_id'
        );`,
		// Triggers to keep FTS in sync
		`CREATE TRIGGER IF NOT EXISTS trg_books_ai AFTER INSERT ON books BEGIN
            INSERT INTO books_fts(rowid,title,author,genre) VALUES(new.book_id,new.title,new.author,new.genre);
        END;`,
		`CREATE TRIGGER IF NOT EXISTS trg_books_ad AFTER DELETE ON books BEGIN
            INSERT INTO books_fts(books_fts, rowid, title, author, genre) VALUES('delete',old.book_id,old.title,old.author,old.genre);
        END;`,
		`CREATE TRIGGER IF NOT EXISTS trg_books_au AFTER UPDATE ON books BEGIN
            INSERT INTO books_fts(books_fts, rowid, title, author, genre) VALUES('delete',old.book_id,old.title,old.author,old.genre);
            INSERT INTO books_fts(rowid,title,author,genre) VALUES(new.book_id,new.title,new.author,new.genre);
        END;`,
		`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt, schemaVersion); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (d *Database) prepareStatements() error {
	var err error
	if d.addBookStmt, err = d.db.Preparex(
		`INSERT INTO books (title, author, genre, isbn, is_available,
             number_of_total_copies, number_of_available_copies)
         VALUES (?,?,?,?,?,?,?)`); err != nil {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

// inTx runs fn inside a transaction, rolling back on any error so partial
// writes are never observed.
func (d *Database) inTx(fn func(tx *sqlx.Tx) error) error {
	tx, err := d.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// getOr translates sql.ErrNoRows into the package not-found kind.
func getOr(err error, entity string, ref any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(entity, ref)
	}
	return err
}
