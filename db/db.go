// Package db opens the shared SQLite store and prepares its schema.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Open returns a process-wide handle on the store file. The pool is capped
// at a single connection so transactions on the file serialize; the engine
// relies on this together with its conditional stock update.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	if err := migrateSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

func initSchema(conn *sql.DB) error {
	_, err := conn.Exec(`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price REAL NOT NULL)`)
	if err != nil {
		return fmt.Errorf("create products table: %w", err)
	}

	_, err = conn.Exec(`CREATE TABLE IF NOT EXISTS sales (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_name TEXT NOT NULL,
		gstin TEXT NOT NULL,
		product_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		total_price REAL NOT NULL,
		bill_filename TEXT,
		FOREIGN KEY (product_id) REFERENCES products(id))`)
	if err != nil {
		return fmt.Errorf("create sales table: %w", err)
	}

	return nil
}

// migrateSchema brings a store created before bill tracking up to date:
// older files miss the bill_filename column on sales. Existing rows keep
// a NULL reference. Must run before the first transaction.
func migrateSchema(conn *sql.DB) error {
	rows, err := conn.Query(`PRAGMA table_info(sales)`)
	if err != nil {
		return fmt.Errorf("inspect sales schema: %w", err)
	}
	defer rows.Close()

	hasBillColumn := false
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return err
		}
		if name == "bill_filename" {
			hasBillColumn = true
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if !hasBillColumn {
		if _, err := conn.Exec(`ALTER TABLE sales ADD COLUMN bill_filename TEXT`); err != nil {
			return fmt.Errorf("add bill_filename column: %w", err)
		}
	}

	return nil
}

// Reachable reports whether the store answers at all; the HTTP front-end
// uses it for its health endpoint.
func Reachable(ctx context.Context, conn *sql.DB) bool {
	return conn.PingContext(ctx) == nil
}
