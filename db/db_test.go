package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestOpenCreatesSchema(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "fresh.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if _, err := store.Exec(`INSERT INTO products (name, quantity, price) VALUES ('Milk 1L', 10, 50.0)`); err != nil {
		t.Fatalf("insert product: %v", err)
	}
	if _, err := store.Exec(
		`INSERT INTO sales (customer_name, gstin, product_id, quantity, total_price, bill_filename)
		 VALUES ('Asha', 'GSTIN1', 1, 2, 100.0, 'Asha_bill_1.pdf')`); err != nil {
		t.Fatalf("insert sale: %v", err)
	}
}

func TestMigrationAddsBillColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")

	// Build a store the way the schema looked before bill tracking.
	legacy, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open legacy: %v", err)
	}
	stmts := []string{
		`CREATE TABLE products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			price REAL NOT NULL)`,
		`CREATE TABLE sales (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			customer_name TEXT NOT NULL,
			gstin TEXT NOT NULL,
			product_id INTEGER NOT NULL,
			quantity INTEGER NOT NULL,
			total_price REAL NOT NULL,
			FOREIGN KEY (product_id) REFERENCES products(id))`,
		`INSERT INTO products (name, quantity, price) VALUES ('Milk 1L', 100, 50.0)`,
		`INSERT INTO sales (customer_name, gstin, product_id, quantity, total_price)
		 VALUES ('Asha', 'GSTIN1', 1, 10, 500.0)`,
	}
	for _, stmt := range stmts {
		if _, err := legacy.Exec(stmt); err != nil {
			t.Fatalf("prepare legacy store: %v", err)
		}
	}
	legacy.Close()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open migrated: %v", err)
	}
	defer store.Close()

	var (
		customer string
		total    float64
		bill     sql.NullString
	)
	err = store.QueryRow(
		`SELECT customer_name, total_price, bill_filename FROM sales WHERE id = 1`,
	).Scan(&customer, &total, &bill)
	if err != nil {
		t.Fatalf("read migrated row: %v", err)
	}
	if customer != "Asha" || total != 500.0 {
		t.Fatalf("existing row altered: %s %v", customer, total)
	}
	if bill.Valid && bill.String != "" {
		t.Fatalf("expected empty bill reference on migrated row, got %q", bill.String)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := first.Exec(`INSERT INTO products (name, quantity, price) VALUES ('Curd 400g', 5, 40.0)`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()

	var quantity int
	if err := second.QueryRow(`SELECT quantity FROM products WHERE name = 'Curd 400g'`).Scan(&quantity); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", quantity)
	}
}
