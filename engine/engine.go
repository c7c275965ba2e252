// Package engine holds the business rules shared by every front-end:
// the sale transaction and the catalog operations around it.
package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"dairypos/models"
)

// ReceiptRenderer turns a bill's text into a durable artifact stored under
// the given filename.
type ReceiptRenderer interface {
	Render(content, filename string) error
}

// Engine executes catalog and sale operations against a shared store handle.
// The handle is passed in once; callers must not open their own connections.
type Engine struct {
	db       *sql.DB
	receipts ReceiptRenderer
	log      *slog.Logger
}

func New(db *sql.DB, receipts ReceiptRenderer, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{db: db, receipts: receipts, log: log}
}

// SaleResult reports a committed sale. ReceiptErr is set when the sale
// committed but the bill artifact could not be written; the sale stands
// either way.
type SaleResult struct {
	Sale       models.Sale
	Bill       string
	ReceiptErr error
}

// Sell checks stock, decrements it and records the sale in one transaction,
// then writes the bill. Rejections (unknown product, short stock, bad input)
// leave the store untouched.
func (e *Engine) Sell(ctx context.Context, customerName, gstin string, productID int64, quantity int) (*SaleResult, error) {
	customerName = strings.TrimSpace(customerName)
	gstin = strings.TrimSpace(gstin)
	if customerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if gstin == "" {
		return nil, fmt.Errorf("%w: GSTIN is required", ErrInvalidInput)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	var (
		available int
		unitPrice float64
	)
	err = tx.QueryRowContext(ctx,
		`SELECT quantity, price FROM products WHERE id = ?`, productID,
	).Scan(&available, &unitPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidProduct
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if available < quantity {
		return nil, ErrInsufficientStock
	}

	totalPrice := float64(quantity) * unitPrice

	// The quantity >= ? guard re-checks stock at update time, so a sale that
	// lost a race on the same product fails here instead of oversell.
	res, err := tx.ExecContext(ctx,
		`UPDATE products SET quantity = quantity - ? WHERE id = ? AND quantity >= ?`,
		quantity, productID, quantity,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return nil, ErrInsufficientStock
	}

	res, err = tx.ExecContext(ctx,
		`INSERT INTO sales (customer_name, gstin, product_id, quantity, total_price, bill_filename)
		 VALUES (?, ?, ?, ?, ?, '')`,
		customerName, gstin, productID, quantity, totalPrice,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	saleID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	billFilename := billFilename(customerName, saleID)
	if _, err := tx.ExecContext(ctx,
		`UPDATE sales SET bill_filename = ? WHERE id = ?`, billFilename, saleID,
	); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	sale := models.Sale{
		ID:           saleID,
		CustomerName: customerName,
		GSTIN:        gstin,
		ProductID:    productID,
		Quantity:     quantity,
		TotalPrice:   totalPrice,
		BillFilename: billFilename,
	}
	result := &SaleResult{Sale: sale, Bill: billText(sale)}

	// The sale is committed; a lost receipt is reported, never rolled back.
	if err := e.receipts.Render(result.Bill, billFilename); err != nil {
		e.log.Warn("bill rendering failed",
			slog.Int64("sale_id", saleID),
			slog.String("filename", billFilename),
			slog.Any("error", err))
		result.ReceiptErr = fmt.Errorf("receipt generation failed: %w", err)
	} else {
		e.log.Info("sale committed",
			slog.Int64("sale_id", saleID),
			slog.Int64("product_id", productID),
			slog.Int("quantity", quantity),
			slog.Float64("total_price", totalPrice))
	}

	return result, nil
}

// AddProduct registers a product and returns it with its generated id.
func (e *Engine) AddProduct(ctx context.Context, name string, quantity int, price float64) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	if price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	res, err := e.db.ExecContext(ctx,
		`INSERT INTO products (name, quantity, price) VALUES (?, ?, ?)`,
		name, quantity, price,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	e.log.Info("product added", slog.Int64("product_id", id), slog.String("name", name))
	return &models.Product{ID: id, Name: name, Quantity: quantity, Price: price}, nil
}

// DeleteProduct removes a product from the catalog. Deleting an unknown id
// is not an error, and sales referencing the product are kept.
func (e *Engine) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := e.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// GetProduct looks up a single product by id.
func (e *Engine) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := e.db.QueryRowContext(ctx,
		`SELECT id, name, quantity, price FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Quantity, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidProduct
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &p, nil
}

// ListProducts returns the full catalog for the stock view.
func (e *Engine) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := e.db.QueryContext(ctx,
		`SELECT id, name, quantity, price FROM products ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return products, nil
}

// ListSales returns every recorded sale for the history view.
func (e *Engine) ListSales(ctx context.Context) ([]models.Sale, error) {
	rows, err := e.db.QueryContext(ctx,
		`SELECT id, customer_name, gstin, product_id, quantity, total_price, COALESCE(bill_filename, '')
		 FROM sales ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.CustomerName, &s.GSTIN, &s.ProductID, &s.Quantity, &s.TotalPrice, &s.BillFilename); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return sales, nil
}

func billText(s models.Sale) string {
	return fmt.Sprintf("Customer: %s\nGSTIN: %s\nProduct ID: %d\nQuantity: %d\nTotal Price: %.2f",
		s.CustomerName, s.GSTIN, s.ProductID, s.Quantity, s.TotalPrice)
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// billFilename keys the bill by sale id so repeat customers never overwrite
// an earlier bill.
func billFilename(customerName string, saleID int64) string {
	name := unsafeFilenameChars.ReplaceAllString(strings.ReplaceAll(customerName, " ", "_"), "")
	if name == "" {
		name = "customer"
	}
	return fmt.Sprintf("%s_bill_%d.pdf", name, saleID)
}
