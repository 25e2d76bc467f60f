// Package sqlite provides the SQLite-backed implementation of
// order.Repository.
//
// WAL mode is enabled on Open so the admin listing never blocks a checkout
// insert and vice versa.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/himanshuchauhan33/cracker-shop/internal/order"

	// Register the pure-Go SQLite driver. modernc.org/sqlite avoids CGO,
	// which keeps the Docker build on Alpine trivial.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup.
// Orders are append-only: items and total are frozen at insert time and the
// only column ever updated afterwards is paid.
const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,

    customer_name   TEXT    NOT NULL,
    email           TEXT    NOT NULL DEFAULT '',
    phone           TEXT    NOT NULL,
    address         TEXT    NOT NULL DEFAULT '',
    delivery_type   TEXT    NOT NULL DEFAULT '',

    -- JSON array of line-item snapshots, immune to later catalog changes.
    items           TEXT    NOT NULL,

    total           REAL    NOT NULL,

    -- 0/1; reserved for payment reconciliation.
    paid            INTEGER NOT NULL DEFAULT 0,

    -- RFC3339 stored as TEXT, SQLite idiom.
    created_at      TEXT    NOT NULL
);
`

// Repository is the SQLite implementation of order.Repository.
type Repository struct {
	db *sql.DB
}

var _ order.Repository = (*Repository)(nil)

// Open opens (or creates) the SQLite database at the given path and applies
// the schema.
//
//	repo, err := sqlite.Open("orders.db")
func Open(path string) (*Repository, error) {
	// The pure-Go driver takes pragmas as query parameters. WAL enables
	// concurrent readers; busy_timeout waits for locks instead of failing.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

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

	return &Repository{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

// Create inserts a new order row and returns the autoincremented id.
func (r *Repository) Create(ctx context.Context, o *order.Order) (int64, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return 0, fmt.Errorf("sqlite: encode items: %w", err)
	}

	const q = `
		INSERT INTO orders
			(customer_name, email, phone, address, delivery_type, items, total, paid, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?)`

	createdAt := o.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, q,
		o.CustomerName,
		o.Email,
		o.Phone,
		o.Address,
		o.DeliveryType,
		string(items),
		o.Total,
		boolToInt(o.Paid),
		createdAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: insert order for %q: %w", o.CustomerName, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlite: last insert id: %w", err)
	}
	return id, nil
}

// Get returns a single order by id.
func (r *Repository) Get(ctx context.Context, id int64) (*order.Order, error) {
	const q = `
		SELECT id, customer_name, email, phone, address, delivery_type,
		       items, total, paid, created_at
		FROM   orders
		WHERE  id = ?`

	o, err := scanOrder(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sqlite: order %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get order %d: %w", id, err)
	}
	return o, nil
}

// ListAll returns every order, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]order.Order, error) {
	const q = `
		SELECT id, customer_name, email, phone, address, delivery_type,
		       items, total, paid, created_at
		FROM   orders
		ORDER  BY id DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list orders: %w", err)
	}
	return orders, nil
}

// MarkPaid flips the paid flag for an already-persisted order.
func (r *Repository) MarkPaid(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET paid = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: mark order %d paid: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: mark order %d paid: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("sqlite: order %d not found", id)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner) (*order.Order, error) {
	var o order.Order
	var items string
	var paid int
	var createdAt string

	err := row.Scan(
		&o.ID,
		&o.CustomerName,
		&o.Email,
		&o.Phone,
		&o.Address,
		&o.DeliveryType,
		&items,
		&o.Total,
		&paid,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(items), &o.Items); err != nil {
		return nil, fmt.Errorf("decode items snapshot: %w", err)
	}
	o.Paid = paid != 0

	o.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	return &o, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
