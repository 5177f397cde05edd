package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/arka-distribution/internal/domain/customer"
	"github.com/example/arka-distribution/internal/domain/ids"
	"github.com/example/arka-distribution/internal/domain/money"
	"github.com/example/arka-distribution/internal/domain/order"
	"github.com/example/arka-distribution/internal/domain/product"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PostgresConfig holds the pool settings used by ConnectPostgres.
type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ConnectPostgres establishes a connection to PostgreSQL
func ConnectPostgres(ctx context.Context, cfg PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = 25
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = 5
	}
	if cfg.ConnMaxLifetime <= 0 {
		cfg.ConnMaxLifetime = 5 * time.Minute
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price       NUMERIC(19,4) NOT NULL,
	currency    CHAR(3) NOT NULL,
	stock       INTEGER NOT NULL CHECK (stock >= 0),
	category    TEXT NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS products_category_idx ON products (category);

CREATE TABLE IF NOT EXISTS customers (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	last_name  TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL,
	phone      TEXT NOT NULL DEFAULT '',
	city       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS orders (
	id          TEXT PRIMARY KEY,
	customer_id TEXT NOT NULL,
	status      TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS orders_customer_idx ON orders (customer_id);
CREATE INDEX IF NOT EXISTS orders_status_idx ON orders (status);

CREATE TABLE IF NOT EXISTS order_items (
	order_id   TEXT NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
	line       INTEGER NOT NULL,
	product_id TEXT NOT NULL,
	quantity   INTEGER NOT NULL CHECK (quantity > 0),
	unit_price NUMERIC(19,4) NOT NULL,
	currency   CHAR(3) NOT NULL,
	PRIMARY KEY (order_id, line)
);
`

// Migrate creates the tables used by the Postgres stores.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ============================================
// Products
// ============================================

// PostgresProductStore implements product.Repository using PostgreSQL
type PostgresProductStore struct {
	db *sql.DB
}

func NewPostgresProductStore(db *sql.DB) *PostgresProductStore {
	return &PostgresProductStore{db: db}
}

const productColumns = `id, name, description, price, currency, stock, category`

func (s *PostgresProductStore) Save(ctx context.Context, p *product.Product) (*product.Product, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, price, currency, stock, category, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			currency = EXCLUDED.currency,
			stock = EXCLUDED.stock,
			category = EXCLUDED.category,
			updated_at = EXCLUDED.updated_at
	`, p.ID.String(), p.Name, p.Description, p.Price.Amount(), p.Price.Currency(), p.Stock(), p.Category.String())
	if err != nil {
		return nil, fmt.Errorf("save product %s: %w", p.ID, err)
	}
	return p.Clone(), nil
}

func (s *PostgresProductStore) FindByID(ctx context.Context, id ids.ProductID) (*product.Product, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id.String())
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find product %s: %w", id, err)
	}
	return p, true, nil
}

func (s *PostgresProductStore) FindAll(ctx context.Context) ([]*product.Product, error) {
	return s.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name`)
}

func (s *PostgresProductStore) FindByCategory(ctx context.Context, category product.Category) ([]*product.Product, error) {
	return s.query(ctx, `SELECT `+productColumns+` FROM products WHERE category = $1 ORDER BY name`, category.String())
}

func (s *PostgresProductStore) FindLowStock(ctx context.Context, threshold int) ([]*product.Product, error) {
	return s.query(ctx, `SELECT `+productColumns+` FROM products WHERE stock < $1 ORDER BY stock, name`, threshold)
}

func (s *PostgresProductStore) ExistsByID(ctx context.Context, id ids.ProductID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check product %s: %w", id, err)
	}
	return exists, nil
}

func (s *PostgresProductStore) DeleteByID(ctx context.Context, id ids.ProductID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id.String()); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

func (s *PostgresProductStore) query(ctx context.Context, query string, args ...any) ([]*product.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func scanProduct(row rowScanner) (*product.Product, error) {
	var (
		id, name, description, currency, category string
		price                                     decimal.Decimal
		stock                                     int
	)
	if err := row.Scan(&id, &name, &description, &price, &currency, &stock, &category); err != nil {
		return nil, err
	}
	amount, err := money.New(price, currency)
	if err != nil {
		return nil, err
	}
	return product.New(ids.ProductID(id), name, description, amount, stock, product.Category(category))
}

// ============================================
// Customers
// ============================================

// PostgresCustomerStore implements customer.Repository using PostgreSQL
type PostgresCustomerStore struct {
	db *sql.DB
}

func NewPostgresCustomerStore(db *sql.DB) *PostgresCustomerStore {
	return &PostgresCustomerStore{db: db}
}

func (s *PostgresCustomerStore) Save(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, last_name, email, phone, city)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			city = EXCLUDED.city
	`, c.ID.String(), c.Name, c.LastName, c.Email.String(), c.Phone, c.City)
	if err != nil {
		return nil, fmt.Errorf("save customer %s: %w", c.ID, err)
	}
	return c.Clone(), nil
}

func (s *PostgresCustomerStore) FindByID(ctx context.Context, id ids.CustomerID) (*customer.Customer, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, last_name, email, phone, city FROM customers WHERE id = $1`, id.String())
	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find customer %s: %w", id, err)
	}
	return c, true, nil
}

func (s *PostgresCustomerStore) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, last_name, email, phone, city FROM customers ORDER BY last_name, name`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *PostgresCustomerStore) ExistsByID(ctx context.Context, id ids.CustomerID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`, id.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check customer %s: %w", id, err)
	}
	return exists, nil
}

func (s *PostgresCustomerStore) DeleteByID(ctx context.Context, id ids.CustomerID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id.String()); err != nil {
		return fmt.Errorf("delete customer %s: %w", id, err)
	}
	return nil
}

func scanCustomer(row rowScanner) (*customer.Customer, error) {
	var id, name, lastName, email, phone, city string
	if err := row.Scan(&id, &name, &lastName, &email, &phone, &city); err != nil {
		return nil, err
	}
	return customer.New(ids.CustomerID(id), name, lastName, ids.Email(email), phone, city)
}

// ============================================
// Orders
// ============================================

// PostgresOrderStore implements order.Repository using PostgreSQL.
// An order and its items are written in one transaction.
type PostgresOrderStore struct {
	db *sql.DB
}

func NewPostgresOrderStore(db *sql.DB) *PostgresOrderStore {
	return &PostgresOrderStore{db: db}
}

func (s *PostgresOrderStore) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`, o.ID.String(), o.CustomerID.String(), string(o.Status()), o.CreatedAt, o.UpdatedAt())
	if err != nil {
		return nil, fmt.Errorf("save order %s: %w", o.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, o.ID.String()); err != nil {
		return nil, fmt.Errorf("clear order items %s: %w", o.ID, err)
	}
	for line, item := range o.Items() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, line, product_id, quantity, unit_price, currency)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, o.ID.String(), line, item.ProductID.String(), item.Quantity, item.UnitPrice.Amount(), item.UnitPrice.Currency())
		if err != nil {
			return nil, fmt.Errorf("save order item %s/%d: %w", o.ID, line, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order %s: %w", o.ID, err)
	}
	return o.Clone(), nil
}

func (s *PostgresOrderStore) FindByID(ctx context.Context, id ids.OrderID) (*order.Order, bool, error) {
	orders, err := s.query(ctx, `WHERE id = $1`, id.String())
	if err != nil {
		return nil, false, err
	}
	if len(orders) == 0 {
		return nil, false, nil
	}
	return orders[0], true, nil
}

func (s *PostgresOrderStore) FindByCustomerID(ctx context.Context, customerID ids.CustomerID) ([]*order.Order, error) {
	return s.query(ctx, `WHERE customer_id = $1`, customerID.String())
}

func (s *PostgresOrderStore) FindByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	return s.query(ctx, `WHERE status = $1`, string(status))
}

func (s *PostgresOrderStore) FindPending(ctx context.Context) ([]*order.Order, error) {
	return s.FindByStatus(ctx, order.StatusPending)
}

func (s *PostgresOrderStore) FindAll(ctx context.Context) ([]*order.Order, error) {
	return s.query(ctx, ``)
}

func (s *PostgresOrderStore) Delete(ctx context.Context, o *order.Order) error {
	return s.DeleteByID(ctx, o.ID)
}

func (s *PostgresOrderStore) DeleteByID(ctx context.Context, id ids.OrderID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id.String()); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	return nil
}

func (s *PostgresOrderStore) ExistsByID(ctx context.Context, id ids.OrderID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check order %s: %w", id, err)
	}
	return exists, nil
}

type orderRow struct {
	id, customerID, status string
	createdAt, updatedAt   time.Time
}

// query loads the order headers matching where, then all of their items in one round trip.
func (s *PostgresOrderStore) query(ctx context.Context, where string, args ...any) ([]*order.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, customer_id, status, created_at, updated_at FROM orders `+where+` ORDER BY created_at`, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var headers []orderRow
	var orderIDs []string
	for rows.Next() {
		var r orderRow
		if err := rows.Scan(&r.id, &r.customerID, &r.status, &r.createdAt, &r.updatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		headers = append(headers, r)
		orderIDs = append(orderIDs, r.id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, nil
	}

	items, err := s.items(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(headers))
	for _, r := range headers {
		o, err := order.Rehydrate(ids.OrderID(r.id), ids.CustomerID(r.customerID), order.Status(r.status),
			items[r.id], r.createdAt, r.updatedAt)
		if err != nil {
			return nil, fmt.Errorf("rehydrate order %s: %w", r.id, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (s *PostgresOrderStore) items(ctx context.Context, orderIDs []string) (map[string][]order.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT order_id, product_id, quantity, unit_price, currency
		FROM order_items WHERE order_id = ANY($1)
		ORDER BY order_id, line
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]order.Item, len(orderIDs))
	for rows.Next() {
		var (
			orderID, productID, currency string
			quantity                     int
			unitPrice                    decimal.Decimal
		)
		if err := rows.Scan(&orderID, &productID, &quantity, &unitPrice, &currency); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		price, err := money.New(unitPrice, currency)
		if err != nil {
			return nil, err
		}
		items[orderID] = append(items[orderID], order.Item{
			ProductID: ids.ProductID(productID),
			Quantity:  quantity,
			UnitPrice: price,
		})
	}
	return items, rows.Err()
}

var (
	_ product.Repository  = (*PostgresProductStore)(nil)
	_ customer.Repository = (*PostgresCustomerStore)(nil)
	_ order.Repository    = (*PostgresOrderStore)(nil)
)
