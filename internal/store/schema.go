//-------------------------------------------------------------------------
//
// shopgen - Synthetic E-commerce Analytics
//
// Copyright (c) 2025 - 2026, the shopgen authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const createSchemaSQL = `
-- Customers: demographics plus fixed segment and acquisition channel
CREATE TABLE IF NOT EXISTS customers (
    customer_id         INTEGER PRIMARY KEY,
    email               VARCHAR(255) NOT NULL,
    first_name          VARCHAR(100) NOT NULL,
    last_name           VARCHAR(100) NOT NULL,
    birth_date          DATE NOT NULL,
    gender              VARCHAR(1) NOT NULL,
    address             VARCHAR(255),
    city                VARCHAR(100),
    country             VARCHAR(100),
    postal_code         VARCHAR(20),
    customer_segment    VARCHAR(20) NOT NULL,
    acquisition_channel VARCHAR(50) NOT NULL,
    registration_date   DATE NOT NULL,
    is_active           BOOLEAN NOT NULL
);

-- Products: catalog with category-scaled pricing
CREATE TABLE IF NOT EXISTS products (
    product_id    INTEGER PRIMARY KEY,
    product_name  VARCHAR(200) NOT NULL,
    category      VARCHAR(50) NOT NULL,
    subcategory   VARCHAR(100),
    brand         VARCHAR(100),
    price         NUMERIC(10,2) NOT NULL,
    cost          NUMERIC(10,2) NOT NULL,
    weight_kg     NUMERIC(8,2) NOT NULL,
    dimensions_cm VARCHAR(20) NOT NULL,
    launch_date   DATE NOT NULL,
    is_active     BOOLEAN NOT NULL
);

-- Orders: headers; monetary fields computed after line items
CREATE TABLE IF NOT EXISTS orders (
    order_id        INTEGER PRIMARY KEY,
    customer_id     INTEGER NOT NULL REFERENCES customers(customer_id),
    order_date      DATE NOT NULL,
    status          VARCHAR(20) NOT NULL,
    payment_method  VARCHAR(20) NOT NULL,
    shipping_cost   NUMERIC(10,2) NOT NULL,
    discount_amount NUMERIC(10,2) NOT NULL,
    tax_amount      NUMERIC(10,2) NOT NULL,
    total_amount    NUMERIC(10,2) NOT NULL
);

-- Order items: line items, one per distinct product in an order
CREATE TABLE IF NOT EXISTS order_items (
    order_id    INTEGER NOT NULL REFERENCES orders(order_id),
    product_id  INTEGER NOT NULL REFERENCES products(product_id),
    quantity    INTEGER NOT NULL,
    unit_price  NUMERIC(10,2) NOT NULL,
    total_price NUMERIC(10,2) NOT NULL
);

-- Web sessions: NULL customer_id marks an anonymous session
CREATE TABLE IF NOT EXISTS web_sessions (
    session_id               INTEGER PRIMARY KEY,
    customer_id              INTEGER REFERENCES customers(customer_id),
    session_date             DATE NOT NULL,
    traffic_source           VARCHAR(30) NOT NULL,
    device_type              VARCHAR(10) NOT NULL,
    session_duration_seconds INTEGER NOT NULL,
    page_views               INTEGER NOT NULL,
    bounced                  INTEGER NOT NULL,
    converted                BOOLEAN NOT NULL,
    revenue                  NUMERIC(12,2) NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
CREATE INDEX IF NOT EXISTS idx_orders_date ON orders(order_date);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id);
CREATE INDEX IF NOT EXISTS idx_customers_segment ON customers(customer_segment);
CREATE INDEX IF NOT EXISTS idx_sessions_source ON web_sessions(traffic_source);
`

// The three analytic views are the read contract for the API, the report,
// and any dashboard; their aggregation formulas must not drift.
const createViewsSQL = `
CREATE OR REPLACE VIEW monthly_revenue AS
SELECT
    DATE_TRUNC('month', order_date) AS month,
    COUNT(*) AS order_count,
    SUM(total_amount) AS revenue,
    AVG(total_amount) AS avg_order_value
FROM orders
WHERE status = 'Completed'
GROUP BY DATE_TRUNC('month', order_date)
ORDER BY month;

CREATE OR REPLACE VIEW customer_ltv AS
SELECT
    c.customer_id,
    c.customer_segment,
    c.acquisition_channel,
    COUNT(o.order_id) AS total_orders,
    SUM(CASE WHEN o.status = 'Completed' THEN o.total_amount ELSE 0 END) AS lifetime_value,
    AVG(CASE WHEN o.status = 'Completed' THEN o.total_amount ELSE NULL END) AS avg_order_value,
    MIN(o.order_date) AS first_order_date,
    MAX(o.order_date) AS last_order_date
FROM customers c
LEFT JOIN orders o ON c.customer_id = o.customer_id
GROUP BY c.customer_id, c.customer_segment, c.acquisition_channel;

CREATE OR REPLACE VIEW product_performance AS
SELECT
    p.product_id,
    p.product_name,
    p.category,
    p.price,
    COUNT(oi.order_id) AS times_ordered,
    SUM(oi.quantity) AS total_quantity_sold,
    SUM(oi.total_price) AS total_revenue,
    AVG(oi.unit_price) AS avg_selling_price,
    (AVG(oi.unit_price) - p.cost) AS avg_profit_per_unit
FROM products p
LEFT JOIN order_items oi ON p.product_id = oi.product_id
GROUP BY p.product_id, p.product_name, p.category, p.price, p.cost;
`

const dropSchemaSQL = `
DROP VIEW IF EXISTS product_performance;
DROP VIEW IF EXISTS customer_ltv;
DROP VIEW IF EXISTS monthly_revenue;
DROP TABLE IF EXISTS web_sessions CASCADE;
DROP TABLE IF EXISTS order_items CASCADE;
DROP TABLE IF EXISTS orders CASCADE;
DROP TABLE IF EXISTS products CASCADE;
DROP TABLE IF EXISTS customers CASCADE;
DROP TABLE IF EXISTS shopgen_metadata CASCADE;
`

// CreateSchema creates the base tables and indexes.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// CreateViews creates the three analytic views over the base tables.
func CreateViews(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createViewsSQL)
	return err
}

// DropSchema drops the views, base tables, and metadata.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}
