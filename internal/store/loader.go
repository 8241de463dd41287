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
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopgen/shopgen/internal/datagen"
	"github.com/shopgen/shopgen/internal/ecommerce"
	"github.com/shopgen/shopgen/internal/logging"
)

const (
	loadBatchSize    = 1000
	progressInterval = 100000
)

// LoadDataset loads the five generated tables into the analytic store
// inside a single transaction: either the whole dataset lands or none of
// it does. Tables load in dependency order.
func LoadDataset(ctx context.Context, pool *pgxpool.Pool, ds *ecommerce.Dataset) error {
	log := logging.Component("store")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin load transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	loader := &batchLoader{exec: tx.Exec}

	if err := loader.loadCustomers(ctx, ds.Customers); err != nil {
		return fmt.Errorf("failed to load customers: %w", err)
	}
	if err := loader.loadProducts(ctx, ds.Products); err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	if err := loader.loadOrders(ctx, ds.Orders); err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}
	if err := loader.loadOrderItems(ctx, ds.OrderItems); err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	if err := loader.loadSessions(ctx, ds.Sessions); err != nil {
		return fmt.Errorf("failed to load web sessions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit load transaction: %w", err)
	}

	log.Info().
		Int("customers", len(ds.Customers)).
		Int("products", len(ds.Products)).
		Int("orders", len(ds.Orders)).
		Int("order_items", len(ds.OrderItems)).
		Int("web_sessions", len(ds.Sessions)).
		Msg("Dataset loaded")
	return nil
}

type batchLoader struct {
	exec func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (l *batchLoader) flush(ctx context.Context, table, columns string, batch []string) error {
	if len(batch) == 0 {
		return nil
	}
	sql := fmt.Sprintf("INSERT INTO %s %s VALUES %s", table, columns, strings.Join(batch, ", "))
	_, err := l.exec(ctx, sql)
	return err
}

func (l *batchLoader) loadCustomers(ctx context.Context, customers []ecommerce.Customer) error {
	logging.Info().Int("count", len(customers)).Msg("Loading customers")
	progress := datagen.NewProgressReporter("customers", int64(len(customers)), progressInterval)

	const columns = "(customer_id, email, first_name, last_name, birth_date, gender, address, city, " +
		"country, postal_code, customer_segment, acquisition_channel, registration_date, is_active)"

	batch := make([]string, 0, loadBatchSize)
	for _, c := range customers {
		batch = append(batch, fmt.Sprintf("(%d, '%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', %t)",
			c.CustomerID,
			escapeSingleQuote(c.Email),
			escapeSingleQuote(c.FirstName),
			escapeSingleQuote(c.LastName),
			c.BirthDate.Format("2006-01-02"),
			c.Gender,
			escapeSingleQuote(c.Address),
			escapeSingleQuote(c.City),
			escapeSingleQuote(c.Country),
			escapeSingleQuote(c.PostalCode),
			c.CustomerSegment,
			escapeSingleQuote(c.AcquisitionChannel),
			c.RegistrationDate.Format("2006-01-02"),
			c.IsActive,
		))
		if len(batch) >= loadBatchSize {
			if err := l.flush(ctx, "customers", columns, batch); err != nil {
				return err
			}
			progress.Update(int64(len(batch)))
			batch = batch[:0]
		}
	}
	if err := l.flush(ctx, "customers", columns, batch); err != nil {
		return err
	}
	progress.Update(int64(len(batch)))
	progress.Done()
	return nil
}

func (l *batchLoader) loadProducts(ctx context.Context, products []ecommerce.Product) error {
	logging.Info().Int("count", len(products)).Msg("Loading products")
	progress := datagen.NewProgressReporter("products", int64(len(products)), progressInterval)

	const columns = "(product_id, product_name, category, subcategory, brand, price, cost, " +
		"weight_kg, dimensions_cm, launch_date, is_active)"

	batch := make([]string, 0, loadBatchSize)
	for _, p := range products {
		batch = append(batch, fmt.Sprintf("(%d, '%s', '%s', '%s', '%s', %.2f, %.2f, %.2f, '%s', '%s', %t)",
			p.ProductID,
			escapeSingleQuote(p.ProductName),
			escapeSingleQuote(p.Category),
			escapeSingleQuote(p.Subcategory),
			escapeSingleQuote(p.Brand),
			p.Price,
			p.Cost,
			p.WeightKg,
			p.DimensionsCm,
			p.LaunchDate.Format("2006-01-02"),
			p.IsActive,
		))
		if len(batch) >= loadBatchSize {
			if err := l.flush(ctx, "products", columns, batch); err != nil {
				return err
			}
			progress.Update(int64(len(batch)))
			batch = batch[:0]
		}
	}
	if err := l.flush(ctx, "products", columns, batch); err != nil {
		return err
	}
	progress.Update(int64(len(batch)))
	progress.Done()
	return nil
}

func (l *batchLoader) loadOrders(ctx context.Context, orders []ecommerce.Order) error {
	logging.Info().Int("count", len(orders)).Msg("Loading orders")
	progress := datagen.NewProgressReporter("orders", int64(len(orders)), progressInterval)

	const columns = "(order_id, customer_id, order_date, status, payment_method, " +
		"shipping_cost, discount_amount, tax_amount, total_amount)"

	batch := make([]string, 0, loadBatchSize)
	for _, o := range orders {
		batch = append(batch, fmt.Sprintf("(%d, %d, '%s', '%s', '%s', %.2f, %.2f, %.2f, %.2f)",
			o.OrderID,
			o.CustomerID,
			o.OrderDate.Format("2006-01-02"),
			o.Status,
			escapeSingleQuote(o.PaymentMethod),
			o.ShippingCost,
			o.DiscountAmount,
			o.TaxAmount,
			o.TotalAmount,
		))
		if len(batch) >= loadBatchSize {
			if err := l.flush(ctx, "orders", columns, batch); err != nil {
				return err
			}
			progress.Update(int64(len(batch)))
			batch = batch[:0]
		}
	}
	if err := l.flush(ctx, "orders", columns, batch); err != nil {
		return err
	}
	progress.Update(int64(len(batch)))
	progress.Done()
	return nil
}

func (l *batchLoader) loadOrderItems(ctx context.Context, items []ecommerce.OrderItem) error {
	logging.Info().Int("count", len(items)).Msg("Loading order items")
	progress := datagen.NewProgressReporter("order_items", int64(len(items)), progressInterval)

	const columns = "(order_id, product_id, quantity, unit_price, total_price)"

	batch := make([]string, 0, loadBatchSize)
	for _, it := range items {
		batch = append(batch, fmt.Sprintf("(%d, %d, %d, %.2f, %.2f)",
			it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice,
		))
		if len(batch) >= loadBatchSize {
			if err := l.flush(ctx, "order_items", columns, batch); err != nil {
				return err
			}
			progress.Update(int64(len(batch)))
			batch = batch[:0]
		}
	}
	if err := l.flush(ctx, "order_items", columns, batch); err != nil {
		return err
	}
	progress.Update(int64(len(batch)))
	progress.Done()
	return nil
}

func (l *batchLoader) loadSessions(ctx context.Context, sessions []ecommerce.WebSession) error {
	logging.Info().Int("count", len(sessions)).Msg("Loading web sessions")
	progress := datagen.NewProgressReporter("web_sessions", int64(len(sessions)), progressInterval)

	const columns = "(session_id, customer_id, session_date, traffic_source, device_type, " +
		"session_duration_seconds, page_views, bounced, converted, revenue)"

	batch := make([]string, 0, loadBatchSize)
	for _, s := range sessions {
		customerID := "NULL"
		if s.CustomerID != 0 {
			customerID = fmt.Sprintf("%d", s.CustomerID)
		}
		batch = append(batch, fmt.Sprintf("(%d, %s, '%s', '%s', '%s', %d, %d, %d, %t, %.2f)",
			s.SessionID,
			customerID,
			s.SessionDate.Format("2006-01-02"),
			s.TrafficSource,
			s.DeviceType,
			s.DurationSeconds,
			s.PageViews,
			s.Bounced,
			s.Converted,
			s.Revenue,
		))
		if len(batch) >= loadBatchSize {
			if err := l.flush(ctx, "web_sessions", columns, batch); err != nil {
				return err
			}
			progress.Update(int64(len(batch)))
			batch = batch[:0]
		}
	}
	if err := l.flush(ctx, "web_sessions", columns, batch); err != nil {
		return err
	}
	progress.Update(int64(len(batch)))
	progress.Done()
	return nil
}

func escapeSingleQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
