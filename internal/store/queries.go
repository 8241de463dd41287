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
	"math"
	"strings"
	"time"
)

// Overview holds the dashboard KPIs.
type Overview struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalOrders    int     `json:"total_orders"`
	TotalCustomers int     `json:"total_customers"`
	AvgOrderValue  float64 `json:"avg_order_value"`
	ConversionRate float64 `json:"conversion_rate"`
}

// RevenuePoint is one bucket of the revenue time series.
type RevenuePoint struct {
	Period  time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
	Orders  int       `json:"orders"`
}

// SegmentRevenue is the revenue breakdown for one customer segment.
type SegmentRevenue struct {
	Segment       string  `json:"segment"`
	Revenue       float64 `json:"revenue"`
	Orders        int     `json:"orders"`
	Customers     int     `json:"customers"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

// RFMSegment is one behavioral segment from the RFM scoring query.
type RFMSegment struct {
	Segment        string  `json:"segment"`
	Customers      int     `json:"customers"`
	AvgRecencyDays float64 `json:"avg_recency_days"`
	AvgFrequency   float64 `json:"avg_frequency"`
	AvgMonetary    float64 `json:"avg_monetary"`
}

// AcquisitionChannel summarizes purchasing customers per acquisition channel.
type AcquisitionChannel struct {
	Channel   string  `json:"channel"`
	Customers int     `json:"customers"`
	AvgLTV    float64 `json:"avg_ltv"`
	AvgOrders float64 `json:"avg_orders"`
}

// ProductPerformance is one row of the top-products ranking.
type ProductPerformance struct {
	ProductName   string  `json:"product_name"`
	Category      string  `json:"category"`
	TimesOrdered  int     `json:"times_ordered"`
	UnitsSold     int     `json:"units_sold"`
	Revenue       float64 `json:"revenue"`
	AvgPrice      float64 `json:"avg_price"`
	ProfitPerUnit float64 `json:"profit_per_unit"`
}

// CategoryPerformance aggregates product performance per category.
type CategoryPerformance struct {
	Category        string  `json:"category"`
	TotalProducts   int     `json:"total_products"`
	ProductsSold    int     `json:"products_sold"`
	SellThroughRate float64 `json:"sell_through_rate"`
	Revenue         float64 `json:"revenue"`
}

// SlowMover is a product with little or no sales activity.
type SlowMover struct {
	ProductName  string  `json:"product_name"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	TimesOrdered int     `json:"times_ordered"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// TrafficSource summarizes session outcomes for one traffic source.
type TrafficSource struct {
	Source             string  `json:"source"`
	Sessions           int     `json:"sessions"`
	Conversions        int     `json:"conversions"`
	ConversionRate     float64 `json:"conversion_rate"`
	AvgSessionDuration int     `json:"avg_session_duration"`
	AvgPageViews       float64 `json:"avg_page_views"`
	Revenue            float64 `json:"revenue"`
	RevenuePerSession  float64 `json:"revenue_per_session"`
}

// DevicePerformance summarizes session outcomes for one device type.
type DevicePerformance struct {
	Device         string  `json:"device"`
	Sessions       int     `json:"sessions"`
	AvgDuration    int     `json:"avg_duration"`
	AvgPageViews   float64 `json:"avg_page_views"`
	BounceRate     float64 `json:"bounce_rate"`
	ConversionRate float64 `json:"conversion_rate"`
}

// RecentOrder is one row of the recent-orders feed.
type RecentOrder struct {
	OrderID       int       `json:"order_id"`
	CustomerID    int       `json:"customer_id"`
	OrderDate     time.Time `json:"order_date"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	TotalAmount   float64   `json:"total_amount"`
}

// MonthlyRevenue is one row of the monthly_revenue view, with the
// month-over-month change computed alongside.
type MonthlyRevenue struct {
	Month         time.Time `json:"month"`
	OrderCount    int       `json:"order_count"`
	Revenue       float64   `json:"revenue"`
	AvgOrderValue float64   `json:"avg_order_value"`
	RevenueChange *float64  `json:"revenue_change"`
}

// revenueGroupings whitelists the group_by keys for the revenue time
// series. User input never reaches the SQL text directly.
var revenueGroupings = map[string]string{
	"day":     "DATE_TRUNC('day', order_date)",
	"week":    "DATE_TRUNC('week', order_date)",
	"month":   "DATE_TRUNC('month', order_date)",
	"quarter": "DATE_TRUNC('quarter', order_date)",
}

// appendDateRange adds parameterized bounds on column for any non-empty
// endpoint of the range.
func appendDateRange(conds []string, args []any, column, from, to string) ([]string, []any) {
	if from != "" {
		args = append(args, from)
		conds = append(conds, fmt.Sprintf("%s >= $%d::date", column, len(args)))
	}
	if to != "" {
		args = append(args, to)
		conds = append(conds, fmt.Sprintf("%s <= $%d::date", column, len(args)))
	}
	return conds, args
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func round2f(v float64) float64 {
	return math.Round(v*100) / 100
}

// GetOverview returns the headline KPIs, optionally restricted to a date
// range. Revenue counts completed orders only; order and customer counts
// span all statuses.
func GetOverview(ctx context.Context, db DB, dateFrom, dateTo string) (*Overview, error) {
	conds, args := appendDateRange(nil, nil, "order_date", dateFrom, dateTo)
	query := `
        SELECT
            COUNT(DISTINCT order_id),
            COUNT(DISTINCT customer_id),
            COALESCE(SUM(CASE WHEN status = 'Completed' THEN total_amount ELSE 0 END), 0),
            COALESCE(AVG(CASE WHEN status = 'Completed' THEN total_amount ELSE NULL END), 0)
        FROM orders` + whereClause(conds)

	var o Overview
	if err := db.QueryRow(ctx, query, args...).Scan(
		&o.TotalOrders, &o.TotalCustomers, &o.TotalRevenue, &o.AvgOrderValue,
	); err != nil {
		return nil, fmt.Errorf("failed to query overview KPIs: %w", err)
	}

	conds, args = appendDateRange(nil, nil, "session_date", dateFrom, dateTo)
	sessionQuery := `
        SELECT COUNT(*), COALESCE(SUM(CASE WHEN converted THEN 1 ELSE 0 END), 0)
        FROM web_sessions` + whereClause(conds)

	var sessions, conversions int
	if err := db.QueryRow(ctx, sessionQuery, args...).Scan(&sessions, &conversions); err != nil {
		return nil, fmt.Errorf("failed to query conversion rate: %w", err)
	}
	if sessions > 0 {
		o.ConversionRate = round2f(float64(conversions) / float64(sessions) * 100)
	}

	return &o, nil
}

// GetRevenueSeries returns completed-order revenue bucketed by the given
// grouping key. Unknown keys fall back to month.
func GetRevenueSeries(ctx context.Context, db DB, groupBy, dateFrom, dateTo string) ([]RevenuePoint, error) {
	grouping, ok := revenueGroupings[groupBy]
	if !ok {
		grouping = revenueGroupings["month"]
	}

	conds, args := appendDateRange(nil, nil, "order_date", dateFrom, dateTo)
	query := fmt.Sprintf(`
        SELECT
            %s AS period,
            COALESCE(SUM(CASE WHEN status = 'Completed' THEN total_amount ELSE 0 END), 0),
            COUNT(CASE WHEN status = 'Completed' THEN order_id END)
        FROM orders%s
        GROUP BY period
        ORDER BY period`, grouping, whereClause(conds))

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue series: %w", err)
	}
	defer rows.Close()

	var series []RevenuePoint
	for rows.Next() {
		var p RevenuePoint
		if err := rows.Scan(&p.Period, &p.Revenue, &p.Orders); err != nil {
			return nil, err
		}
		series = append(series, p)
	}
	return series, rows.Err()
}

// GetRevenueBySegment returns the revenue breakdown per customer segment,
// most valuable segment first.
func GetRevenueBySegment(ctx context.Context, db DB, dateFrom, dateTo string) ([]SegmentRevenue, error) {
	conds, args := appendDateRange(nil, nil, "o.order_date", dateFrom, dateTo)
	query := `
        SELECT
            c.customer_segment,
            COALESCE(SUM(CASE WHEN o.status = 'Completed' THEN o.total_amount ELSE 0 END), 0) AS revenue,
            COUNT(CASE WHEN o.status = 'Completed' THEN o.order_id END),
            COUNT(DISTINCT c.customer_id),
            COALESCE(AVG(CASE WHEN o.status = 'Completed' THEN o.total_amount END), 0)
        FROM customers c
        LEFT JOIN orders o ON c.customer_id = o.customer_id` + whereClause(conds) + `
        GROUP BY c.customer_segment
        ORDER BY revenue DESC`

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query segment revenue: %w", err)
	}
	defer rows.Close()

	var segments []SegmentRevenue
	for rows.Next() {
		var s SegmentRevenue
		if err := rows.Scan(&s.Segment, &s.Revenue, &s.Orders, &s.Customers, &s.AvgOrderValue); err != nil {
			return nil, err
		}
		segments = append(segments, s)
	}
	return segments, rows.Err()
}

// GetRFMSegments scores purchasing customers on recency, frequency, and
// monetary value via NTILE quintiles, then maps the scores to named
// behavioral segments. Recency is measured against the newest order date
// in the store, and customers registered within 30 days of it are
// excluded as too new to score.
func GetRFMSegments(ctx context.Context, db DB) ([]RFMSegment, error) {
	const query = `
        WITH ref AS (
            SELECT MAX(order_date) AS ref_date FROM orders
        ),
        rfm_metrics AS (
            SELECT
                c.customer_id,
                (SELECT ref_date FROM ref) - MAX(o.order_date) AS recency,
                COUNT(o.order_id) AS frequency,
                SUM(CASE WHEN o.status = 'Completed' THEN o.total_amount ELSE 0 END) AS monetary
            FROM customers c
            LEFT JOIN orders o ON c.customer_id = o.customer_id
            WHERE c.registration_date <= (SELECT ref_date FROM ref) - INTERVAL '30 days'
            GROUP BY c.customer_id
        ),
        rfm_scores AS (
            SELECT
                recency, frequency, monetary,
                NTILE(5) OVER (ORDER BY recency DESC) AS r_score,
                NTILE(5) OVER (ORDER BY frequency) AS f_score,
                NTILE(5) OVER (ORDER BY monetary) AS m_score
            FROM rfm_metrics
            WHERE monetary > 0
        )
        SELECT
            CASE
                WHEN r_score >= 4 AND f_score >= 4 THEN 'Champions'
                WHEN r_score >= 3 AND f_score >= 3 THEN 'Loyal Customers'
                WHEN r_score >= 3 AND f_score >= 2 THEN 'Potential Loyalists'
                WHEN r_score >= 4 AND f_score <= 2 THEN 'New Customers'
                WHEN r_score >= 2 AND f_score >= 3 THEN 'At Risk'
                WHEN r_score <= 2 AND f_score >= 4 THEN 'Cannot Lose Them'
                WHEN r_score <= 2 AND f_score <= 2 THEN 'Hibernating'
                ELSE 'Others'
            END AS rfm_segment,
            COUNT(*),
            ROUND(AVG(recency), 1),
            ROUND(AVG(frequency), 1),
            ROUND(AVG(monetary), 2)
        FROM rfm_scores
        GROUP BY rfm_segment
        ORDER BY AVG(monetary) DESC`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query RFM segments: %w", err)
	}
	defer rows.Close()

	var segments []RFMSegment
	for rows.Next() {
		var s RFMSegment
		if err := rows.Scan(&s.Segment, &s.Customers, &s.AvgRecencyDays, &s.AvgFrequency, &s.AvgMonetary); err != nil {
			return nil, err
		}
		segments = append(segments, s)
	}
	return segments, rows.Err()
}

// GetAcquisitionChannels summarizes purchasing customers by acquisition
// channel, best average lifetime value first. A non-empty segment
// restricts the result to that customer segment.
func GetAcquisitionChannels(ctx context.Context, db DB, segment string) ([]AcquisitionChannel, error) {
	conds := []string{"total_orders > 0"}
	var args []any
	if segment != "" {
		args = append(args, segment)
		conds = append(conds, fmt.Sprintf("customer_segment = $%d", len(args)))
	}

	query := `
        SELECT
            acquisition_channel,
            COUNT(*),
            ROUND(AVG(lifetime_value), 2),
            ROUND(AVG(total_orders), 2)
        FROM customer_ltv` + whereClause(conds) + `
        GROUP BY acquisition_channel
        ORDER BY ROUND(AVG(lifetime_value), 2) DESC`

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query acquisition channels: %w", err)
	}
	defer rows.Close()

	var channels []AcquisitionChannel
	for rows.Next() {
		var c AcquisitionChannel
		if err := rows.Scan(&c.Channel, &c.Customers, &c.AvgLTV, &c.AvgOrders); err != nil {
			return nil, err
		}
		channels = append(channels, c)
	}
	return channels, rows.Err()
}

// GetTopProducts returns the products with sales, ranked by revenue. A
// non-empty category restricts the ranking to that category.
func GetTopProducts(ctx context.Context, db DB, category string, limit int) ([]ProductPerformance, error) {
	if limit < 1 {
		limit = 20
	}
	conds := []string{"times_ordered > 0"}
	var args []any
	if category != "" {
		args = append(args, category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	args = append(args, limit)

	query := `
        SELECT
            product_name,
            category,
            times_ordered,
            total_quantity_sold,
            ROUND(total_revenue, 2),
            ROUND(avg_selling_price, 2),
            ROUND(avg_profit_per_unit, 2)
        FROM product_performance` + whereClause(conds) +
		fmt.Sprintf(`
        ORDER BY total_revenue DESC
        LIMIT $%d`, len(args))

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	var products []ProductPerformance
	for rows.Next() {
		var p ProductPerformance
		if err := rows.Scan(&p.ProductName, &p.Category, &p.TimesOrdered, &p.UnitsSold,
			&p.Revenue, &p.AvgPrice, &p.ProfitPerUnit); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetCategoryPerformance aggregates the product_performance view per
// category, including the share of catalog that has sold at all.
func GetCategoryPerformance(ctx context.Context, db DB) ([]CategoryPerformance, error) {
	const query = `
        SELECT
            category,
            COUNT(*),
            COUNT(CASE WHEN times_ordered > 0 THEN 1 END),
            ROUND(COUNT(CASE WHEN times_ordered > 0 THEN 1 END) * 100.0 / COUNT(*), 1),
            COALESCE(ROUND(SUM(total_revenue), 2), 0)
        FROM product_performance
        GROUP BY category
        ORDER BY SUM(total_revenue) DESC NULLS LAST`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query category performance: %w", err)
	}
	defer rows.Close()

	var categories []CategoryPerformance
	for rows.Next() {
		var c CategoryPerformance
		if err := rows.Scan(&c.Category, &c.TotalProducts, &c.ProductsSold, &c.SellThroughRate, &c.Revenue); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetSlowMovers returns the highest-priced products with five or fewer
// sales, the inventory most worth attention.
func GetSlowMovers(ctx context.Context, db DB, limit int) ([]SlowMover, error) {
	if limit < 1 {
		limit = 15
	}
	const query = `
        SELECT
            product_name,
            category,
            ROUND(price, 2),
            COALESCE(times_ordered, 0),
            COALESCE(total_quantity_sold, 0),
            COALESCE(ROUND(total_revenue, 2), 0)
        FROM product_performance
        WHERE times_ordered IS NULL OR times_ordered <= 5
        ORDER BY price DESC
        LIMIT $1`

	rows, err := db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query slow movers: %w", err)
	}
	defer rows.Close()

	var movers []SlowMover
	for rows.Next() {
		var m SlowMover
		if err := rows.Scan(&m.ProductName, &m.Category, &m.Price, &m.TimesOrdered, &m.QuantitySold, &m.Revenue); err != nil {
			return nil, err
		}
		movers = append(movers, m)
	}
	return movers, rows.Err()
}

// GetTrafficSources summarizes session outcomes per traffic source,
// highest revenue first.
func GetTrafficSources(ctx context.Context, db DB) ([]TrafficSource, error) {
	const query = `
        SELECT
            traffic_source,
            COUNT(*),
            SUM(CASE WHEN converted THEN 1 ELSE 0 END),
            ROUND(SUM(CASE WHEN converted THEN 1 ELSE 0 END) * 100.0 / COUNT(*), 2),
            ROUND(AVG(session_duration_seconds), 0),
            ROUND(AVG(page_views), 1),
            ROUND(SUM(revenue), 2),
            ROUND(SUM(revenue) / COUNT(*), 2)
        FROM web_sessions
        GROUP BY traffic_source
        ORDER BY SUM(revenue) DESC`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query traffic sources: %w", err)
	}
	defer rows.Close()

	var sources []TrafficSource
	for rows.Next() {
		var t TrafficSource
		var avgDuration float64
		if err := rows.Scan(&t.Source, &t.Sessions, &t.Conversions, &t.ConversionRate,
			&avgDuration, &t.AvgPageViews, &t.Revenue, &t.RevenuePerSession); err != nil {
			return nil, err
		}
		t.AvgSessionDuration = int(avgDuration)
		sources = append(sources, t)
	}
	return sources, rows.Err()
}

// GetDevicePerformance summarizes session outcomes per device type, best
// converting device first.
func GetDevicePerformance(ctx context.Context, db DB) ([]DevicePerformance, error) {
	const query = `
        SELECT
            device_type,
            COUNT(*),
            ROUND(AVG(session_duration_seconds), 0),
            ROUND(AVG(page_views), 1),
            ROUND(SUM(CASE WHEN bounced = 1 THEN 1 ELSE 0 END) * 100.0 / COUNT(*), 1),
            ROUND(SUM(CASE WHEN converted THEN 1 ELSE 0 END) * 100.0 / COUNT(*), 2)
        FROM web_sessions
        GROUP BY device_type
        ORDER BY ROUND(SUM(CASE WHEN converted THEN 1 ELSE 0 END) * 100.0 / COUNT(*), 2) DESC`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query device performance: %w", err)
	}
	defer rows.Close()

	var devices []DevicePerformance
	for rows.Next() {
		var d DevicePerformance
		var avgDuration float64
		if err := rows.Scan(&d.Device, &d.Sessions, &avgDuration, &d.AvgPageViews,
			&d.BounceRate, &d.ConversionRate); err != nil {
			return nil, err
		}
		d.AvgDuration = int(avgDuration)
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

// GetRecentOrders returns the newest orders across all statuses.
func GetRecentOrders(ctx context.Context, db DB, limit int) ([]RecentOrder, error) {
	if limit < 1 {
		limit = 50
	}
	const query = `
        SELECT order_id, customer_id, order_date, status, payment_method, ROUND(total_amount, 2)
        FROM orders
        ORDER BY order_date DESC, order_id DESC
        LIMIT $1`

	rows, err := db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent orders: %w", err)
	}
	defer rows.Close()

	var orders []RecentOrder
	for rows.Next() {
		var o RecentOrder
		if err := rows.Scan(&o.OrderID, &o.CustomerID, &o.OrderDate, &o.Status, &o.PaymentMethod, &o.TotalAmount); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// GetMonthlyRevenue reads the monthly_revenue view with the
// month-over-month revenue change. RevenueChange is nil for the first
// month.
func GetMonthlyRevenue(ctx context.Context, db DB) ([]MonthlyRevenue, error) {
	const query = `
        SELECT
            month,
            order_count,
            ROUND(revenue, 2),
            ROUND(avg_order_value, 2),
            ROUND(revenue - LAG(revenue) OVER (ORDER BY month), 2)
        FROM monthly_revenue
        ORDER BY month`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly revenue: %w", err)
	}
	defer rows.Close()

	var months []MonthlyRevenue
	for rows.Next() {
		var m MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.OrderCount, &m.Revenue, &m.AvgOrderValue, &m.RevenueChange); err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return months, rows.Err()
}
