// Package ecommerce implements the synthetic e-commerce dataset generator.
// It produces five related tables (customers, products, orders, order items,
// web sessions) whose statistical shape mimics a real online store: skewed
// spend, seasonal order volume, segment-conditioned behavior, and a
// sessions-to-orders conversion funnel.
package ecommerce

import "time"

// Customer is one row of the customers table. Segment and acquisition
// channel are drawn once at generation time and never change; all
// downstream behavior weighting keys off CustomerSegment.
type Customer struct {
	CustomerID         int
	Email              string
	FirstName          string
	LastName           string
	BirthDate          time.Time
	Gender             string
	Address            string
	City               string
	Country            string
	PostalCode         string
	CustomerSegment    string
	AcquisitionChannel string
	RegistrationDate   time.Time
	IsActive           bool
}

// Product is one row of the products table. Cost is derived from price via
// a clipped margin rate, so cost never exceeds price.
type Product struct {
	ProductID    int
	ProductName  string
	Category     string
	Subcategory  string
	Brand        string
	Price        float64
	Cost         float64
	WeightKg     float64
	DimensionsCm string
	LaunchDate   time.Time
	IsActive     bool
}

// Order is one row of the orders table. Discount, tax, and total are
// computed after the order's items, in that sequence. OrderID keeps the
// candidate numbering from generation, so seasonality skipping leaves gaps.
type Order struct {
	OrderID        int
	CustomerID     int
	OrderDate      time.Time
	Status         string
	PaymentMethod  string
	ShippingCost   float64
	DiscountAmount float64
	TaxAmount      float64
	TotalAmount    float64
}

// OrderItem is one line item. TotalPrice is Quantity times the rounded
// UnitPrice, and an order's pre-discount subtotal is the exact sum of its
// items' TotalPrice values.
type OrderItem struct {
	OrderID    int
	ProductID  int
	Quantity   int
	UnitPrice  float64
	TotalPrice float64
}

// WebSession is one row of the web_sessions table. CustomerID zero means
// an anonymous session. Converted sessions carry the total of the order
// they are attributed to; all others carry zero revenue.
type WebSession struct {
	SessionID       int
	CustomerID      int
	SessionDate     time.Time
	TrafficSource   string
	DeviceType      string
	DurationSeconds int
	PageViews       int
	Bounced         int
	Converted       bool
	Revenue         float64
}

// Dataset holds the five generated tables. Tables are generated once per
// run and persisted verbatim; nothing mutates them afterwards.
type Dataset struct {
	Customers  []Customer
	Products   []Product
	Orders     []Order
	OrderItems []OrderItem
	Sessions   []WebSession
}
