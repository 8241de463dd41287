//-------------------------------------------------------------------------
//
// shopgen - Synthetic E-commerce Analytics
//
// Copyright (c) 2025 - 2026, the shopgen authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package ecommerce

import (
	"fmt"
	"math"
	"time"

	"github.com/shopgen/shopgen/internal/datagen"
	"github.com/shopgen/shopgen/internal/logging"
)

// Reference data
var (
	customerSegments = []string{"Budget", "Standard", "Premium", "Enterprise"}
	segmentWeights   = []float64{0.30, 0.40, 0.25, 0.05}

	acquisitionChannels = []string{
		"Organic Search", "Paid Search", "Social Media", "Email Marketing",
		"Direct", "Referral", "Affiliate",
	}
	channelWeights = []float64{0.25, 0.20, 0.15, 0.15, 0.10, 0.08, 0.07}

	productCategories = []string{
		"Electronics", "Clothing", "Home & Garden", "Books",
		"Sports", "Health & Beauty", "Toys", "Automotive",
	}

	// Some categories are simply more expensive than others.
	categoryPriceMultipliers = map[string]float64{
		"Electronics":     3.0,
		"Automotive":      2.5,
		"Home & Garden":   1.8,
		"Sports":          1.5,
		"Health & Beauty": 1.2,
		"Clothing":        1.0,
		"Toys":            0.8,
		"Books":           0.4,
	}

	orderStatuses = []string{"Completed", "Pending", "Cancelled", "Returned"}
	statusWeights = []float64{0.85, 0.05, 0.05, 0.05}

	paymentMethods = []string{"Credit Card", "Debit Card", "PayPal", "Bank Transfer"}
	paymentWeights = []float64{0.60, 0.25, 0.10, 0.05}

	trafficSources = []string{
		"organic_search", "paid_search", "social", "email", "direct", "referral",
	}
	trafficWeights = []float64{0.35, 0.25, 0.15, 0.10, 0.10, 0.05}

	deviceTypes   = []string{"desktop", "mobile", "tablet"}
	deviceWeights = []float64{0.40, 0.50, 0.10}

	genders = []string{"M", "F"}
)

// segmentBehavior describes how a customer segment shops. The values are
// sampling means and weights, not hard caps.
type segmentBehavior struct {
	AvgOrderValue  float64
	OrderFrequency float64
	ItemsPerOrder  float64
}

var segmentBehaviors = map[string]segmentBehavior{
	"Budget":     {AvgOrderValue: 50, OrderFrequency: 0.3, ItemsPerOrder: 2},
	"Standard":   {AvgOrderValue: 120, OrderFrequency: 0.5, ItemsPerOrder: 3},
	"Premium":    {AvgOrderValue: 300, OrderFrequency: 0.7, ItemsPerOrder: 5},
	"Enterprise": {AvgOrderValue: 800, OrderFrequency: 0.9, ItemsPerOrder: 10},
}

// Monthly seasonality weights, January through December. Sales peak in
// November-December and dip in January-February. A month's weight
// probabilistically skips candidate orders, so the requested order count
// is a soft target.
var monthWeights = [12]float64{
	0.7, 0.7, 0.9, 0.9, 1.0, 1.0, 0.8, 0.8, 1.1, 1.1, 1.4, 1.5,
}

// sessionsPerOrder controls the session-to-order funnel: five sessions per
// order targets a 20% conversion rate.
const sessionsPerOrder = 5

const taxRate = 0.08

// Config bounds a generation run.
type Config struct {
	Customers int
	Products  int
	Orders    int // soft target; seasonality may reduce the final count
	StartDate time.Time
	EndDate   time.Time
}

// Generator produces the synthetic dataset. The faker is consumed in a
// fixed order (customers, products, orders with items, sessions), so runs
// with the same seed and config are byte-identical.
type Generator struct {
	faker *datagen.Faker
	cfg   Config
}

// NewGenerator creates a generator over an explicitly seeded random source.
func NewGenerator(faker *datagen.Faker, cfg Config) *Generator {
	return &Generator{faker: faker, cfg: cfg}
}

// GenerateAll runs the full pipeline in dependency order and returns the
// five tables. Generation is in-memory and all-or-nothing: any error means
// no dataset.
func (g *Generator) GenerateAll() (*Dataset, error) {
	if g.cfg.Customers < 1 || g.cfg.Products < 1 || g.cfg.Orders < 1 {
		return nil, fmt.Errorf("customer, product, and order counts must all be at least 1")
	}
	if !g.cfg.EndDate.After(g.cfg.StartDate) {
		return nil, fmt.Errorf("end date must be after start date")
	}

	customers := g.GenerateCustomers()
	products := g.GenerateProducts()
	orders, items, err := g.GenerateOrders(customers, products)
	if err != nil {
		return nil, err
	}
	sessions := g.GenerateSessions(customers, orders)

	return &Dataset{
		Customers:  customers,
		Products:   products,
		Orders:     orders,
		OrderItems: items,
		Sessions:   sessions,
	}, nil
}

// GenerateCustomers generates the customer table. Each customer is sampled
// independently; registration dates are biased toward the end of the range
// via exponential decay.
func (g *Generator) GenerateCustomers() []Customer {
	logging.Info().Int("count", g.cfg.Customers).Msg("Generating customers")

	rangeDays := g.rangeDays()
	customers := make([]Customer, g.cfg.Customers)

	for i := range customers {
		segment := datagen.ChooseWeighted(g.faker, customerSegments, segmentWeights)
		channel := datagen.ChooseWeighted(g.faker, acquisitionChannels, channelWeights)

		daysBack := math.Min(g.faker.Exponential(200), float64(rangeDays))

		customers[i] = Customer{
			CustomerID:         i + 1,
			Email:              g.faker.Email(),
			FirstName:          g.faker.FirstName(),
			LastName:           g.faker.LastName(),
			BirthDate:          truncateDay(g.faker.DateWithin(g.cfg.EndDate.AddDate(-80, 0, 0), g.cfg.EndDate.AddDate(-18, 0, 0))),
			Gender:             datagen.Choose(g.faker, genders),
			Address:            g.faker.Street(),
			City:               g.faker.City(),
			Country:            g.faker.Country(),
			PostalCode:         g.faker.Zip(),
			CustomerSegment:    segment,
			AcquisitionChannel: channel,
			RegistrationDate:   g.cfg.EndDate.AddDate(0, 0, -int(daysBack)),
			IsActive:           g.faker.Chance(0.85),
		}
	}

	logging.Info().Int("count", len(customers)).Msg("customers complete")
	return customers
}

// GenerateProducts generates the product catalog. Prices are log-normal
// scaled by a category multiplier; cost comes from a margin rate clipped
// to [0.10, 0.80], so cost never exceeds price.
func (g *Generator) GenerateProducts() []Product {
	logging.Info().Int("count", g.cfg.Products).Msg("Generating products")

	products := make([]Product, g.cfg.Products)

	for i := range products {
		category := datagen.Choose(g.faker, productCategories)

		basePrice := g.faker.LogNormal(3, 1)
		price := round2(basePrice * categoryPriceMultipliers[category])

		marginRate := g.faker.ClippedNormal(0.4, 0.1, 0.1, 0.8)
		cost := round2(price * (1 - marginRate))

		products[i] = Product{
			ProductID:    i + 1,
			ProductName:  g.faker.ProductName(),
			Category:     category,
			Subcategory:  fmt.Sprintf("%s - %s", category, g.faker.Word()),
			Brand:        g.faker.Company(),
			Price:        price,
			Cost:         cost,
			WeightKg:     round2(g.faker.LogNormal(0, 1)),
			DimensionsCm: fmt.Sprintf("%dx%dx%d", g.faker.Int(5, 50), g.faker.Int(5, 50), g.faker.Int(2, 20)),
			LaunchDate:   truncateDay(g.faker.DateWithin(g.cfg.StartDate, g.cfg.EndDate)),
			IsActive:     g.faker.Chance(0.9),
		}
	}

	logging.Info().Int("count", len(products)).Msg("products complete")
	return products
}

// GenerateOrders generates up to cfg.Orders orders and their line items.
// Candidates are dropped when a uniform draw exceeds the order month's
// seasonality weight, so the returned count can undershoot the target.
// Every emitted order references an existing customer, and its items
// reference distinct existing products.
func (g *Generator) GenerateOrders(customers []Customer, products []Product) ([]Order, []OrderItem, error) {
	if len(products) == 0 {
		return nil, nil, fmt.Errorf("cannot generate orders: product catalog is empty")
	}
	if len(customers) == 0 {
		return nil, nil, fmt.Errorf("cannot generate orders: no customers")
	}

	logging.Info().Int("target", g.cfg.Orders).Msg("Generating orders")

	// Customers shop at their segment's frequency.
	weights := make([]float64, len(customers))
	for i, c := range customers {
		weights[i] = segmentBehaviors[c.CustomerSegment].OrderFrequency
	}
	sampler := datagen.NewWeightedSampler(weights)

	rangeDays := g.rangeDays()
	orders := make([]Order, 0, g.cfg.Orders)
	items := make([]OrderItem, 0, g.cfg.Orders*3)

	for candidate := 1; candidate <= g.cfg.Orders; candidate++ {
		customer := customers[sampler.Sample(g.faker)]

		daysBack := math.Min(g.faker.Exponential(30), float64(rangeDays))
		orderDate := g.cfg.EndDate.AddDate(0, 0, -int(daysBack))

		// Seasonality filter: skip the candidate entirely when the month is slow.
		monthWeight := monthWeights[orderDate.Month()-1]
		if g.faker.Uniform() > monthWeight/1.5 {
			continue
		}

		status := datagen.ChooseWeighted(g.faker, orderStatuses, statusWeights)
		payment := datagen.ChooseWeighted(g.faker, paymentMethods, paymentWeights)

		var shipping float64
		if !g.faker.Chance(0.1) { // 10% of orders ship free
			shipping = round2(math.Max(0, g.faker.Normal(10, 3)))
		}

		behavior := segmentBehaviors[customer.CustomerSegment]
		numItems := max(1, g.faker.Poisson(behavior.ItemsPerOrder))

		var subtotal float64
		for _, idx := range datagen.SampleDistinct(g.faker, numItems, len(products)) {
			product := products[idx]

			quantity := max(1, g.faker.Poisson(2))

			// Promotions and dynamic pricing wobble the unit price by ~10%,
			// floored at half the list price.
			variation := math.Max(0.5, g.faker.Normal(1.0, 0.1))
			unitPrice := round2(product.Price * variation)
			totalPrice := round2(float64(quantity) * unitPrice)
			subtotal += totalPrice

			items = append(items, OrderItem{
				OrderID:    candidate,
				ProductID:  product.ProductID,
				Quantity:   quantity,
				UnitPrice:  unitPrice,
				TotalPrice: totalPrice,
			})
		}

		var discountRate float64
		if subtotal > 200 {
			discountRate = g.faker.UniformRange(0.05, 0.15)
		} else if g.faker.Chance(0.1) {
			discountRate = g.faker.UniformRange(0.10, 0.25)
		}
		discount := round2(subtotal * discountRate)

		taxable := subtotal - discount
		tax := round2(taxable * taxRate)
		total := round2(taxable + tax + shipping)

		orders = append(orders, Order{
			OrderID:        candidate,
			CustomerID:     customer.CustomerID,
			OrderDate:      orderDate,
			Status:         status,
			PaymentMethod:  payment,
			ShippingCost:   shipping,
			DiscountAmount: discount,
			TaxAmount:      tax,
			TotalAmount:    total,
		})
	}

	logging.Info().
		Int("orders", len(orders)).
		Int("order_items", len(items)).
		Int("skipped", g.cfg.Orders-len(orders)).
		Msg("orders complete")
	return orders, items, nil
}

// GenerateSessions generates five web sessions per order. The first
// len(orders) sessions are marked converted and carry the corresponding
// order's total as revenue; attribution is positional, matching the
// published dataset.
func (g *Generator) GenerateSessions(customers []Customer, orders []Order) []WebSession {
	numSessions := len(orders) * sessionsPerOrder
	logging.Info().Int("count", numSessions).Msg("Generating web sessions")

	sessions := make([]WebSession, numSessions)

	for i := range sessions {
		sessionID := i + 1

		var customerID int
		if g.faker.Chance(0.6) && len(customers) > 0 {
			customerID = customers[g.faker.Int(0, len(customers)-1)].CustomerID
		}

		daysBack := int(g.faker.Exponential(20))
		duration := int(math.Max(30, g.faker.Exponential(300)))
		pageViews := max(1, g.faker.Poisson(3))

		bounced := 0
		if pageViews == 1 {
			bounced = 1
		}

		converted := sessionID <= len(orders)
		var revenue float64
		if converted {
			revenue = orders[sessionID-1].TotalAmount
		}

		sessions[i] = WebSession{
			SessionID:       sessionID,
			CustomerID:      customerID,
			SessionDate:     g.cfg.EndDate.AddDate(0, 0, -daysBack),
			TrafficSource:   datagen.ChooseWeighted(g.faker, trafficSources, trafficWeights),
			DeviceType:      datagen.ChooseWeighted(g.faker, deviceTypes, deviceWeights),
			DurationSeconds: duration,
			PageViews:       pageViews,
			Bounced:         bounced,
			Converted:       converted,
			Revenue:         revenue,
		}
	}

	logging.Info().Int("count", len(sessions)).Msg("web sessions complete")
	return sessions
}

func (g *Generator) rangeDays() int {
	return int(g.cfg.EndDate.Sub(g.cfg.StartDate).Hours() / 24)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
