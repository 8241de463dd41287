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
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopgen/shopgen/internal/logging"
)

const dateFormat = "2006-01-02"

// TableNames lists the exported tables in dependency order. File and
// column names are the interchange contract; every consumer depends on
// them literally.
var TableNames = []string{"customers", "products", "orders", "order_items", "web_sessions"}

// WriteCSV writes the five tables as CSV files under dir, one file per
// table. Files are staged with a .tmp suffix and renamed only after every
// table has serialized, so a failed run leaves no partial dataset behind.
func (d *Dataset) WriteCSV(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tables := map[string]func(*csv.Writer) error{
		"customers":    d.writeCustomers,
		"products":     d.writeProducts,
		"orders":       d.writeOrders,
		"order_items":  d.writeOrderItems,
		"web_sessions": d.writeSessions,
	}

	staged := make([]string, 0, len(TableNames))
	cleanup := func() {
		for _, path := range staged {
			os.Remove(path)
		}
	}

	for _, name := range TableNames {
		tmp := filepath.Join(dir, name+".csv.tmp")
		if err := writeCSVFile(tmp, tables[name]); err != nil {
			cleanup()
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		staged = append(staged, tmp)
	}

	for i, name := range TableNames {
		final := filepath.Join(dir, name+".csv")
		if err := os.Rename(staged[i], final); err != nil {
			cleanup()
			return fmt.Errorf("failed to finalize %s: %w", name, err)
		}
		logging.Info().Str("file", final).Msg("CSV written")
	}

	return nil
}

func writeCSVFile(path string, write func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func (d *Dataset) writeCustomers(w *csv.Writer) error {
	if err := w.Write([]string{
		"customer_id", "email", "first_name", "last_name", "birth_date",
		"gender", "address", "city", "country", "postal_code",
		"customer_segment", "acquisition_channel", "registration_date",
		"is_active",
	}); err != nil {
		return err
	}
	for _, c := range d.Customers {
		if err := w.Write([]string{
			strconv.Itoa(c.CustomerID),
			c.Email,
			c.FirstName,
			c.LastName,
			c.BirthDate.Format(dateFormat),
			c.Gender,
			c.Address,
			c.City,
			c.Country,
			c.PostalCode,
			c.CustomerSegment,
			c.AcquisitionChannel,
			c.RegistrationDate.Format(dateFormat),
			strconv.FormatBool(c.IsActive),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dataset) writeProducts(w *csv.Writer) error {
	if err := w.Write([]string{
		"product_id", "product_name", "category", "subcategory", "brand",
		"price", "cost", "weight_kg", "dimensions_cm", "launch_date",
		"is_active",
	}); err != nil {
		return err
	}
	for _, p := range d.Products {
		if err := w.Write([]string{
			strconv.Itoa(p.ProductID),
			p.ProductName,
			p.Category,
			p.Subcategory,
			p.Brand,
			formatAmount(p.Price),
			formatAmount(p.Cost),
			formatAmount(p.WeightKg),
			p.DimensionsCm,
			p.LaunchDate.Format(dateFormat),
			strconv.FormatBool(p.IsActive),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dataset) writeOrders(w *csv.Writer) error {
	if err := w.Write([]string{
		"order_id", "customer_id", "order_date", "status", "payment_method",
		"shipping_cost", "discount_amount", "tax_amount", "total_amount",
	}); err != nil {
		return err
	}
	for _, o := range d.Orders {
		if err := w.Write([]string{
			strconv.Itoa(o.OrderID),
			strconv.Itoa(o.CustomerID),
			o.OrderDate.Format(dateFormat),
			o.Status,
			o.PaymentMethod,
			formatAmount(o.ShippingCost),
			formatAmount(o.DiscountAmount),
			formatAmount(o.TaxAmount),
			formatAmount(o.TotalAmount),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dataset) writeOrderItems(w *csv.Writer) error {
	if err := w.Write([]string{
		"order_id", "product_id", "quantity", "unit_price", "total_price",
	}); err != nil {
		return err
	}
	for _, it := range d.OrderItems {
		if err := w.Write([]string{
			strconv.Itoa(it.OrderID),
			strconv.Itoa(it.ProductID),
			strconv.Itoa(it.Quantity),
			formatAmount(it.UnitPrice),
			formatAmount(it.TotalPrice),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dataset) writeSessions(w *csv.Writer) error {
	if err := w.Write([]string{
		"session_id", "customer_id", "session_date", "traffic_source",
		"device_type", "session_duration_seconds", "page_views", "bounced",
		"converted", "revenue",
	}); err != nil {
		return err
	}
	for _, s := range d.Sessions {
		customerID := ""
		if s.CustomerID != 0 {
			customerID = strconv.Itoa(s.CustomerID)
		}
		if err := w.Write([]string{
			strconv.Itoa(s.SessionID),
			customerID,
			s.SessionDate.Format(dateFormat),
			s.TrafficSource,
			s.DeviceType,
			strconv.Itoa(s.DurationSeconds),
			strconv.Itoa(s.PageViews),
			strconv.Itoa(s.Bounced),
			strconv.FormatBool(s.Converted),
			formatAmount(s.Revenue),
		}); err != nil {
			return err
		}
	}
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
