//-------------------------------------------------------------------------
//
// shopgen - Synthetic E-commerce Analytics
//
// Copyright (c) 2025 - 2026, the shopgen authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package report renders the scripted analytics report to a writer. It
// reads through the same query layer as the API server, so the numbers
// always agree between the two surfaces.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopgen/shopgen/internal/store"
)

// Run writes the full report: revenue, customer, product, and marketing
// sections followed by a key-figures summary.
func Run(ctx context.Context, db store.DB, w io.Writer) error {
	fmt.Fprintln(w, "E-COMMERCE ANALYTICS REPORT")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	if err := revenueSection(ctx, db, w); err != nil {
		return fmt.Errorf("revenue section: %w", err)
	}
	if err := customerSection(ctx, db, w); err != nil {
		return fmt.Errorf("customer section: %w", err)
	}
	if err := productSection(ctx, db, w); err != nil {
		return fmt.Errorf("product section: %w", err)
	}
	if err := marketingSection(ctx, db, w); err != nil {
		return fmt.Errorf("marketing section: %w", err)
	}
	if err := summarySection(ctx, db, w); err != nil {
		return fmt.Errorf("summary section: %w", err)
	}
	return nil
}

func sectionHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("=", 50))
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func revenueSection(ctx context.Context, db store.DB, w io.Writer) error {
	sectionHeader(w, "REVENUE ANALYSIS")

	months, err := store.GetMonthlyRevenue(ctx, db)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\nMonthly Revenue Trend:")
	tw := newTable(w)
	fmt.Fprintln(tw, "month\torders\trevenue\tavg_order_value\tchange")
	for _, m := range months {
		change := "-"
		if m.RevenueChange != nil {
			change = fmt.Sprintf("%+.2f", *m.RevenueChange)
		}
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%s\n",
			m.Month.Format("2006-01"), m.OrderCount, m.Revenue, m.AvgOrderValue, change)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	segments, err := store.GetRevenueBySegment(ctx, db, "", "")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\nRevenue by Customer Segment:")
	tw = newTable(w)
	fmt.Fprintln(tw, "segment\tcustomers\torders\trevenue\tavg_order_value")
	for _, s := range segments {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\t%.2f\n",
			s.Segment, s.Customers, s.Orders, s.Revenue, s.AvgOrderValue)
	}
	return tw.Flush()
}

func customerSection(ctx context.Context, db store.DB, w io.Writer) error {
	sectionHeader(w, "CUSTOMER ANALYSIS")

	channels, err := store.GetAcquisitionChannels(ctx, db, "")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\nCustomer Acquisition by Channel:")
	tw := newTable(w)
	fmt.Fprintln(tw, "channel\tcustomers\tavg_ltv\tavg_orders")
	for _, c := range channels {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\n", c.Channel, c.Customers, c.AvgLTV, c.AvgOrders)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	rfm, err := store.GetRFMSegments(ctx, db)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\nRFM Customer Segmentation:")
	tw = newTable(w)
	fmt.Fprintln(tw, "segment\tcustomers\tavg_recency_days\tavg_frequency\tavg_monetary")
	for _, s := range rfm {
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%.1f\t%.2f\n",
			s.Segment, s.Customers, s.AvgRecencyDays, s.AvgFrequency, s.AvgMonetary)
	}
	return tw.Flush()
}

func productSection(ctx context.Context, db store.DB, w io.Writer) error {
	sectionHeader(w, "PRODUCT ANALYSIS")

	products, err := store.GetTopProducts(ctx, db, "", 10)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\nTop 10 Products by Revenue:")
	tw := newTable(w)
	fmt.Fprintln(tw, "product\tcategory\torders\tunits\trevenue\tavg_price\tprofit_per_unit")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.2f\t%.2f\t%.2f\n",
			p.ProductName, p.Category, p.TimesOrdered, p.UnitsSold, p.Revenue, p.AvgPrice, p.ProfitPerUnit)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	categories, err := store.GetCategoryPerformance(ctx, db)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\nCategory Performance:")
	tw = newTable(w)
	fmt.Fprintln(tw, "category\tproducts\tsold\tsell_through_pct\trevenue")
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f\t%.2f\n",
			c.Category, c.TotalProducts, c.ProductsSold, c.SellThroughRate, c.Revenue)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	movers, err := store.GetSlowMovers(ctx, db, 15)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\nSlow Moving Products:")
	tw = newTable(w)
	fmt.Fprintln(tw, "product\tcategory\tprice\torders\tunits\trevenue")
	for _, m := range movers {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%d\t%d\t%.2f\n",
			m.ProductName, m.Category, m.Price, m.TimesOrdered, m.QuantitySold, m.Revenue)
	}
	return tw.Flush()
}

func marketingSection(ctx context.Context, db store.DB, w io.Writer) error {
	sectionHeader(w, "MARKETING ANALYSIS")

	sources, err := store.GetTrafficSources(ctx, db)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\nTraffic Source Performance:")
	tw := newTable(w)
	fmt.Fprintln(tw, "source\tsessions\tconversions\tconv_pct\tavg_duration\tavg_pages\trevenue\trev_per_session")
	for _, s := range sources {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\t%d\t%.1f\t%.2f\t%.2f\n",
			s.Source, s.Sessions, s.Conversions, s.ConversionRate,
			s.AvgSessionDuration, s.AvgPageViews, s.Revenue, s.RevenuePerSession)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	devices, err := store.GetDevicePerformance(ctx, db)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\nDevice Type Performance:")
	tw = newTable(w)
	fmt.Fprintln(tw, "device\tsessions\tavg_duration\tavg_pages\tbounce_pct\tconv_pct")
	for _, d := range devices {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f\t%.1f\t%.2f\n",
			d.Device, d.Sessions, d.AvgDuration, d.AvgPageViews, d.BounceRate, d.ConversionRate)
	}
	return tw.Flush()
}

func summarySection(ctx context.Context, db store.DB, w io.Writer) error {
	sectionHeader(w, "KEY FIGURES")

	overview, err := store.GetOverview(ctx, db, "", "")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nTotal Revenue:    $%.2f\n", overview.TotalRevenue)
	fmt.Fprintf(w, "Total Orders:     %d\n", overview.TotalOrders)
	fmt.Fprintf(w, "Total Customers:  %d\n", overview.TotalCustomers)
	fmt.Fprintf(w, "Avg Order Value:  $%.2f\n", overview.AvgOrderValue)
	fmt.Fprintf(w, "Conversion Rate:  %.2f%%\n", overview.ConversionRate)

	categories, err := store.GetCategoryPerformance(ctx, db)
	if err != nil {
		return err
	}
	if len(categories) > 0 {
		fmt.Fprintf(w, "Top Category:     %s ($%.2f)\n", categories[0].Category, categories[0].Revenue)
	}

	sources, err := store.GetTrafficSources(ctx, db)
	if err != nil {
		return err
	}
	best := ""
	bestRate := 0.0
	for _, s := range sources {
		if s.ConversionRate > bestRate {
			best, bestRate = s.Source, s.ConversionRate
		}
	}
	if best != "" {
		fmt.Fprintf(w, "Best Channel:     %s (%.2f%% conversion)\n", best, bestRate)
	}
	return nil
}
