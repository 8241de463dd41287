//-------------------------------------------------------------------------
//
// shopgen - Synthetic E-commerce Analytics
//
// Copyright (c) 2025 - 2026, the shopgen authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

//go:build integration
// +build integration

// Integration tests for the analytic store.
// Run with: go test -tags=integration ./internal/store/...
// Requires PostgreSQL to be available.
// Set SHOPGEN_TEST_CONN environment variable to override connection string.

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopgen/shopgen/internal/datagen"
	"github.com/shopgen/shopgen/internal/ecommerce"
	"github.com/shopgen/shopgen/internal/store"
	"github.com/shopgen/shopgen/internal/testutil"
	"github.com/shopgen/shopgen/pkg/version"
)

// TestStoreIntegration exercises the full store lifecycle: schema, load,
// views, metadata, and the analytics queries over a small generated
// dataset.
func TestStoreIntegration(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)

	testConnStr := testutil.CreateTestDB(t, baseConnStr, "store")
	dbName := testutil.GetDBNameFromConnStr(testConnStr)

	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	t.Cleanup(cleanup.Cleanup)

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)

	ctx := context.Background()

	faker := datagen.NewFakerWithSeed(42)
	gen := ecommerce.NewGenerator(faker, ecommerce.Config{
		Customers: 100,
		Products:  50,
		Orders:    200,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	ds, err := gen.GenerateAll()
	if err != nil {
		t.Fatalf("GenerateAll failed: %v", err)
	}

	t.Run("CreateSchema", func(t *testing.T) {
		if err := store.CreateSchema(ctx, pool); err != nil {
			t.Fatalf("CreateSchema failed: %v", err)
		}
	})

	t.Run("LoadDataset", func(t *testing.T) {
		if err := store.LoadDataset(ctx, pool, ds); err != nil {
			t.Fatalf("LoadDataset failed: %v", err)
		}

		checks := []struct {
			table string
			want  int
		}{
			{"customers", len(ds.Customers)},
			{"products", len(ds.Products)},
			{"orders", len(ds.Orders)},
			{"order_items", len(ds.OrderItems)},
			{"web_sessions", len(ds.Sessions)},
		}
		for _, c := range checks {
			var count int
			if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(&count); err != nil {
				t.Fatalf("count %s failed: %v", c.table, err)
			}
			if count != c.want {
				t.Errorf("%s: got %d rows, want %d", c.table, count, c.want)
			}
		}
	})

	t.Run("CreateViews", func(t *testing.T) {
		if err := store.CreateViews(ctx, pool); err != nil {
			t.Fatalf("CreateViews failed: %v", err)
		}
	})

	t.Run("Metadata", func(t *testing.T) {
		info := store.RunInfo{Preset: "minimal", Seed: 42}
		if err := store.SaveMetadata(ctx, pool, info, ds); err != nil {
			t.Fatalf("SaveMetadata failed: %v", err)
		}

		seed, err := store.GetMetadataValue(ctx, pool, "seed")
		if err != nil {
			t.Fatalf("GetMetadataValue failed: %v", err)
		}
		if seed != "42" {
			t.Errorf("seed metadata = %q, want \"42\"", seed)
		}

		all, err := store.GetAllMetadata(ctx, pool)
		if err != nil {
			t.Fatalf("GetAllMetadata failed: %v", err)
		}
		if all["preset"] != "minimal" {
			t.Errorf("preset metadata = %q, want \"minimal\"", all["preset"])
		}
		if all["schema_version"] != version.SchemaVersion {
			t.Errorf("schema_version metadata = %q, want %q", all["schema_version"], version.SchemaVersion)
		}
	})

	t.Run("Overview", func(t *testing.T) {
		o, err := store.GetOverview(ctx, pool, "", "")
		if err != nil {
			t.Fatalf("GetOverview failed: %v", err)
		}
		if o.TotalOrders != len(ds.Orders) {
			t.Errorf("TotalOrders = %d, want %d", o.TotalOrders, len(ds.Orders))
		}
		if o.TotalRevenue <= 0 {
			t.Errorf("TotalRevenue = %f, want > 0", o.TotalRevenue)
		}
		if o.ConversionRate <= 0 || o.ConversionRate > 100 {
			t.Errorf("ConversionRate = %f, want in (0, 100]", o.ConversionRate)
		}

		// Date filter outside the generated range yields nothing.
		empty, err := store.GetOverview(ctx, pool, "2030-01-01", "2030-12-31")
		if err != nil {
			t.Fatalf("GetOverview with filter failed: %v", err)
		}
		if empty.TotalOrders != 0 || empty.TotalRevenue != 0 {
			t.Errorf("filtered overview not empty: %+v", empty)
		}
	})

	t.Run("RevenueSeries", func(t *testing.T) {
		for _, groupBy := range []string{"day", "week", "month", "quarter"} {
			series, err := store.GetRevenueSeries(ctx, pool, groupBy, "", "")
			if err != nil {
				t.Fatalf("GetRevenueSeries(%s) failed: %v", groupBy, err)
			}
			if len(series) == 0 {
				t.Errorf("GetRevenueSeries(%s) returned no buckets", groupBy)
			}
			for i := 1; i < len(series); i++ {
				if !series[i].Period.After(series[i-1].Period) {
					t.Errorf("GetRevenueSeries(%s): buckets out of order at %d", groupBy, i)
				}
			}
		}

		monthly, err := store.GetRevenueSeries(ctx, pool, "month", "", "")
		if err != nil {
			t.Fatalf("GetRevenueSeries failed: %v", err)
		}
		if len(monthly) > 12 {
			t.Errorf("monthly series has %d buckets for a one-year range", len(monthly))
		}
	})

	t.Run("RevenueBySegment", func(t *testing.T) {
		segments, err := store.GetRevenueBySegment(ctx, pool, "", "")
		if err != nil {
			t.Fatalf("GetRevenueBySegment failed: %v", err)
		}
		if len(segments) == 0 {
			t.Fatal("no segments returned")
		}
		for i := 1; i < len(segments); i++ {
			if segments[i].Revenue > segments[i-1].Revenue {
				t.Errorf("segments not sorted by revenue at %d", i)
			}
		}
		totalCustomers := 0
		for _, s := range segments {
			totalCustomers += s.Customers
		}
		if totalCustomers != len(ds.Customers) {
			t.Errorf("segment customers sum to %d, want %d", totalCustomers, len(ds.Customers))
		}
	})

	t.Run("RFMSegments", func(t *testing.T) {
		segments, err := store.GetRFMSegments(ctx, pool)
		if err != nil {
			t.Fatalf("GetRFMSegments failed: %v", err)
		}
		if len(segments) == 0 {
			t.Fatal("no RFM segments returned")
		}
		for _, s := range segments {
			if s.Customers < 1 {
				t.Errorf("segment %s has no customers", s.Segment)
			}
			if s.AvgMonetary <= 0 {
				t.Errorf("segment %s has non-positive monetary %f", s.Segment, s.AvgMonetary)
			}
		}
	})

	t.Run("AcquisitionChannels", func(t *testing.T) {
		channels, err := store.GetAcquisitionChannels(ctx, pool, "")
		if err != nil {
			t.Fatalf("GetAcquisitionChannels failed: %v", err)
		}
		if len(channels) == 0 {
			t.Fatal("no acquisition channels returned")
		}

		filtered, err := store.GetAcquisitionChannels(ctx, pool, "Premium")
		if err != nil {
			t.Fatalf("GetAcquisitionChannels(Premium) failed: %v", err)
		}
		for _, c := range filtered {
			if c.Customers < 1 {
				t.Errorf("channel %s has no customers", c.Channel)
			}
		}
	})

	t.Run("Products", func(t *testing.T) {
		products, err := store.GetTopProducts(ctx, pool, "", 10)
		if err != nil {
			t.Fatalf("GetTopProducts failed: %v", err)
		}
		if len(products) == 0 || len(products) > 10 {
			t.Fatalf("GetTopProducts returned %d products", len(products))
		}
		for i := 1; i < len(products); i++ {
			if products[i].Revenue > products[i-1].Revenue {
				t.Errorf("products not sorted by revenue at %d", i)
			}
		}

		categories, err := store.GetCategoryPerformance(ctx, pool)
		if err != nil {
			t.Fatalf("GetCategoryPerformance failed: %v", err)
		}
		totalProducts := 0
		for _, c := range categories {
			totalProducts += c.TotalProducts
			if c.SellThroughRate < 0 || c.SellThroughRate > 100 {
				t.Errorf("category %s sell-through rate %f out of range", c.Category, c.SellThroughRate)
			}
		}
		if totalProducts != len(ds.Products) {
			t.Errorf("category products sum to %d, want %d", totalProducts, len(ds.Products))
		}

		if _, err := store.GetSlowMovers(ctx, pool, 15); err != nil {
			t.Fatalf("GetSlowMovers failed: %v", err)
		}
	})

	t.Run("Marketing", func(t *testing.T) {
		sources, err := store.GetTrafficSources(ctx, pool)
		if err != nil {
			t.Fatalf("GetTrafficSources failed: %v", err)
		}
		totalSessions := 0
		for _, s := range sources {
			totalSessions += s.Sessions
		}
		if totalSessions != len(ds.Sessions) {
			t.Errorf("traffic sessions sum to %d, want %d", totalSessions, len(ds.Sessions))
		}

		devices, err := store.GetDevicePerformance(ctx, pool)
		if err != nil {
			t.Fatalf("GetDevicePerformance failed: %v", err)
		}
		for _, d := range devices {
			if d.BounceRate < 0 || d.BounceRate > 100 {
				t.Errorf("device %s bounce rate %f out of range", d.Device, d.BounceRate)
			}
		}
	})

	t.Run("RecentOrders", func(t *testing.T) {
		orders, err := store.GetRecentOrders(ctx, pool, 20)
		if err != nil {
			t.Fatalf("GetRecentOrders failed: %v", err)
		}
		if len(orders) != 20 {
			t.Fatalf("GetRecentOrders returned %d orders, want 20", len(orders))
		}
		for i := 1; i < len(orders); i++ {
			if orders[i].OrderDate.After(orders[i-1].OrderDate) {
				t.Errorf("orders not sorted newest first at %d", i)
			}
		}
	})

	t.Run("MonthlyRevenueView", func(t *testing.T) {
		months, err := store.GetMonthlyRevenue(ctx, pool)
		if err != nil {
			t.Fatalf("GetMonthlyRevenue failed: %v", err)
		}
		if len(months) == 0 {
			t.Fatal("no monthly revenue rows")
		}
		if months[0].RevenueChange != nil {
			t.Error("first month should have nil revenue change")
		}
		for _, m := range months[1:] {
			if m.RevenueChange == nil {
				t.Error("non-first month missing revenue change")
			}
		}
	})

	t.Run("DropSchema", func(t *testing.T) {
		if err := store.DropSchema(ctx, pool); err != nil {
			t.Fatalf("DropSchema failed: %v", err)
		}
		exists, err := store.MetadataExists(ctx, pool)
		if err != nil {
			t.Fatalf("MetadataExists failed: %v", err)
		}
		if exists {
			t.Error("metadata table still exists after drop")
		}
	})
}
