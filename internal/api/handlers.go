//-------------------------------------------------------------------------
//
// shopgen - Synthetic E-commerce Analytics
//
// Copyright (c) 2025 - 2026, the shopgen authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopgen/shopgen/internal/logging"
	"github.com/shopgen/shopgen/internal/store"
	"github.com/shopgen/shopgen/pkg/version"
)

// APIError is the wire form of a failed request.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps an APIError.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	logging.Error().
		Str("path", c.Request.URL.Path).
		Str("code", code).
		Err(err).
		Msg("Request failed")
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shopgen-analytics-api",
	})
}

func serviceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Shopgen Analytics API",
		"version": version.Short(),
		"status":  "healthy",
		"endpoints": gin.H{
			"overview":      "/api/v1/analytics/overview",
			"revenue":       "/api/v1/analytics/revenue",
			"customers":     "/api/v1/analytics/customers",
			"products":      "/api/v1/analytics/products",
			"marketing":     "/api/v1/analytics/marketing",
			"recent_orders": "/api/v1/orders/recent",
		},
	})
}

func (s *Server) getOverview(c *gin.Context) {
	overview, err := store.GetOverview(c.Request.Context(), s.db,
		c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "overview_query_failed", err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (s *Server) getRevenue(c *gin.Context) {
	ctx := c.Request.Context()
	dateFrom := c.Query("date_from")
	dateTo := c.Query("date_to")
	groupBy := c.DefaultQuery("group_by", "month")

	series, err := store.GetRevenueSeries(ctx, s.db, groupBy, dateFrom, dateTo)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "revenue_query_failed", err)
		return
	}
	segments, err := store.GetRevenueBySegment(ctx, s.db, dateFrom, dateTo)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "revenue_query_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"time_series": series,
		"by_segment":  segments,
	})
}

func (s *Server) getCustomers(c *gin.Context) {
	ctx := c.Request.Context()

	rfm, err := store.GetRFMSegments(ctx, s.db)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "customer_query_failed", err)
		return
	}
	channels, err := store.GetAcquisitionChannels(ctx, s.db, c.Query("segment"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "customer_query_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rfm_segments":         rfm,
		"acquisition_channels": channels,
	})
}

func (s *Server) getProducts(c *gin.Context) {
	ctx := c.Request.Context()
	limit := parseLimit(c.Query("limit"), 20)

	products, err := store.GetTopProducts(ctx, s.db, c.Query("category"), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "product_query_failed", err)
		return
	}
	categories, err := store.GetCategoryPerformance(ctx, s.db)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "product_query_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"top_products":         products,
		"category_performance": categories,
	})
}

func (s *Server) getMarketing(c *gin.Context) {
	ctx := c.Request.Context()

	sources, err := store.GetTrafficSources(ctx, s.db)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "marketing_query_failed", err)
		return
	}
	devices, err := store.GetDevicePerformance(ctx, s.db)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "marketing_query_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"traffic_sources":    sources,
		"device_performance": devices,
	})
}

func (s *Server) getRecentOrders(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 50)

	orders, err := store.GetRecentOrders(c.Request.Context(), s.db, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "orders_query_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recent_orders": orders})
}

// parseLimit parses a limit query parameter, falling back to def for
// missing, malformed, or non-positive values. Limits are capped at 1000.
func parseLimit(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	if n > 1000 {
		return 1000
	}
	return n
}
