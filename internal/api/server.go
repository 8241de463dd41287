//-------------------------------------------------------------------------
//
// shopgen - Synthetic E-commerce Analytics
//
// Copyright (c) 2025 - 2026, the shopgen authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package api serves the analytics REST API over the analytic store.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopgen/shopgen/internal/logging"
	"github.com/shopgen/shopgen/internal/store"
)

// Server is the analytics API server.
type Server struct {
	db     store.DB
	engine *gin.Engine
}

// NewServer builds the server and its routes. corsOrigins lists the
// frontend origins allowed to call the API.
func NewServer(db store.DB, corsOrigins []string) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		db:     db,
		engine: gin.New(),
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(RequestID())
	s.engine.Use(RequestLog())
	s.engine.Use(CORS(corsOrigins))

	s.engine.GET("/health", healthCheck)
	s.engine.GET("/", serviceInfo)

	v1 := s.engine.Group("/api/v1")
	{
		analytics := v1.Group("/analytics")
		analytics.GET("/overview", s.getOverview)
		analytics.GET("/revenue", s.getRevenue)
		analytics.GET("/customers", s.getCustomers)
		analytics.GET("/products", s.getProducts)
		analytics.GET("/marketing", s.getMarketing)

		v1.GET("/orders/recent", s.getRecentOrders)
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, listen string) error {
	log := logging.Component("api")

	srv := &http.Server{
		Addr:              listen,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("listen", listen).Msg("API server started")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
