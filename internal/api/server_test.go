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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthEndpoint(t *testing.T) {
	s := NewServer(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %q, want \"healthy\"", body["status"])
	}
}

func TestServiceInfoListsEndpoints(t *testing.T) {
	s := NewServer(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		Endpoints map[string]string `json:"endpoints"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	for _, key := range []string{"overview", "revenue", "customers", "products", "marketing", "recent_orders"} {
		if body.Endpoints[key] == "" {
			t.Errorf("endpoint %q missing from service info", key)
		}
	}
}

func TestRequestIDEchoed(t *testing.T) {
	s := NewServer(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Header().Get(requestIDHeader) == "" {
		t.Error("response missing generated request ID")
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "test-id-123")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if got := w.Header().Get(requestIDHeader); got != "test-id-123" {
		t.Errorf("request ID = %q, want caller-supplied \"test-id-123\"", got)
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		raw  string
		def  int
		want int
	}{
		{"", 20, 20},
		{"10", 20, 10},
		{"0", 20, 20},
		{"-5", 20, 20},
		{"abc", 20, 20},
		{"5000", 20, 1000},
	}
	for _, tt := range tests {
		if got := parseLimit(tt.raw, tt.def); got != tt.want {
			t.Errorf("parseLimit(%q, %d) = %d, want %d", tt.raw, tt.def, got, tt.want)
		}
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	s := NewServer(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/nope", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
