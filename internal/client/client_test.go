package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/extract" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		var req struct {
			ImageBase64 string `json:"imageBase64"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageBase64 == "" {
			t.Errorf("Request body missing imageBase64: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"headerInfo": {"Exam": "Final"},
			"tableData": [{"qNo": "1", "total": 4}, {"qNo": "2", "total": "6"}],
			"writtenTotal": 10,
			"bubbleDigits": "10"
		}`))
	}))
	defer server.Close()

	c := New(server.URL)
	result, err := c.Extract(context.Background(), "data:image/png;base64,AAAA")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if result.Totals.Calculated != 10 || !result.Totals.IsValid {
		t.Errorf("Totals = %+v, want calculated=10 valid", result.Totals)
	}
	if result.Rows[0].Total != "4" {
		t.Errorf("Numeric cell not coerced to string: %q", result.Rows[0].Total)
	}
}

func TestExtractErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "Rate limit exceeded. Please try again later."}`))
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Extract(context.Background(), "data:image/png;base64,AAAA"); err == nil {
		t.Fatal("Expected error for error body")
	}
}

func TestExtractTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately, so the call fails to connect

	c := New(server.URL)
	if _, err := c.Extract(context.Background(), "data:image/png;base64,AAAA"); err == nil {
		t.Fatal("Expected error for unreachable server")
	}
}
