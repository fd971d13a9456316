package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SauravKesari/billify/internal/models"
)

func sampleInvoices() []models.Invoice {
	return []models.Invoice{
		{
			ID: "inv1", InvoiceNumber: "INV-1001",
			Date:         time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			CustomerName: "Jane Doe",
			Items:        []models.InvoiceItem{{ID: "i1", Quantity: 2, Price: 150, Total: 300}},
			Subtotal:     300, Total: 300, Status: models.StatusPending,
		},
	}
}

func TestEmptyInvoicesSkipsProvider(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New("key", "", srv.URL)
	got := c.SummarizeSales(context.Background(), nil)
	if got != NoDataMessage {
		t.Fatalf("got %q, want NoDataMessage", got)
	}
	if called {
		t.Fatal("provider must not be called for an empty invoice set")
	}
}

func TestSummarizeSales(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.5-flash:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("api key not forwarded: %s", r.URL.RawQuery)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || !strings.Contains(req.Contents[0].Parts[0].Text, "Jane Doe") {
			t.Errorf("prompt missing invoice data: %#v", req.Contents)
		}
		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{{Content: content{Parts: []part{{Text: "- Sales are growing."}}}}},
		})
	}))
	defer srv.Close()

	c := New("test-key", "", srv.URL)
	got := c.SummarizeSales(context.Background(), sampleInvoices())
	if got != "- Sales are growing." {
		t.Fatalf("got %q", got)
	}
}

func TestProviderErrorsCollapseToFallback(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"malformed body": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		},
		"no candidates": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			c := New("key", "", srv.URL)
			if got := c.SummarizeSales(context.Background(), sampleInvoices()); got != FallbackMessage {
				t.Fatalf("got %q, want FallbackMessage", got)
			}
		})
	}
}

func TestUnreachableProviderFallsBack(t *testing.T) {
	c := New("key", "", "http://127.0.0.1:1")
	if got := c.SummarizeSales(context.Background(), sampleInvoices()); got != FallbackMessage {
		t.Fatalf("got %q, want FallbackMessage", got)
	}
}
