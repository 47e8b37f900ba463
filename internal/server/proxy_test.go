package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inmocrm/internal/sheets"
)

const feedBody = `[{"Ubicación (referencia)":"REF-001","PRECIO TOTAL":1500000,"ESTATUS":"Disponible"}]`

func TestListingsFeedRelaysUpstreamBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, feedBody)
	}))
	defer upstream.Close()

	h := newTestServer(t, sheets.NewClient(upstream.URL, upstream.URL)).Router()
	_, token := signup(t, h, "agent@example.com")

	rr := do(t, h, http.MethodGet, "/api/properties-data", token, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if rr.Body.String() != feedBody {
		t.Errorf("body = %s, want upstream body relayed untouched", rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
}

func TestListingsFeedUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	h := newTestServer(t, sheets.NewClient(upstream.URL, upstream.URL)).Router()
	_, token := signup(t, h, "agent@example.com")

	rr := do(t, h, http.MethodGet, "/api/properties-data", token, "")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp["error"] != "Failed to fetch properties data" {
		t.Errorf("error = %q", resp["error"])
	}
	if resp["details"] == "" {
		t.Error("details missing from error body")
	}
}

func TestListingUpdateSendsMutation(t *testing.T) {
	var captured map[string]string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
				t.Errorf("decode mutation: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"success":true}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, "[]")
	}))
	defer upstream.Close()

	h := newTestServer(t, sheets.NewClient(upstream.URL, upstream.URL)).Router()
	_, token := signup(t, h, "agent@example.com")

	rr := do(t, h, http.MethodPost, "/api/properties-data/update", token,
		`{"referencia":"REF-001","newValue":"vendido"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"success":true`) {
		t.Errorf("body = %s, want success true", rr.Body.String())
	}

	want := map[string]string{
		"action":     "update",
		"referencia": "REF-001",
		"column":     "ESTATUS",
		"newValue":   "Vendido",
	}
	for k, v := range want {
		if captured[k] != v {
			t.Errorf("mutation %s = %q, want %q", k, captured[k], v)
		}
	}
}

func TestListingUpdateRejectsBadInput(t *testing.T) {
	h := newTestServer(t, nil).Router()
	_, token := signup(t, h, "agent@example.com")

	rr := do(t, h, http.MethodPost, "/api/properties-data/update", token,
		`{"referencia":"","newValue":"vendido"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("empty referencia status = %d, want 400", rr.Code)
	}

	rr = do(t, h, http.MethodPost, "/api/properties-data/update", token,
		`{"referencia":"REF-001","newValue":"demolished"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown status value status = %d, want 400", rr.Code)
	}
}

func TestListingUpdateUpstreamRejection(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":false,"error":"row not found"}`)
	}))
	defer upstream.Close()

	h := newTestServer(t, sheets.NewClient(upstream.URL, upstream.URL)).Router()
	_, token := signup(t, h, "agent@example.com")

	rr := do(t, h, http.MethodPost, "/api/properties-data/update", token,
		`{"referencia":"REF-404","newValue":"disponible"}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "row not found") {
		t.Errorf("body = %s, want upstream error in details", rr.Body.String())
	}
}
